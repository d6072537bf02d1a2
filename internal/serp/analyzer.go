package serp

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/seoscan/seoscan/internal/model"
	"github.com/seoscan/seoscan/internal/seoapi"
)

// organicType is the provider's item type for a plain organic result.
const organicType = "organic"

// rankingClient is the slice of the provider API the analyzer needs.
type rankingClient interface {
	PostSerpTask(ctx context.Context, keyword string) (string, error)
	GetSerpResult(ctx context.Context, taskID string) (*seoapi.SerpTaskResult, error)
}

// Analyzer queries search rankings and finds keyword gaps against
// competitors.
type Analyzer struct {
	// client is the provider API client.
	client rankingClient

	// keywordLimit caps how many keywords are queried per run; zero or
	// negative means no cap.
	keywordLimit int

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithKeywordLimit caps the number of keywords queried per analysis.
func WithKeywordLimit(limit int) Option {
	return func(a *Analyzer) {
		a.keywordLimit = limit
	}
}

// WithLogger sets a custom logger for the analyzer.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// NewAnalyzer creates an Analyzer backed by the given API client.
func NewAnalyzer(client rankingClient, opts ...Option) *Analyzer {
	a := &Analyzer{
		client: client,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs ranking queries for the given keywords and classifies
// each result against the operator domain and its competitors. A failed
// query is recorded on its analysis entry and the batch continues.
func (a *Analyzer) Analyze(ctx context.Context, domain string, competitors, keywords []string) (*model.SerpGapReport, error) {
	if a.keywordLimit > 0 && len(keywords) > a.keywordLimit {
		a.logger.Debug("limiting keyword analysis",
			"requested", len(keywords), "limit", a.keywordLimit)
		keywords = keywords[:a.keywordLimit]
	}

	report := &model.SerpGapReport{
		Domain:      domain,
		Competitors: competitors,
		Analyses:    make([]model.KeywordAnalysis, 0, len(keywords)),
	}

	for _, keyword := range keywords {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		analysis := a.analyzeKeyword(ctx, keyword, domain, competitors)
		report.Analyses = append(report.Analyses, analysis)

		if opp, ok := gapFor(analysis); ok {
			report.Opportunities = append(report.Opportunities, opp)
		}
	}

	sort.SliceStable(report.Opportunities, func(i, j int) bool {
		if report.Opportunities[i].Score != report.Opportunities[j].Score {
			return report.Opportunities[i].Score > report.Opportunities[j].Score
		}
		return report.Opportunities[i].Keyword < report.Opportunities[j].Keyword
	})

	a.logger.Info("serp analysis completed",
		"keywords", len(report.Analyses), "opportunities", len(report.Opportunities))

	return report, nil
}

// analyzeKeyword runs one ranking query and classifies the results.
func (a *Analyzer) analyzeKeyword(ctx context.Context, keyword, domain string, competitors []string) model.KeywordAnalysis {
	analysis := model.KeywordAnalysis{Keyword: keyword}

	taskID, err := a.client.PostSerpTask(ctx, keyword)
	if err != nil {
		a.logger.Warn("serp task submission failed", "keyword", keyword, "error", err)
		analysis.Error = err.Error()
		return analysis
	}

	result, err := a.client.GetSerpResult(ctx, taskID)
	if err != nil {
		a.logger.Warn("serp task retrieval failed", "keyword", keyword, "error", err)
		analysis.Error = err.Error()
		return analysis
	}

	for _, item := range result.Items {
		if item.Type != organicType {
			analysis.Features = append(analysis.Features, item.Type)
			continue
		}

		if sameDomain(item.Domain, domain) && analysis.OurRank == nil {
			rank := item.Rank
			analysis.OurRank = &rank
		}
		for _, comp := range competitors {
			if sameDomain(item.Domain, comp) {
				if analysis.CompetitorRanks == nil {
					analysis.CompetitorRanks = make(map[string]int)
				}
				if _, ok := analysis.CompetitorRanks[comp]; !ok {
					analysis.CompetitorRanks[comp] = item.Rank
				}
			}
		}
		if item.Rank <= 10 {
			analysis.TopDomains = append(analysis.TopDomains, item.Domain)
		}
	}
	return analysis
}

// gapFor derives the gap opportunity for an analysis, if any.
// Competitors ranking while we are absent scores competitorCount*10;
// ranking below position 10 scores competitorCount*5. Keywords where we
// hold a top-10 position, or where no competitor ranks, are not gaps.
func gapFor(analysis model.KeywordAnalysis) (model.GapOpportunity, bool) {
	count := len(analysis.CompetitorRanks)
	if count == 0 || analysis.Error != "" {
		return model.GapOpportunity{}, false
	}

	var score float64
	switch {
	case analysis.OurRank == nil:
		score = float64(count) * 10
	case *analysis.OurRank > 10:
		score = float64(count) * 5
	default:
		return model.GapOpportunity{}, false
	}

	return model.GapOpportunity{
		Keyword:         analysis.Keyword,
		Score:           score,
		Tier:            model.TierForScore(score),
		CompetitorCount: count,
		OurRank:         analysis.OurRank,
	}, true
}

// sameDomain compares domains ignoring case and a www prefix.
func sameDomain(a, b string) bool {
	return normalizeDomain(a) == normalizeDomain(b)
}

func normalizeDomain(domain string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(domain)), "www.")
}
