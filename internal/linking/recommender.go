package linking

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/seoscan/seoscan/internal/clustering"
	"github.com/seoscan/seoscan/internal/model"
)

const (
	// minRelevance is the similarity floor below which a pair is not
	// worth linking.
	minRelevance = 0.2

	// maxTargetsPerSource caps recommendations per source page so no
	// single page is asked to add dozens of links.
	maxTargetsPerSource = 10
)

// Recommender proposes internal links between pages.
type Recommender struct {
	// logger for structured logging.
	logger *slog.Logger
}

// Option configures a Recommender.
type Option func(*Recommender)

// WithLogger sets a custom logger for the recommender.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recommender) {
		r.logger = logger
	}
}

// NewRecommender creates a Recommender.
func NewRecommender(opts ...Option) *Recommender {
	r := &Recommender{logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Recommend evaluates every ordered page pair and returns link
// proposals plus the existing link graph. Pairs already connected by an
// existing edge are skipped; the sorted result is globally ordered by
// priority.
func (r *Recommender) Recommend(pages []*model.Page) *model.LinkingReport {
	report := &model.LinkingReport{Map: buildMap(pages)}

	for _, source := range pages {
		var perSource []model.LinkRecommendation
		for _, target := range pages {
			if source.Path == target.Path {
				continue
			}
			if source.HasLinkTo(target.Path) {
				continue
			}

			relevance := clustering.JaccardText(pageText(source), pageText(target))
			if relevance <= minRelevance {
				continue
			}

			perSource = append(perSource, model.LinkRecommendation{
				SourcePage:          source.Path,
				TargetPage:          target.Path,
				SuggestedAnchorText: anchorFor(target),
				RelevanceScore:      math.Round(relevance * 100),
				Priority:            priority(relevance, source.WordCount, len(target.Keywords)),
				Reason: fmt.Sprintf("%s and %s share %.0f%% of their topic vocabulary",
					source.Path, target.Path, relevance*100),
			})
		}

		// The per-source cap keeps the highest-relevance targets;
		// priority decides presentation order only.
		sort.SliceStable(perSource, func(i, j int) bool {
			return perSource[i].RelevanceScore > perSource[j].RelevanceScore
		})
		if len(perSource) > maxTargetsPerSource {
			perSource = perSource[:maxTargetsPerSource]
		}
		report.Recommendations = append(report.Recommendations, perSource...)
	}

	sort.SliceStable(report.Recommendations, func(i, j int) bool {
		return report.Recommendations[i].Priority > report.Recommendations[j].Priority
	})

	r.logger.Info("internal linking analysis completed",
		"pages", len(pages), "recommendations", len(report.Recommendations))

	return report
}

// buildMap collects existing edges whose target resolves to a known
// page. Links pointing outside the extracted page set describe nothing
// the graph can show.
func buildMap(pages []*model.Page) model.LinkingMap {
	known := make(map[string]string, len(pages))
	m := model.LinkingMap{Nodes: make([]string, 0, len(pages))}
	for _, p := range pages {
		m.Nodes = append(m.Nodes, p.Path)
		known[normalizePath(p.Path)] = p.Path
	}

	for _, p := range pages {
		for _, edge := range p.ExistingLinks {
			resolved, ok := known[normalizePath(edge.TargetURL)]
			if !ok {
				continue
			}
			edge.TargetURL = resolved
			m.Edges = append(m.Edges, edge)
		}
	}
	return m
}

// pageText is the similarity text for linking: title, description, and
// topic keywords.
func pageText(p *model.Page) string {
	parts := make([]string, 0, 2+len(p.Keywords))
	if p.Title != "" {
		parts = append(parts, p.Title)
	}
	if p.Description != "" {
		parts = append(parts, p.Description)
	}
	parts = append(parts, p.Keywords...)
	return strings.Join(parts, " ")
}

// anchorFor picks the suggested anchor text for a target page.
func anchorFor(target *model.Page) string {
	if len(target.Keywords) > 0 {
		return target.Keywords[0]
	}
	return target.Title
}

// priority combines relevance with source depth and target topicality:
// round(relevance*100 + min(sourceWordCount/100,10) + targetKeywordCount*2).
func priority(relevance float64, sourceWordCount, targetKeywordCount int) int {
	depth := math.Min(float64(sourceWordCount)/100, 10)
	return int(math.Round(relevance*100 + depth + float64(targetKeywordCount)*2))
}

func normalizePath(path string) string {
	if path == "/" {
		return path
	}
	return strings.TrimSuffix(path, "/")
}
