package clustering

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/seoscan/seoscan/internal/model"
)

const (
	// DefaultClusterThreshold is the minimum keyword-to-pillar similarity
	// for cluster membership.
	DefaultClusterThreshold = 0.3

	// DefaultPageMatchThreshold is the minimum cluster-to-page similarity
	// for a page to count as covering a cluster.
	DefaultPageMatchThreshold = 0.2

	// optimizeThreshold is the match score below which a covered cluster
	// still earns an optimize calendar entry.
	optimizeThreshold = 0.5
)

// Engine clusters keywords and derives the content calendar.
type Engine struct {
	// clusterThreshold is the membership similarity floor.
	clusterThreshold float64

	// pageMatchThreshold is the page coverage similarity floor.
	pageMatchThreshold float64

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClusterThreshold overrides the membership similarity floor.
func WithClusterThreshold(threshold float64) Option {
	return func(e *Engine) {
		if threshold > 0 {
			e.clusterThreshold = threshold
		}
	}
}

// WithPageMatchThreshold overrides the page coverage similarity floor.
func WithPageMatchThreshold(threshold float64) Option {
	return func(e *Engine) {
		if threshold > 0 {
			e.pageMatchThreshold = threshold
		}
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an Engine with default thresholds.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		clusterThreshold:   DefaultClusterThreshold,
		pageMatchThreshold: DefaultPageMatchThreshold,
		logger:             slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Cluster groups the keyword universe, matches clusters against the
// given pages, and builds the content calendar. The grouping pass is
// greedy and single-pass: each keyword joins the first existing cluster
// whose pillar it resembles, so input order decides cluster shapes.
// Callers pass keywords in opportunity order, which anchors clusters on
// the strongest keywords.
func (e *Engine) Cluster(keywords []model.KeywordRecord, pages []*model.Page) *model.ClusterReport {
	clusters := e.group(keywords)

	for _, c := range clusters {
		finalizeCluster(c)
	}
	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].TotalVolume > clusters[j].TotalVolume
	})

	gaps := 0
	for _, c := range clusters {
		e.matchPage(c, pages)
		if c.IsContentGap() {
			gaps++
		}
	}

	report := &model.ClusterReport{
		Clusters:    clusters,
		ContentGaps: gaps,
		Calendar:    buildCalendar(clusters),
	}

	e.logger.Info("content clustering completed",
		"keywords", len(keywords), "clusters", len(clusters), "gaps", gaps)

	return report
}

// group runs the greedy clustering pass. Every keyword lands in exactly
// one cluster.
func (e *Engine) group(keywords []model.KeywordRecord) []*model.Cluster {
	var clusters []*model.Cluster
	pillars := make([]map[string]bool, 0)

	for _, kw := range keywords {
		tokens := Tokenize(kw.Keyword)

		placed := false
		for i, c := range clusters {
			if Jaccard(tokens, pillars[i]) >= e.clusterThreshold {
				c.Keywords = append(c.Keywords, kw)
				placed = true
				break
			}
		}
		if !placed {
			clusters = append(clusters, &model.Cluster{
				PillarKeyword: kw.Keyword,
				Keywords:      []model.KeywordRecord{kw},
			})
			pillars = append(pillars, tokens)
		}
	}
	return clusters
}

// finalizeCluster computes the cluster's aggregates from its members.
func finalizeCluster(c *model.Cluster) {
	sort.SliceStable(c.Keywords, func(i, j int) bool {
		return c.Keywords[i].Volume > c.Keywords[j].Volume
	})

	var compSum float64
	seen := make(map[string]bool)
	for _, kw := range c.Keywords {
		c.TotalVolume += kw.Volume
		compSum += kw.Competition
		for w := range Tokenize(kw.Keyword) {
			if !seen[w] {
				seen[w] = true
				c.Topics = append(c.Topics, w)
			}
		}
	}
	sort.Strings(c.Topics)
	if len(c.Keywords) > 0 {
		c.AvgCompetition = math.Round(compSum / float64(len(c.Keywords)))
	}
}

// matchPage finds the page that best covers the cluster's topics. A
// cluster with no page above the threshold is a content gap.
func (e *Engine) matchPage(c *model.Cluster, pages []*model.Page) {
	clusterTokens := make(map[string]bool, len(c.Topics))
	for _, t := range c.Topics {
		clusterTokens[t] = true
	}

	var (
		best      *model.Page
		bestScore float64
	)
	for _, page := range pages {
		score := Jaccard(clusterTokens, Tokenize(page.SyntheticText()))
		if score > bestScore {
			best, bestScore = page, score
		}
	}
	if best != nil && bestScore >= e.pageMatchThreshold {
		c.MatchedPage = best
		c.MatchScore = bestScore
	}
}

// buildCalendar derives the prioritized content calendar. Content gaps
// become create entries; weakly matched clusters become optimize entries
// with a priority penalty. Well-covered clusters get no entry.
func buildCalendar(clusters []*model.Cluster) []model.CalendarEntry {
	var calendar []model.CalendarEntry
	for rank, c := range clusters {
		priority := calendarPriority(c.TotalVolume, c.AvgCompetition, rank)

		switch {
		case c.IsContentGap():
			calendar = append(calendar, model.CalendarEntry{
				Action:        model.ActionCreate,
				PillarKeyword: c.PillarKeyword,
				TotalVolume:   c.TotalVolume,
				Priority:      priority,
				Reason: fmt.Sprintf("no existing page covers %q (%d keywords, %d monthly searches)",
					c.PillarKeyword, len(c.Keywords), c.TotalVolume),
			})
		case c.MatchScore < optimizeThreshold:
			calendar = append(calendar, model.CalendarEntry{
				Action:        model.ActionOptimize,
				PillarKeyword: c.PillarKeyword,
				TargetPage:    c.MatchedPage.Path,
				TotalVolume:   c.TotalVolume,
				Priority:      priority - 1,
				Reason: fmt.Sprintf("%s is a weak match (%.0f%%) for %q",
					c.MatchedPage.Path, c.MatchScore*100, c.PillarKeyword),
			})
		}
	}

	sort.SliceStable(calendar, func(i, j int) bool {
		return calendar[i].Priority > calendar[j].Priority
	})
	return calendar
}

// calendarPriority combines demand, ease, and cluster rank:
// round(min(totalVolume/1000,10) + (100-avgCompetition)/10 + max(10-rank,0)).
// Rank is the cluster's zero-based position in the volume-sorted list.
func calendarPriority(totalVolume int, avgCompetition float64, rank int) int {
	demand := math.Min(float64(totalVolume)/1000, 10)
	ease := (100 - avgCompetition) / 10
	position := math.Max(float64(10-rank), 0)
	return int(math.Round(demand + ease + position))
}
