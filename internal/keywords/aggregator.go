package keywords

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/seoscan/seoscan/internal/model"
	"github.com/seoscan/seoscan/internal/seoapi"
)

// metricsClient is the slice of the provider API the aggregator needs.
type metricsClient interface {
	KeywordMetrics(ctx context.Context, keywords []string) ([]seoapi.KeywordMetric, error)
	RelatedKeywords(ctx context.Context, seed string) ([]seoapi.KeywordMetric, error)
	PeopleAlsoSearch(ctx context.Context, seed string) ([]seoapi.KeywordMetric, error)
}

// Aggregator expands seed keywords into a scored keyword universe.
type Aggregator struct {
	// client is the provider API client.
	client metricsClient

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithLogger sets a custom logger for the aggregator.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) {
		a.logger = logger
	}
}

// NewAggregator creates an Aggregator backed by the given API client.
func NewAggregator(client metricsClient, opts ...Option) *Aggregator {
	a := &Aggregator{
		client: client,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Research runs the three aggregation phases for the given seeds and
// returns the deduplicated universe sorted descending by opportunity
// score. A seed-metrics failure aborts the research; expansion failures
// are logged per seed and skipped, since a partial universe is still
// useful downstream.
func (a *Aggregator) Research(ctx context.Context, seeds []string) (*model.KeywordUniverse, error) {
	universe := make(map[string]model.KeywordRecord)

	metrics, err := a.client.KeywordMetrics(ctx, seeds)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seed keyword metrics: %w", err)
	}
	a.accumulate(universe, metrics, model.SourceSeed)

	// The related phase runs across every seed before any
	// people-also-search call. Phases accumulate first-wins, so
	// interleaving the expansions per seed would let one seed's
	// people-also-search result claim a keyword ahead of a later seed's
	// related result, breaking the source priority order.
	for _, seed := range seeds {
		related, err := a.client.RelatedKeywords(ctx, seed)
		if err != nil {
			a.logger.Warn("related keyword expansion failed", "seed", seed, "error", err)
			continue
		}
		a.accumulate(universe, related, model.SourceRelated)
	}

	for _, seed := range seeds {
		also, err := a.client.PeopleAlsoSearch(ctx, seed)
		if err != nil {
			a.logger.Warn("people-also-search expansion failed", "seed", seed, "error", err)
			continue
		}
		a.accumulate(universe, also, model.SourcePeopleAlsoSearch)
	}

	records := make([]model.KeywordRecord, 0, len(universe))
	for _, rec := range universe {
		records = append(records, rec)
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].OpportunityScore != records[j].OpportunityScore {
			return records[i].OpportunityScore > records[j].OpportunityScore
		}
		return records[i].Keyword < records[j].Keyword
	})

	a.logger.Info("keyword research completed",
		"seeds", len(seeds), "keywords", len(records))

	return &model.KeywordUniverse{Seeds: seeds, Keywords: records}, nil
}

// accumulate merges a batch of metrics into the universe. The first
// occurrence of a keyword wins; later phases never overwrite earlier
// records.
func (a *Aggregator) accumulate(universe map[string]model.KeywordRecord, metrics []seoapi.KeywordMetric, source string) {
	for _, m := range metrics {
		key := model.NormalizeKeyword(m.Keyword)
		if key == "" {
			continue
		}
		if _, ok := universe[key]; ok {
			continue
		}
		universe[key] = model.KeywordRecord{
			Keyword:          key,
			Volume:           m.Volume,
			CPC:              m.CPC,
			Competition:      m.Competition,
			Trend:            m.Trend,
			Source:           source,
			OpportunityScore: OpportunityScore(m.Volume, m.CPC, m.Competition),
		}
	}
}

// OpportunityScore rates a keyword by demand and monetization relative
// to its competition: round(volume*(1+cpc)/(competition/100+1)).
func OpportunityScore(volume int, cpc, competition float64) float64 {
	return math.Round(float64(volume) * (1 + cpc) / (competition/100 + 1))
}
