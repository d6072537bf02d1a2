package model

import "strings"

// Keyword source constants, in dedup priority order. When the same keyword
// text appears under multiple sources, the first-encountered source wins:
// seed metrics beat related expansions, which beat people-also-search.
const (
	// SourceSeed marks keywords the user supplied directly.
	SourceSeed = "seed"

	// SourceRelated marks keywords from the related-keywords expansion.
	SourceRelated = "related"

	// SourcePeopleAlsoSearch marks keywords from "people also search for"
	// expansions.
	SourcePeopleAlsoSearch = "people_also_search"
)

// KeywordRecord is one entry in the deduplicated keyword universe.
// Records are immutable once scored by the aggregator.
type KeywordRecord struct {
	// Keyword is the keyword text. Uniqueness within the universe is
	// enforced on the lowercased text; see NormalizeKeyword.
	Keyword string `json:"keyword"`

	// Volume is the monthly search volume. Zero when the provider
	// returned no metric.
	Volume int `json:"volume"`

	// CPC is the average cost-per-click in USD.
	CPC float64 `json:"cpc"`

	// Competition is the competition index in [0,100].
	Competition float64 `json:"competition"`

	// Trend is the year-over-year search trend in percent.
	Trend float64 `json:"trend"`

	// Source records which aggregation phase produced this record.
	Source string `json:"source"`

	// OpportunityScore is the composite demand/monetization/difficulty
	// score assigned by the aggregator. Higher is better.
	OpportunityScore float64 `json:"opportunity_score"`
}

// NormalizeKeyword returns the canonical dedup key for a keyword:
// lowercased with surrounding whitespace removed.
func NormalizeKeyword(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}

// KeywordUniverse is the artifact produced by the keyword research stage.
type KeywordUniverse struct {
	// Seeds are the seed keywords the aggregation started from.
	Seeds []string `json:"seeds"`

	// Keywords is the deduplicated universe, sorted descending by
	// opportunity score.
	Keywords []KeywordRecord `json:"keywords"`
}
