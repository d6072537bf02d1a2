package model

// BacklinkOpportunity is a referring domain that links to at least one
// competitor but not to the operator.
type BacklinkOpportunity struct {
	// Domain is the referring domain.
	Domain string `json:"domain"`

	// AuthorityRank is the provider's domain authority metric (0-100).
	AuthorityRank float64 `json:"authority_rank"`

	// CompetitorLinkCount is how many competitors the domain links to.
	CompetitorLinkCount int `json:"competitor_link_count"`

	// Backlinks is the domain's total outbound backlink count.
	Backlinks int `json:"backlinks"`

	// Score is the composite outreach opportunity score.
	Score float64 `json:"score"`

	// Tier is the priority bucket derived from the score.
	Tier Tier `json:"tier"`
}

// BacklinkSummary holds statistics derived from the opportunity list.
// It is recomputed from the list, never maintained independently.
type BacklinkSummary struct {
	// HighCount, MediumCount, and LowCount tally opportunities per tier.
	HighCount   int `json:"high_count"`
	MediumCount int `json:"medium_count"`
	LowCount    int `json:"low_count"`

	// AvgAuthorityRank is the mean authority rank across opportunities.
	AvgAuthorityRank float64 `json:"avg_authority_rank"`

	// TotalCompetitorLinks is the sum of competitor link counts.
	TotalCompetitorLinks int `json:"total_competitor_links"`
}

// BacklinkGapReport is the artifact produced by the backlink gap stage.
type BacklinkGapReport struct {
	// Domain is the operator domain.
	Domain string `json:"domain"`

	// Competitors are the competitor domains intersected.
	Competitors []string `json:"competitors"`

	// Opportunities are the scored referring domains, sorted descending
	// by score, capped at the stage's result limit.
	Opportunities []BacklinkOpportunity `json:"opportunities"`

	// Summary is derived from Opportunities.
	Summary BacklinkSummary `json:"summary"`
}

// Summarize recomputes the report's summary from its opportunity list.
func (r *BacklinkGapReport) Summarize() {
	var s BacklinkSummary
	var rankSum float64
	for _, opp := range r.Opportunities {
		switch opp.Tier {
		case TierHigh:
			s.HighCount++
		case TierMedium:
			s.MediumCount++
		case TierLow:
			s.LowCount++
		}
		rankSum += opp.AuthorityRank
		s.TotalCompetitorLinks += opp.CompetitorLinkCount
	}
	if len(r.Opportunities) > 0 {
		s.AvgAuthorityRank = rankSum / float64(len(r.Opportunities))
	}
	r.Summary = s
}
