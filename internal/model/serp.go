package model

// KeywordAnalysis is the full per-keyword SERP classification. Every
// analyzed keyword produces one of these, even when the query failed or
// no actionable gap was found.
type KeywordAnalysis struct {
	// Keyword is the analyzed keyword text.
	Keyword string `json:"keyword"`

	// OurRank is the operator domain's organic position, or nil when
	// the domain does not rank or the query failed.
	OurRank *int `json:"our_rank"`

	// CompetitorRanks maps competitor domain to its organic position.
	// Only competitors present in the results appear.
	CompetitorRanks map[string]int `json:"competitor_ranks,omitempty"`

	// TopDomains is the set of domains occupying the top 10 organic
	// positions, in rank order.
	TopDomains []string `json:"top_domains,omitempty"`

	// Features lists the non-organic SERP feature types present
	// (featured snippet, people also ask, local pack, ...).
	Features []string `json:"features,omitempty"`

	// Error holds the failure message for keywords whose ranking query
	// failed; empty on success.
	Error string `json:"error,omitempty"`
}

// GapOpportunity is an actionable SERP gap: competitors rank where the
// operator is absent or weak.
type GapOpportunity struct {
	// Keyword is the keyword with the gap.
	Keyword string `json:"keyword"`

	// Score is the gap score: competitorCount*10 when we are absent,
	// competitorCount*5 when we rank below position 10.
	Score float64 `json:"score"`

	// Tier is the priority bucket derived from the score.
	Tier Tier `json:"tier"`

	// CompetitorCount is the number of competitors ranking for the keyword.
	CompetitorCount int `json:"competitor_count"`

	// OurRank mirrors the analysis rank; nil when absent.
	OurRank *int `json:"our_rank"`
}

// SerpGapReport is the artifact produced by the SERP analysis stage.
type SerpGapReport struct {
	// Domain is the operator domain the gaps are measured against.
	Domain string `json:"domain"`

	// Competitors are the competitor domains considered.
	Competitors []string `json:"competitors"`

	// Analyses holds one entry per analyzed keyword, including keywords
	// with no actionable gap and keywords whose query failed.
	Analyses []KeywordAnalysis `json:"analyses"`

	// Opportunities holds only keywords with a positive gap score,
	// sorted descending by score.
	Opportunities []GapOpportunity `json:"opportunities"`
}
