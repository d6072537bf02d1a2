package model

// Calendar entry actions.
const (
	// ActionCreate marks a calendar entry for a cluster with no matching
	// page: new content should be written.
	ActionCreate = "create"

	// ActionOptimize marks a calendar entry for a cluster whose matched
	// page is a weak fit: existing content should be improved.
	ActionOptimize = "optimize"
)

// Cluster is a topical group of keywords anchored by a pillar keyword.
// Clusters are created by the greedy clustering pass, mutated once by
// page matching, and terminal after calendar generation.
type Cluster struct {
	// PillarKeyword is the text of the keyword that seeded the cluster.
	PillarKeyword string `json:"pillar_keyword"`

	// Keywords are the member records, sorted descending by volume.
	// Every keyword in the input belongs to exactly one cluster.
	Keywords []KeywordRecord `json:"keywords"`

	// TotalVolume is the sum of member volumes.
	TotalVolume int `json:"total_volume"`

	// AvgCompetition is the rounded mean of member competition values.
	AvgCompetition float64 `json:"avg_competition"`

	// Topics is the deduplicated set of words appearing in member
	// keyword texts, lowercased.
	Topics []string `json:"topics,omitempty"`

	// MatchedPage is the best-matching existing page, or nil when the
	// cluster is a content gap.
	MatchedPage *Page `json:"matched_page,omitempty"`

	// MatchScore is the Jaccard similarity of the matched page, zero
	// when no page matched.
	MatchScore float64 `json:"match_score,omitempty"`
}

// IsContentGap reports whether no existing page covers this cluster.
func (c *Cluster) IsContentGap() bool {
	return c.MatchedPage == nil
}

// CalendarEntry is one prioritized item in the content calendar.
type CalendarEntry struct {
	// Action is ActionCreate or ActionOptimize.
	Action string `json:"action"`

	// PillarKeyword identifies the cluster the entry addresses.
	PillarKeyword string `json:"pillar_keyword"`

	// TargetPage is the page to optimize; empty for create entries.
	TargetPage string `json:"target_page,omitempty"`

	// TotalVolume is the cluster's aggregate search volume.
	TotalVolume int `json:"total_volume"`

	// Priority is the composite scheduling priority. Higher first.
	Priority int `json:"priority"`

	// Reason is a human-readable justification for the entry.
	Reason string `json:"reason"`
}

// ClusterReport is the artifact produced by the content clustering stage.
type ClusterReport struct {
	// Clusters are the topical clusters, sorted descending by total volume.
	Clusters []*Cluster `json:"clusters"`

	// ContentGaps counts clusters with no matching page.
	ContentGaps int `json:"content_gaps"`

	// Calendar is the prioritized content calendar, sorted descending
	// by priority.
	Calendar []CalendarEntry `json:"calendar"`
}
