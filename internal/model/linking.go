package model

// LinkRecommendation proposes a new internal link between two pages.
// Recommendations never duplicate an existing edge with the same source
// and target.
type LinkRecommendation struct {
	// SourcePage is the path of the page that should add the link.
	SourcePage string `json:"source_page"`

	// TargetPage is the path of the page to link to.
	TargetPage string `json:"target_page"`

	// SuggestedAnchorText is the target's first topic keyword, or its
	// title when no keywords were detected.
	SuggestedAnchorText string `json:"suggested_anchor_text"`

	// RelevanceScore is the pair's Jaccard relevance scaled to [0,100].
	RelevanceScore float64 `json:"relevance_score"`

	// Priority is the composite ordering score. Higher first.
	Priority int `json:"priority"`

	// Reason is a human-readable justification.
	Reason string `json:"reason"`
}

// LinkingMap is the descriptive graph of existing internal links: nodes
// are known pages, edges are existing links whose target resolves to a
// known page. It reflects current state and is never merged with the
// prescriptive recommendation list.
type LinkingMap struct {
	// Nodes are the page paths present in the graph.
	Nodes []string `json:"nodes"`

	// Edges are the resolved existing links.
	Edges []LinkEdge `json:"edges"`
}

// LinkingReport is the artifact produced by the internal linking stage.
type LinkingReport struct {
	// Map is the current-state link graph.
	Map LinkingMap `json:"map"`

	// Recommendations are proposed new links, sorted descending by
	// priority.
	Recommendations []LinkRecommendation `json:"recommendations"`
}
