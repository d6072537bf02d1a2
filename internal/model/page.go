package model

import "strings"

// LinkEdge kinds distinguish links that already exist on a page from
// links the recommender proposes to add.
const (
	// LinkKindExisting marks a link present in the page markup.
	LinkKindExisting = "existing"

	// LinkKindRecommended marks a link proposed by the recommender.
	LinkKindRecommended = "recommended"
)

// Page represents one content page extracted from the site's content
// directory. Pages are read-only inputs to the clustering and linking
// stages; the extractor is the only producer.
type Page struct {
	// Path is the page's path relative to the content root, normalized
	// to a URL path (e.g. "/blog/keyword-research").
	Path string `json:"path"`

	// Title is the page title from the <title> tag.
	Title string `json:"title,omitempty"`

	// Description is the meta description.
	Description string `json:"description,omitempty"`

	// Headings contains the h1-h3 heading texts in document order.
	Headings []string `json:"headings,omitempty"`

	// RawContent is the whitespace-collapsed visible text of the page.
	// Used for word counting; excluded from artifacts to keep them small.
	RawContent string `json:"-"`

	// Keywords are the topic keywords detected for the page, from the
	// meta keywords tag and heading analysis. Lowercased.
	Keywords []string `json:"keywords,omitempty"`

	// ExistingLinks are the internal links found in the page markup.
	ExistingLinks []LinkEdge `json:"existing_links,omitempty"`

	// WordCount is the number of words in the visible text.
	WordCount int `json:"word_count"`
}

// LinkEdge is a directed internal link between two pages.
type LinkEdge struct {
	// SourceURL is the linking page's path.
	SourceURL string `json:"source_url"`

	// TargetURL is the linked page's path.
	TargetURL string `json:"target_url"`

	// AnchorText is the visible anchor text of the link.
	AnchorText string `json:"anchor_text,omitempty"`

	// Kind is either LinkKindExisting or LinkKindRecommended.
	Kind string `json:"kind"`
}

// HasLinkTo reports whether the page already links to the given target.
// Targets are compared exactly and with a trailing slash added or removed,
// so "/pricing" and "/pricing/" are the same destination.
func (p *Page) HasLinkTo(target string) bool {
	for _, edge := range p.ExistingLinks {
		if sameTarget(edge.TargetURL, target) {
			return true
		}
	}
	return false
}

// sameTarget compares two URL paths ignoring a trailing slash.
func sameTarget(a, b string) bool {
	if a == b {
		return true
	}
	return strings.TrimSuffix(a, "/") == strings.TrimSuffix(b, "/")
}

// SyntheticText returns the page's text used for similarity matching:
// title, description, and headings joined with spaces.
func (p *Page) SyntheticText() string {
	parts := make([]string, 0, 2+len(p.Headings))
	if p.Title != "" {
		parts = append(parts, p.Title)
	}
	if p.Description != "" {
		parts = append(parts, p.Description)
	}
	parts = append(parts, p.Headings...)
	return strings.Join(parts, " ")
}
