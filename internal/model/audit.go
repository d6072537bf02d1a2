package model

// Technical audit check identifiers. These are the aggregate checks a
// site crawl reports; each maps to a fixed severity and remediation.
const (
	CheckMissingTitle          = "missing_title"
	CheckMissingDescription    = "missing_description"
	CheckDuplicateTitle        = "duplicate_title"
	CheckDuplicateDescription  = "duplicate_description"
	CheckBrokenLinks           = "broken_links"
	CheckThinContent           = "thin_content"
	CheckOversizedPages        = "oversized_pages"
	CheckMissingH1             = "missing_h1"
	CheckMissingStructuredData = "missing_structured_data"
)

// CheckInfo contains the fixed metadata for an audit check: its severity,
// the ranking impact, and the recommended fix.
type CheckInfo struct {
	Severity       Severity
	Impact         string
	Recommendation string
}

// checkInfoMapping maps audit checks to their metadata. The mapping is a
// static lookup table, not a computed score; this keeps impact assessment
// consistent across runs and easy to review.
var checkInfoMapping = map[string]CheckInfo{
	// CRITICAL - Blocks crawling or indexing
	CheckBrokenLinks: {
		Severity:       SeverityCritical,
		Impact:         "Broken internal links waste crawl budget and strand link equity on dead ends.",
		Recommendation: "Fix or remove broken links. Add redirects for moved pages.",
	},

	// HIGH - Measurable ranking damage
	CheckMissingTitle: {
		Severity:       SeverityHigh,
		Impact:         "Pages without titles cannot compete for their target queries and show poorly in results.",
		Recommendation: "Write a unique, keyword-focused title tag of 50-60 characters for each page.",
	},
	CheckThinContent: {
		Severity:       SeverityHigh,
		Impact:         "Thin pages are treated as low quality and can drag down the whole site's assessment.",
		Recommendation: "Expand thin pages to cover their topic fully, or consolidate them into stronger pages.",
	},
	CheckMissingH1: {
		Severity:       SeverityHigh,
		Impact:         "A missing H1 removes the strongest on-page topical signal after the title.",
		Recommendation: "Add exactly one H1 per page containing the primary keyword.",
	},
	CheckDuplicateTitle: {
		Severity:       SeverityHigh,
		Impact:         "Duplicate titles make pages compete against each other and dilute relevance signals.",
		Recommendation: "Differentiate titles so each page targets a distinct query.",
	},

	// MEDIUM - Degraded search appearance
	CheckMissingDescription: {
		Severity:       SeverityMedium,
		Impact:         "Without a meta description, search engines synthesize snippets that often lower click-through.",
		Recommendation: "Write a unique 150-160 character meta description with a clear call to action.",
	},
	CheckDuplicateDescription: {
		Severity:       SeverityMedium,
		Impact:         "Duplicate descriptions produce identical snippets and depress click-through across pages.",
		Recommendation: "Write page-specific descriptions, starting with the highest-traffic pages.",
	},
	CheckOversizedPages: {
		Severity:       SeverityMedium,
		Impact:         "Oversized pages load slowly, hurting both rankings and user engagement.",
		Recommendation: "Compress images, defer non-critical scripts, and keep pages under 2MB.",
	},

	// LOW - Missed enhancement
	CheckMissingStructuredData: {
		Severity:       SeverityLow,
		Impact:         "Without structured data the site is ineligible for rich results.",
		Recommendation: "Add JSON-LD markup for the content type (Article, Product, FAQ).",
	},
}

// GetCheckInfo returns the metadata for an audit check. Unknown checks
// default to a low-severity entry prompting manual review.
func GetCheckInfo(check string) CheckInfo {
	if info, ok := checkInfoMapping[check]; ok {
		return info
	}
	return CheckInfo{
		Severity:       SeverityLow,
		Impact:         "Unknown check type. Review manually.",
		Recommendation: "Investigate the reported check and assess impact.",
	}
}

// CrawlSummary holds the aggregate check counts from a site crawl.
type CrawlSummary struct {
	PagesCrawled           int `json:"pages_crawled"`
	MissingTitle           int `json:"missing_title"`
	MissingDescription     int `json:"missing_description"`
	DuplicateTitle         int `json:"duplicate_title"`
	DuplicateDescription   int `json:"duplicate_description"`
	BrokenLinks            int `json:"broken_links"`
	ThinContent            int `json:"thin_content"`
	OversizedPages         int `json:"oversized_pages"`
	MissingH1              int `json:"missing_h1"`
	MissingStructuredData  int `json:"missing_structured_data"`
}

// CrawlPage is one per-page result from a site crawl.
type CrawlPage struct {
	URL               string  `json:"url"`
	StatusCode        int     `json:"status_code"`
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	H1Count           int     `json:"h1_count"`
	WordCount         int     `json:"word_count"`
	SizeBytes         int     `json:"size_bytes"`
	LoadTimeMS        int     `json:"load_time_ms"`
	HasStructuredData bool    `json:"has_structured_data"`
}

// AuditIssue is one severity-classified aggregate finding.
type AuditIssue struct {
	// Check is the audit check identifier.
	Check string `json:"check"`

	// Severity is the fixed severity from the check mapping.
	Severity Severity `json:"severity"`

	// SeverityText is Severity.String(), persisted for readability.
	SeverityText string `json:"severity_text"`

	// Count is the number of pages affected.
	Count int `json:"count"`

	// Impact and Recommendation come from the check mapping.
	Impact         string `json:"impact"`
	Recommendation string `json:"recommendation"`
}

// PageIssue lists the human-readable issues found on a single URL.
// Page issues are derived independently from per-page metadata and are
// not deduplicated against the aggregate counts.
type PageIssue struct {
	URL    string   `json:"url"`
	Issues []string `json:"issues"`
}

// AuditReport is the artifact produced by the technical audit stage.
type AuditReport struct {
	// TargetURL is the site that was crawled.
	TargetURL string `json:"target_url"`

	// Summary is the crawl's aggregate check counts.
	Summary CrawlSummary `json:"summary"`

	// Issues are the classified aggregate findings, sorted by severity
	// descending.
	Issues []AuditIssue `json:"issues"`

	// PageIssues are the per-URL issue lists.
	PageIssues []PageIssue `json:"page_issues,omitempty"`
}
