package model

// Severity represents the impact level of a technical audit issue.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed.
type Severity int

const (
	// SeverityLow indicates cosmetic issues with limited ranking impact.
	// Examples: missing structured data markup on secondary pages.
	SeverityLow Severity = iota

	// SeverityMedium indicates issues that degrade search appearance.
	// Examples: duplicate meta descriptions, oversized pages.
	SeverityMedium

	// SeverityHigh indicates issues that measurably hurt rankings.
	// Examples: missing titles, thin content, missing H1 headings.
	SeverityHigh

	// SeverityCritical indicates issues that block indexing or crawling.
	// Examples: broken internal links, pages returning server errors.
	SeverityCritical
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Tier represents the priority bucket of a scored opportunity record.
// SERP gaps and backlink opportunities carry both a numeric score and
// a tier derived from it.
type Tier string

const (
	// TierHigh marks opportunities worth immediate attention.
	TierHigh Tier = "high"

	// TierMedium marks opportunities worth scheduling.
	TierMedium Tier = "medium"

	// TierLow marks opportunities to revisit when capacity allows.
	TierLow Tier = "low"
)

// TierForScore maps a numeric opportunity score to a priority tier.
// Scores of 70 and above are high, 40 to 69 are medium, the rest low.
func TierForScore(score float64) Tier {
	switch {
	case score >= 70:
		return TierHigh
	case score >= 40:
		return TierMedium
	default:
		return TierLow
	}
}
