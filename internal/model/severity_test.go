package model

import "testing"

// TestSeverityString tests the String method of Severity.
func TestSeverityString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		severity Severity
		expected string
	}{
		{SeverityLow, "LOW"},
		{SeverityMedium, "MEDIUM"},
		{SeverityHigh, "HIGH"},
		{SeverityCritical, "CRITICAL"},
		{Severity(999), "UNKNOWN"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			if tc.severity.String() != tc.expected {
				t.Errorf("got %q, expected %q", tc.severity.String(), tc.expected)
			}
		})
	}
}

// TestSeverityOrdering tests that severity levels are ordered correctly.
// Low < Medium < High < Critical.
func TestSeverityOrdering(t *testing.T) {
	t.Parallel()

	if !(SeverityLow < SeverityMedium && SeverityMedium < SeverityHigh && SeverityHigh < SeverityCritical) {
		t.Error("severity levels are not strictly ordered")
	}
}

// TestTierForScore tests the tier boundaries. A score of exactly 70 is
// high and exactly 40 is medium; one below each boundary falls through.
func TestTierForScore(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		score    float64
		expected Tier
	}{
		{"score 70 is high", 70, TierHigh},
		{"score 69 is medium", 69, TierMedium},
		{"score 40 is medium", 40, TierMedium},
		{"score 39 is low", 39, TierLow},
		{"score 100 is high", 100, TierHigh},
		{"score 0 is low", 0, TierLow},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := TierForScore(tc.score); got != tc.expected {
				t.Errorf("TierForScore(%v) = %v, expected %v", tc.score, got, tc.expected)
			}
		})
	}
}
