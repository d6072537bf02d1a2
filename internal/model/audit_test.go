package model

import "testing"

// TestGetCheckInfo tests the static check-to-severity mapping.
func TestGetCheckInfo(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		check    string
		expected Severity
	}{
		{CheckBrokenLinks, SeverityCritical},
		{CheckMissingTitle, SeverityHigh},
		{CheckThinContent, SeverityHigh},
		{CheckMissingH1, SeverityHigh},
		{CheckDuplicateTitle, SeverityHigh},
		{CheckMissingDescription, SeverityMedium},
		{CheckDuplicateDescription, SeverityMedium},
		{CheckOversizedPages, SeverityMedium},
		{CheckMissingStructuredData, SeverityLow},

		// Unknown check defaults to low with a manual-review prompt
		{"unknown_check", SeverityLow},
	}

	for _, tc := range testCases {
		t.Run(tc.check, func(t *testing.T) {
			t.Parallel()
			info := GetCheckInfo(tc.check)
			if info.Severity != tc.expected {
				t.Errorf("GetCheckInfo(%q).Severity = %v, expected %v", tc.check, info.Severity, tc.expected)
			}
			if info.Impact == "" || info.Recommendation == "" {
				t.Errorf("GetCheckInfo(%q) has empty impact or recommendation", tc.check)
			}
		})
	}
}

// TestBacklinkReportSummarize tests that summary statistics are derived
// from the opportunity list.
func TestBacklinkReportSummarize(t *testing.T) {
	t.Parallel()

	report := &BacklinkGapReport{
		Opportunities: []BacklinkOpportunity{
			{Domain: "a.com", AuthorityRank: 80, CompetitorLinkCount: 3, Score: 75, Tier: TierHigh},
			{Domain: "b.com", AuthorityRank: 60, CompetitorLinkCount: 2, Score: 55, Tier: TierMedium},
			{Domain: "c.com", AuthorityRank: 40, CompetitorLinkCount: 1, Score: 30, Tier: TierLow},
		},
	}
	report.Summarize()

	if report.Summary.HighCount != 1 || report.Summary.MediumCount != 1 || report.Summary.LowCount != 1 {
		t.Errorf("tier counts = %d/%d/%d, expected 1/1/1",
			report.Summary.HighCount, report.Summary.MediumCount, report.Summary.LowCount)
	}
	if report.Summary.AvgAuthorityRank != 60 {
		t.Errorf("AvgAuthorityRank = %v, expected 60", report.Summary.AvgAuthorityRank)
	}
	if report.Summary.TotalCompetitorLinks != 6 {
		t.Errorf("TotalCompetitorLinks = %d, expected 6", report.Summary.TotalCompetitorLinks)
	}
}
