package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/seoscan/seoscan/internal/model"
)

func sampleData() *Data {
	run := model.NewPipelineRun("ours.com", []string{"rival.com"})
	run.Steps = []model.StepResult{
		{Name: "keyword-research", Status: model.StepCompleted, ArtifactPath: "/tmp/keywords.json", Duration: 2 * time.Second},
		{Name: "serp-analysis", Status: model.StepFailed, Error: "provider down", Duration: time.Second},
		{Name: "technical-audit", Status: model.StepSkipped},
	}
	run.Summarize()

	rank := 15
	return &Data{
		Run: run,
		Universe: &model.KeywordUniverse{
			Seeds: []string{"seo"},
			Keywords: []model.KeywordRecord{
				{Keyword: "seo tools", Volume: 1000, CPC: 2, Competition: 50, OpportunityScore: 2000, Source: model.SourceSeed},
			},
		},
		SerpGaps: &model.SerpGapReport{
			Domain:      "ours.com",
			Competitors: []string{"rival.com"},
			Opportunities: []model.GapOpportunity{
				{Keyword: "seo tools", Score: 10, Tier: model.TierLow, CompetitorCount: 1},
				{Keyword: "seo audit", Score: 5, Tier: model.TierLow, CompetitorCount: 1, OurRank: &rank},
			},
		},
		Backlinks: &model.BacklinkGapReport{
			Domain: "ours.com",
			Opportunities: []model.BacklinkOpportunity{
				{Domain: "authority-site.com", AuthorityRank: 90, CompetitorLinkCount: 2, Score: 71, Tier: model.TierHigh},
			},
			Summary: model.BacklinkSummary{HighCount: 1, AvgAuthorityRank: 90, TotalCompetitorLinks: 2},
		},
		Clusters: &model.ClusterReport{
			Clusters:    []*model.Cluster{{PillarKeyword: "seo tools", TotalVolume: 1000}},
			ContentGaps: 1,
			Calendar: []model.CalendarEntry{
				{Action: model.ActionCreate, PillarKeyword: "seo tools", TotalVolume: 1000, Priority: 20, Reason: "no existing page"},
			},
		},
		Linking: &model.LinkingReport{
			Recommendations: []model.LinkRecommendation{
				{SourcePage: "/a", TargetPage: "/b", SuggestedAnchorText: "seo", RelevanceScore: 60, Priority: 70},
			},
		},
		Audit: &model.AuditReport{
			TargetURL: "https://ours.com",
			Summary:   model.CrawlSummary{PagesCrawled: 10, BrokenLinks: 2},
			Issues: []model.AuditIssue{
				{Check: model.CheckBrokenLinks, Severity: model.SeverityCritical, SeverityText: "critical", Count: 2,
					Recommendation: "Fix or remove broken links."},
			},
		},
	}
}

func TestJSONWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewJSONWriter(&buf, WithPrettyPrint(), WithVersion("1.2.3"))

	n, err := w.Write(sampleData())
	if err != nil {
		t.Fatal(err)
	}
	if n == 0 {
		t.Fatal("nothing written")
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["version"] != "1.2.3" {
		t.Errorf("version = %v", decoded["version"])
	}
	for _, key := range []string{"run", "keywords", "serp_gaps", "backlink_gaps", "clusters", "internal_linking", "technical_audit"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
}

func TestJSONWriterOmitsMissingStages(t *testing.T) {
	t.Parallel()

	run := model.NewPipelineRun("ours.com", nil)
	run.Summarize()

	var buf bytes.Buffer
	if _, err := NewJSONWriter(&buf).Write(&Data{Run: run}); err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if _, ok := decoded["keywords"]; ok {
		t.Error("nil universe should be omitted")
	}
}

func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := NewMarkdownWriter(&buf).Write(sampleData()); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{
		"# SEO Analysis Report",
		"## Pipeline Steps",
		"## Keyword Opportunities",
		"## SERP Gaps",
		"## Backlink Opportunities",
		"## Content Calendar",
		"## Internal Link Recommendations",
		"## Technical Audit",
		"seo tools",
		"authority-site.com",
		"broken_links",
		"mermaid",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q", want)
		}
	}
}

func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := NewSimpleWriter(&buf).Write(sampleData()); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{
		"SEO ANALYSIS REPORT",
		"PIPELINE STEPS",
		"PARTIAL - 1 of 3 steps failed",
		"KEYWORD OPPORTUNITIES",
		"SERP GAPS",
		"BACKLINK OPPORTUNITIES",
		"CONTENT CALENDAR",
		"INTERNAL LINK RECOMMENDATIONS",
		"TECHNICAL AUDIT",
		"provider down",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q", want)
		}
	}
}

func TestSimpleWriterVerboseShowsRecommendations(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := NewSimpleWriter(&buf, WithVerbose(true)).Write(sampleData()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Fix or remove broken links.") {
		t.Error("verbose output should include recommendations")
	}
}

func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	mw := NewMultiWriter(NewSimpleWriter(&a), NewJSONWriter(&b))

	if _, err := mw.Write(sampleData()); err != nil {
		t.Fatal(err)
	}
	if a.Len() == 0 || b.Len() == 0 {
		t.Error("both writers should receive output")
	}
}
