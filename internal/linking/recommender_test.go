package linking

import (
	"io"
	"log/slog"
	"testing"

	"github.com/seoscan/seoscan/internal/model"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRecommenderRecommend(t *testing.T) {
	t.Parallel()

	pages := []*model.Page{
		{
			Path:      "/blog/keyword-research",
			Title:     "Keyword Research Guide",
			Keywords:  []string{"keyword research", "seo"},
			WordCount: 1500,
		},
		{
			Path:      "/blog/keyword-tools",
			Title:     "Keyword Research Tools",
			Keywords:  []string{"keyword tools", "seo"},
			WordCount: 800,
		},
		{
			Path:      "/legal/privacy",
			Title:     "Privacy Policy",
			WordCount: 400,
		},
	}

	rec := NewRecommender(WithLogger(quietLogger()))
	report := rec.Recommend(pages)

	// The two keyword pages should recommend each other; the privacy
	// policy is topically unrelated to both.
	if len(report.Recommendations) != 2 {
		t.Fatalf("len(recommendations) = %d, want 2: %+v", len(report.Recommendations), report.Recommendations)
	}
	for _, r := range report.Recommendations {
		if r.SourcePage == "/legal/privacy" || r.TargetPage == "/legal/privacy" {
			t.Errorf("privacy policy should not appear: %+v", r)
		}
	}

	// Anchor text comes from the target's first keyword
	first := report.Recommendations[0]
	if first.SuggestedAnchorText != "keyword research" && first.SuggestedAnchorText != "keyword tools" {
		t.Errorf("anchor = %q", first.SuggestedAnchorText)
	}
	if first.Priority < report.Recommendations[1].Priority {
		t.Error("recommendations not sorted descending by priority")
	}
}

func TestRecommenderSkipsExistingLinks(t *testing.T) {
	t.Parallel()

	pages := []*model.Page{
		{
			Path:     "/a",
			Title:    "shared topic words here",
			Keywords: []string{"shared"},
			ExistingLinks: []model.LinkEdge{
				{SourceURL: "/a", TargetURL: "/b/", Kind: model.LinkKindExisting},
			},
		},
		{
			Path:     "/b",
			Title:    "shared topic words here",
			Keywords: []string{"shared"},
		},
	}

	rec := NewRecommender(WithLogger(quietLogger()))
	report := rec.Recommend(pages)

	// /a already links to /b (trailing slash is the same destination),
	// so only /b -> /a remains.
	if len(report.Recommendations) != 1 {
		t.Fatalf("len(recommendations) = %d, want 1: %+v", len(report.Recommendations), report.Recommendations)
	}
	r := report.Recommendations[0]
	if r.SourcePage != "/b" || r.TargetPage != "/a" {
		t.Errorf("recommendation = %+v, want /b -> /a", r)
	}
}

func TestRecommenderNoDuplicateOfExistingEdge(t *testing.T) {
	t.Parallel()

	pages := []*model.Page{
		{Path: "/x", Title: "alpha beta gamma", Keywords: []string{"alpha"},
			ExistingLinks: []model.LinkEdge{{SourceURL: "/x", TargetURL: "/y", Kind: model.LinkKindExisting}}},
		{Path: "/y", Title: "alpha beta gamma", Keywords: []string{"alpha"},
			ExistingLinks: []model.LinkEdge{{SourceURL: "/y", TargetURL: "/x", Kind: model.LinkKindExisting}}},
	}

	rec := NewRecommender(WithLogger(quietLogger()))
	report := rec.Recommend(pages)

	existing := make(map[[2]string]bool)
	for _, e := range report.Map.Edges {
		existing[[2]string{e.SourceURL, e.TargetURL}] = true
	}
	for _, r := range report.Recommendations {
		if existing[[2]string{r.SourcePage, r.TargetPage}] {
			t.Errorf("recommendation duplicates existing edge: %+v", r)
		}
	}
	if len(report.Recommendations) != 0 {
		t.Errorf("len(recommendations) = %d, want 0", len(report.Recommendations))
	}
}

func TestRecommenderTopTargetsPerSource(t *testing.T) {
	t.Parallel()

	// One hub page related to 12 spokes; only the 10 best survive.
	pages := []*model.Page{{
		Path:     "/hub",
		Title:    "topic one two three",
		Keywords: []string{"topic"},
	}}
	for i := 0; i < 12; i++ {
		pages = append(pages, &model.Page{
			Path:     "/spoke-" + string(rune('a'+i)),
			Title:    "topic one two three",
			Keywords: []string{"topic"},
			// Varying word count varies priority
			WordCount: i * 100,
		})
	}

	rec := NewRecommender(WithLogger(quietLogger()))
	report := rec.Recommend(pages)

	perSource := make(map[string]int)
	for _, r := range report.Recommendations {
		perSource[r.SourcePage]++
	}
	if perSource["/hub"] != 10 {
		t.Errorf("recommendations from /hub = %d, want 10", perSource["/hub"])
	}
}

func TestRecommenderCapKeepsHighestRelevance(t *testing.T) {
	t.Parallel()

	// Eleven candidates for one source: ten perfect matches with no
	// keywords, and one weaker match whose keyword count gives it the
	// highest priority. The cap must keep the ten perfect matches; the
	// keyword term only affects ordering, never membership.
	source := &model.Page{Path: "/hub", Title: "alpha beta gamma delta epsilon"}
	pages := []*model.Page{source}
	for i := 0; i < 10; i++ {
		pages = append(pages, &model.Page{
			Path:  "/exact-" + string(rune('a'+i)),
			Title: "alpha beta gamma delta epsilon",
		})
	}
	pages = append(pages, &model.Page{
		Path:  "/decoy",
		Title: "alpha beta gamma delta",
		// Keywords repeat title tokens, so relevance stays at 0.8
		// while priority climbs to 80 + 12*2 = 104, above the 100 of
		// every exact match.
		Keywords: []string{
			"alpha", "beta", "gamma", "delta",
			"alpha", "beta", "gamma", "delta",
			"alpha", "beta", "gamma", "delta",
		},
	})

	rec := NewRecommender(WithLogger(quietLogger()))
	report := rec.Recommend(pages)

	fromHub := 0
	for _, r := range report.Recommendations {
		if r.SourcePage != "/hub" {
			continue
		}
		fromHub++
		if r.TargetPage == "/decoy" {
			t.Errorf("lower-relevance target survived the cap: %+v", r)
		}
		if r.RelevanceScore != 100 {
			t.Errorf("kept target %s relevance = %v, want 100", r.TargetPage, r.RelevanceScore)
		}
	}
	if fromHub != 10 {
		t.Errorf("recommendations from /hub = %d, want 10", fromHub)
	}
}

func TestBuildMapResolvesKnownPagesOnly(t *testing.T) {
	t.Parallel()

	pages := []*model.Page{
		{Path: "/a", ExistingLinks: []model.LinkEdge{
			{SourceURL: "/a", TargetURL: "/b", Kind: model.LinkKindExisting},
			{SourceURL: "/a", TargetURL: "/gone", Kind: model.LinkKindExisting},
		}},
		{Path: "/b"},
	}

	m := buildMap(pages)
	if len(m.Nodes) != 2 {
		t.Fatalf("nodes = %v, want 2", m.Nodes)
	}
	if len(m.Edges) != 1 {
		t.Fatalf("edges = %+v, want only the resolvable edge", m.Edges)
	}
	if m.Edges[0].TargetURL != "/b" {
		t.Errorf("edge target = %q, want /b", m.Edges[0].TargetURL)
	}
}
