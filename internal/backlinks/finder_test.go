package backlinks

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/seoscan/seoscan/internal/model"
	"github.com/seoscan/seoscan/internal/seoapi"
)

// fakeBacklinkClient serves canned referring-domain profiles keyed by
// target.
type fakeBacklinkClient struct {
	profiles map[string][]seoapi.ReferringDomain
	errs     map[string]error
}

func (f *fakeBacklinkClient) ReferringDomains(_ context.Context, target string) ([]seoapi.ReferringDomain, error) {
	if err := f.errs[target]; err != nil {
		return nil, err
	}
	return f.profiles[target], nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ref(domain string, rank float64, backlinks int, dofollow bool) seoapi.ReferringDomain {
	return seoapi.ReferringDomain{Domain: domain, AuthorityRank: rank, Backlinks: backlinks, Dofollow: dofollow}
}

func TestScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                string
		rank                float64
		competitorLinkCount int
		backlinks           int
		want                float64
	}{
		{name: "high authority both competitors", rank: 90, competitorLinkCount: 2, backlinks: 500, want: 71},
		{name: "backlinks capped at 1000", rank: 50, competitorLinkCount: 1, backlinks: 50000, want: 46},
		{name: "single link low volume", rank: 30, competitorLinkCount: 1, backlinks: 10, want: 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Score(tt.rank, tt.competitorLinkCount, tt.backlinks); got != tt.want {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFinderFind(t *testing.T) {
	t.Parallel()

	client := &fakeBacklinkClient{
		profiles: map[string][]seoapi.ReferringDomain{
			"ours.com": {
				ref("already-links.com", 80, 100, true),
			},
			"rival-a.com": {
				ref("authority-site.com", 90, 500, true),
				ref("already-links.com", 80, 100, true), // links to us too, excluded
				ref("nofollow-site.com", 85, 200, false), // nofollow, excluded
				ref("weak-site.com", 15, 50, true),       // below authority floor
			},
			"rival-b.com": {
				ref("authority-site.com", 88, 300, true), // second competitor
				ref("niche-blog.com", 35, 40, true),
			},
		},
	}

	finder := NewFinder(client, WithLogger(quietLogger()))
	report, err := finder.Find(context.Background(), "ours.com", []string{"rival-a.com", "rival-b.com"})
	if err != nil {
		t.Fatal(err)
	}

	if len(report.Opportunities) != 2 {
		t.Fatalf("len(opportunities) = %d, want 2: %+v", len(report.Opportunities), report.Opportunities)
	}

	first := report.Opportunities[0]
	if first.Domain != "authority-site.com" {
		t.Fatalf("first = %q, want authority-site.com", first.Domain)
	}
	if first.CompetitorLinkCount != 2 {
		t.Errorf("competitor link count = %d, want 2", first.CompetitorLinkCount)
	}
	// Highest rank across competitor profiles wins
	if first.AuthorityRank != 90 {
		t.Errorf("authority rank = %v, want 90", first.AuthorityRank)
	}
	// round(90*0.6 + 2*20*0.3 + 500/10*0.1) = round(54+12+5) = 71
	if first.Score != 71 {
		t.Errorf("score = %v, want 71", first.Score)
	}
	if first.Tier != model.TierHigh {
		t.Errorf("tier = %q, want high", first.Tier)
	}

	second := report.Opportunities[1]
	if second.Domain != "niche-blog.com" {
		t.Fatalf("second = %q, want niche-blog.com", second.Domain)
	}
	// round(35*0.6 + 1*20*0.3 + 40/10*0.1) = round(21+6+0.4) = 27
	if second.Score != 27 || second.Tier != model.TierLow {
		t.Errorf("second = %+v, want score 27 tier low", second)
	}

	if report.Summary.HighCount != 1 || report.Summary.LowCount != 1 {
		t.Errorf("summary tiers = %+v", report.Summary)
	}
	if report.Summary.TotalCompetitorLinks != 3 {
		t.Errorf("total competitor links = %d, want 3", report.Summary.TotalCompetitorLinks)
	}
}

func TestFinderFindResultLimit(t *testing.T) {
	t.Parallel()

	client := &fakeBacklinkClient{
		profiles: map[string][]seoapi.ReferringDomain{
			"rival.com": {
				ref("site-a.com", 90, 0, true),
				ref("site-b.com", 80, 0, true),
				ref("site-c.com", 70, 0, true),
			},
		},
	}

	finder := NewFinder(client, WithResultLimit(2), WithLogger(quietLogger()))
	report, err := finder.Find(context.Background(), "ours.com", []string{"rival.com"})
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Opportunities) != 2 {
		t.Fatalf("len(opportunities) = %d, want 2", len(report.Opportunities))
	}
	// Highest scores survive the cap
	if report.Opportunities[0].Domain != "site-a.com" || report.Opportunities[1].Domain != "site-b.com" {
		t.Errorf("kept = %q, %q", report.Opportunities[0].Domain, report.Opportunities[1].Domain)
	}
}

func TestFinderFindFetchFailure(t *testing.T) {
	t.Parallel()

	client := &fakeBacklinkClient{
		errs: map[string]error{"rival.com": errors.New("provider down")},
	}
	finder := NewFinder(client, WithLogger(quietLogger()))

	if _, err := finder.Find(context.Background(), "ours.com", []string{"rival.com"}); err == nil {
		t.Fatal("expected error when a competitor profile fetch fails")
	}
}
