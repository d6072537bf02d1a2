package backlinks

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/seoscan/seoscan/internal/model"
	"github.com/seoscan/seoscan/internal/seoapi"
)

// minAuthorityRank filters out low-quality referring domains.
const minAuthorityRank = 20

// DefaultResultLimit caps the opportunity list.
const DefaultResultLimit = 100

// backlinkClient is the slice of the provider API the finder needs.
type backlinkClient interface {
	ReferringDomains(ctx context.Context, target string) ([]seoapi.ReferringDomain, error)
}

// Finder computes backlink gaps between the operator and its
// competitors.
type Finder struct {
	// client is the provider API client.
	client backlinkClient

	// resultLimit caps the opportunity list.
	resultLimit int

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures a Finder.
type Option func(*Finder)

// WithResultLimit caps the number of opportunities returned.
func WithResultLimit(limit int) Option {
	return func(f *Finder) {
		if limit > 0 {
			f.resultLimit = limit
		}
	}
}

// WithLogger sets a custom logger for the finder.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Finder) {
		f.logger = logger
	}
}

// NewFinder creates a Finder backed by the given API client.
func NewFinder(client backlinkClient, opts ...Option) *Finder {
	f := &Finder{
		client:      client,
		resultLimit: DefaultResultLimit,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// candidate accumulates a referring domain's stats across competitor
// profiles before scoring.
type candidate struct {
	rank        float64
	competitors int
	backlinks   int
}

// Find fetches referring-domain profiles for the operator and each
// competitor, then returns domains that link to at least one competitor
// but not to the operator. Only dofollow links from domains above the
// authority floor qualify. Opportunities are sorted descending by
// score and the result cap is applied in that score order, since the
// score already weighs authority rank heaviest. A competitor profile
// fetch failure aborts the run; a partial intersection would overstate
// the gap.
func (f *Finder) Find(ctx context.Context, domain string, competitors []string) (*model.BacklinkGapReport, error) {
	ours, err := f.client.ReferringDomains(ctx, domain)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch referring domains for %s: %w", domain, err)
	}
	ourDomains := make(map[string]bool, len(ours))
	for _, ref := range ours {
		ourDomains[normalizeDomain(ref.Domain)] = true
	}

	candidates := make(map[string]*candidate)
	for _, comp := range competitors {
		refs, err := f.client.ReferringDomains(ctx, comp)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch referring domains for %s: %w", comp, err)
		}
		for _, ref := range refs {
			if !ref.Dofollow || ref.AuthorityRank <= minAuthorityRank {
				continue
			}
			key := normalizeDomain(ref.Domain)
			if ourDomains[key] {
				continue
			}
			c, ok := candidates[key]
			if !ok {
				c = &candidate{}
				candidates[key] = c
			}
			c.competitors++
			if ref.AuthorityRank > c.rank {
				c.rank = ref.AuthorityRank
			}
			if ref.Backlinks > c.backlinks {
				c.backlinks = ref.Backlinks
			}
		}
	}

	report := &model.BacklinkGapReport{
		Domain:        domain,
		Competitors:   competitors,
		Opportunities: make([]model.BacklinkOpportunity, 0, len(candidates)),
	}
	for dom, c := range candidates {
		score := Score(c.rank, c.competitors, c.backlinks)
		report.Opportunities = append(report.Opportunities, model.BacklinkOpportunity{
			Domain:              dom,
			AuthorityRank:       c.rank,
			CompetitorLinkCount: c.competitors,
			Backlinks:           c.backlinks,
			Score:               score,
			Tier:                model.TierForScore(score),
		})
	}

	sort.SliceStable(report.Opportunities, func(i, j int) bool {
		if report.Opportunities[i].Score != report.Opportunities[j].Score {
			return report.Opportunities[i].Score > report.Opportunities[j].Score
		}
		return report.Opportunities[i].Domain < report.Opportunities[j].Domain
	})
	if len(report.Opportunities) > f.resultLimit {
		report.Opportunities = report.Opportunities[:f.resultLimit]
	}
	report.Summarize()

	f.logger.Info("backlink gap analysis completed",
		"competitors", len(competitors), "opportunities", len(report.Opportunities))

	return report, nil
}

// Score rates a referring domain for outreach: authority dominates,
// breadth of competitor coverage and raw backlink volume refine it.
// round(rank*0.6 + competitorLinkCount*20*0.3 + min(backlinks,1000)/10*0.1).
func Score(rank float64, competitorLinkCount, backlinks int) float64 {
	capped := math.Min(float64(backlinks), 1000)
	return math.Round(rank*0.6 + float64(competitorLinkCount)*20*0.3 + capped/10*0.1)
}

func normalizeDomain(domain string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(domain)), "www.")
}
