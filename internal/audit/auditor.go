package audit

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/seoscan/seoscan/internal/model"
	"github.com/seoscan/seoscan/internal/seoapi"
)

// Per-page issue thresholds.
const (
	thinContentWords = 300
	oversizedBytes   = 2 * 1024 * 1024
	slowLoadMS       = 3000
)

// crawlClient is the slice of the provider API the auditor needs.
type crawlClient interface {
	PostCrawlTask(ctx context.Context, targetURL string) (string, error)
	GetCrawlResult(ctx context.Context, taskID string) (*seoapi.CrawlTaskResult, error)
}

// Auditor runs technical site audits through the provider's crawler.
type Auditor struct {
	// client is the provider API client.
	client crawlClient

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures an Auditor.
type Option func(*Auditor)

// WithLogger sets a custom logger for the auditor.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Auditor) {
		a.logger = logger
	}
}

// NewAuditor creates an Auditor backed by the given API client.
func NewAuditor(client crawlClient, opts ...Option) *Auditor {
	a := &Auditor{
		client: client,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Audit crawls the target site and classifies what the crawl found.
// Aggregate counts become severity-ranked issues; each crawled page is
// additionally checked on its own metadata, independent of the
// aggregates.
func (a *Auditor) Audit(ctx context.Context, targetURL string) (*model.AuditReport, error) {
	taskID, err := a.client.PostCrawlTask(ctx, targetURL)
	if err != nil {
		return nil, fmt.Errorf("failed to submit crawl task for %s: %w", targetURL, err)
	}

	result, err := a.client.GetCrawlResult(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve crawl result for %s: %w", targetURL, err)
	}

	report := &model.AuditReport{
		TargetURL: targetURL,
		Summary:   result.Summary,
		Issues:    classifyChecks(result.Summary),
	}
	for _, page := range result.Pages {
		if issues := pageIssues(page); len(issues) > 0 {
			report.PageIssues = append(report.PageIssues, model.PageIssue{
				URL:    page.URL,
				Issues: issues,
			})
		}
	}

	a.logger.Info("technical audit completed",
		"target", targetURL,
		"pages", result.Summary.PagesCrawled,
		"issues", len(report.Issues),
		"pages_with_issues", len(report.PageIssues))

	return report, nil
}

// classifyChecks turns non-zero aggregate counts into issues, sorted by
// severity descending with count as the tiebreak.
func classifyChecks(summary model.CrawlSummary) []model.AuditIssue {
	counts := map[string]int{
		model.CheckMissingTitle:          summary.MissingTitle,
		model.CheckMissingDescription:    summary.MissingDescription,
		model.CheckDuplicateTitle:        summary.DuplicateTitle,
		model.CheckDuplicateDescription:  summary.DuplicateDescription,
		model.CheckBrokenLinks:           summary.BrokenLinks,
		model.CheckThinContent:           summary.ThinContent,
		model.CheckOversizedPages:        summary.OversizedPages,
		model.CheckMissingH1:             summary.MissingH1,
		model.CheckMissingStructuredData: summary.MissingStructuredData,
	}

	var issues []model.AuditIssue
	for check, count := range counts {
		if count == 0 {
			continue
		}
		info := model.GetCheckInfo(check)
		issues = append(issues, model.AuditIssue{
			Check:          check,
			Severity:       info.Severity,
			SeverityText:   info.Severity.String(),
			Count:          count,
			Impact:         info.Impact,
			Recommendation: info.Recommendation,
		})
	}

	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Severity != issues[j].Severity {
			return issues[i].Severity > issues[j].Severity
		}
		if issues[i].Count != issues[j].Count {
			return issues[i].Count > issues[j].Count
		}
		return issues[i].Check < issues[j].Check
	})
	return issues
}

// pageIssues derives the issue list for one crawled page from its own
// metadata and timing.
func pageIssues(page model.CrawlPage) []string {
	var issues []string
	if page.StatusCode >= 400 {
		issues = append(issues, fmt.Sprintf("returns HTTP %d", page.StatusCode))
	}
	if page.Title == "" {
		issues = append(issues, "missing title tag")
	}
	if page.Description == "" {
		issues = append(issues, "missing meta description")
	}
	switch {
	case page.H1Count == 0:
		issues = append(issues, "missing H1 heading")
	case page.H1Count > 1:
		issues = append(issues, fmt.Sprintf("has %d H1 headings, should have exactly one", page.H1Count))
	}
	if page.WordCount > 0 && page.WordCount < thinContentWords {
		issues = append(issues, fmt.Sprintf("thin content (%d words)", page.WordCount))
	}
	if page.SizeBytes > oversizedBytes {
		issues = append(issues, fmt.Sprintf("page size %.1fMB exceeds 2MB", float64(page.SizeBytes)/(1024*1024)))
	}
	if page.LoadTimeMS > slowLoadMS {
		issues = append(issues, fmt.Sprintf("slow load time (%dms)", page.LoadTimeMS))
	}
	if !page.HasStructuredData {
		issues = append(issues, "no structured data markup")
	}
	return issues
}
