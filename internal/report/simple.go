package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/seoscan/seoscan/internal/model"
)

// runDurationPrecision rounds durations for display.
const runDurationPrecision = time.Millisecond

// maxListItems caps per-section lists in the text output.
const maxListItems = 10

// SimpleWriter outputs human-readable text reports for terminal
// display. Plain ASCII formatting pipes cleanly to files and other
// tools.
type SimpleWriter struct {
	baseWriter

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given
// writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the full report in human-readable format.
func (w *SimpleWriter) Write(data *Data) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, data.Run)
	w.writeSteps(&sb, data.Run)
	w.writeKeywords(&sb, data.Universe)
	w.writeSerpGaps(&sb, data.SerpGaps)
	w.writeBacklinks(&sb, data.Backlinks)
	w.writeClusters(&sb, data.Clusters)
	w.writeLinking(&sb, data.Linking)
	w.writeAudit(&sb, data.Audit)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, run *model.PipelineRun) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                        SEO ANALYSIS REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Domain:      %s\n", run.Domain))
	if len(run.Competitors) > 0 {
		sb.WriteString(fmt.Sprintf("Competitors: %s\n", strings.Join(run.Competitors, ", ")))
	}
	sb.WriteString(fmt.Sprintf("Started:     %s\n", run.StartedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Duration:    %s\n", run.Summary.Duration.Round(runDurationPrecision)))

	if run.Summary.FailedSteps > 0 {
		sb.WriteString(fmt.Sprintf("Status:      PARTIAL - %d of %d steps failed\n",
			run.Summary.FailedSteps, run.Summary.TotalSteps))
	} else {
		sb.WriteString("Status:      Complete\n")
	}
	sb.WriteString("\n")
}

// section writes a section divider with title.
func section(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
}

// writeSteps writes the per-step outcomes.
func (w *SimpleWriter) writeSteps(sb *strings.Builder, run *model.PipelineRun) {
	section(sb, "PIPELINE STEPS")

	for _, step := range run.Steps {
		line := fmt.Sprintf("  [%-9s] %-20s %s",
			strings.ToUpper(string(step.Status)), step.Name,
			step.Duration.Round(runDurationPrecision))
		if step.Error != "" {
			line += "  " + step.Error
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n")
}

// writeKeywords writes the top keyword opportunities.
func (w *SimpleWriter) writeKeywords(sb *strings.Builder, universe *model.KeywordUniverse) {
	if universe == nil {
		return
	}
	section(sb, "KEYWORD OPPORTUNITIES")

	sb.WriteString(fmt.Sprintf("  %d keywords from %d seeds. Top opportunities:\n\n",
		len(universe.Keywords), len(universe.Seeds)))
	for i, kw := range universe.Keywords {
		if i >= maxListItems {
			break
		}
		sb.WriteString(fmt.Sprintf("  %5.0f  %-40s vol=%d cpc=%.2f comp=%.0f\n",
			kw.OpportunityScore, kw.Keyword, kw.Volume, kw.CPC, kw.Competition))
	}
	sb.WriteString("\n")
}

// writeSerpGaps writes the ranking gaps.
func (w *SimpleWriter) writeSerpGaps(sb *strings.Builder, gaps *model.SerpGapReport) {
	if gaps == nil {
		return
	}
	section(sb, "SERP GAPS")

	if len(gaps.Opportunities) == 0 {
		sb.WriteString("  No ranking gaps against the configured competitors.\n\n")
		return
	}
	for i, opp := range gaps.Opportunities {
		if i >= maxListItems {
			break
		}
		rank := "not ranking"
		if opp.OurRank != nil {
			rank = fmt.Sprintf("rank %d", *opp.OurRank)
		}
		sb.WriteString(fmt.Sprintf("  [%-6s] %-40s score=%.0f (%d competitors, we are %s)\n",
			opp.Tier, opp.Keyword, opp.Score, opp.CompetitorCount, rank))
	}
	sb.WriteString("\n")
}

// writeBacklinks writes the backlink opportunities.
func (w *SimpleWriter) writeBacklinks(sb *strings.Builder, gaps *model.BacklinkGapReport) {
	if gaps == nil {
		return
	}
	section(sb, "BACKLINK OPPORTUNITIES")

	sb.WriteString(fmt.Sprintf("  HIGH:   %d\n", gaps.Summary.HighCount))
	sb.WriteString(fmt.Sprintf("  MEDIUM: %d\n", gaps.Summary.MediumCount))
	sb.WriteString(fmt.Sprintf("  LOW:    %d\n\n", gaps.Summary.LowCount))

	for i, opp := range gaps.Opportunities {
		if i >= maxListItems {
			break
		}
		sb.WriteString(fmt.Sprintf("  [%-6s] %-35s authority=%.0f links_to=%d competitors score=%.0f\n",
			opp.Tier, opp.Domain, opp.AuthorityRank, opp.CompetitorLinkCount, opp.Score))
	}
	sb.WriteString("\n")
}

// writeClusters writes the content calendar.
func (w *SimpleWriter) writeClusters(sb *strings.Builder, clusters *model.ClusterReport) {
	if clusters == nil {
		return
	}
	section(sb, "CONTENT CALENDAR")

	sb.WriteString(fmt.Sprintf("  %d clusters, %d content gaps.\n\n",
		len(clusters.Clusters), clusters.ContentGaps))
	for i, entry := range clusters.Calendar {
		if i >= maxListItems {
			break
		}
		sb.WriteString(fmt.Sprintf("  P%-3d %-8s %-35s %s\n",
			entry.Priority, strings.ToUpper(entry.Action), entry.PillarKeyword, entry.Reason))
	}
	sb.WriteString("\n")
}

// writeLinking writes the top link recommendations.
func (w *SimpleWriter) writeLinking(sb *strings.Builder, linking *model.LinkingReport) {
	if linking == nil {
		return
	}
	section(sb, "INTERNAL LINK RECOMMENDATIONS")

	if len(linking.Recommendations) == 0 {
		sb.WriteString("  No new internal links recommended.\n\n")
		return
	}
	for i, rec := range linking.Recommendations {
		if i >= maxListItems {
			break
		}
		sb.WriteString(fmt.Sprintf("  P%-3d %s -> %s (anchor: %q)\n",
			rec.Priority, rec.SourcePage, rec.TargetPage, rec.SuggestedAnchorText))
	}
	sb.WriteString("\n")
}

// writeAudit writes the technical findings.
func (w *SimpleWriter) writeAudit(sb *strings.Builder, audit *model.AuditReport) {
	if audit == nil {
		return
	}
	section(sb, "TECHNICAL AUDIT")

	sb.WriteString(fmt.Sprintf("  Crawled %d pages on %s.\n\n",
		audit.Summary.PagesCrawled, audit.TargetURL))
	if len(audit.Issues) == 0 {
		sb.WriteString("  No technical issues detected.\n\n")
		return
	}
	for _, issue := range audit.Issues {
		sb.WriteString(fmt.Sprintf("  [%-8s] %-25s %d pages\n",
			strings.ToUpper(issue.SeverityText), issue.Check, issue.Count))
		if w.verbose {
			sb.WriteString(fmt.Sprintf("             %s\n", issue.Recommendation))
		}
	}
	sb.WriteString("\n")

	if w.verbose {
		for i, page := range audit.PageIssues {
			if i >= maxListItems {
				break
			}
			sb.WriteString(fmt.Sprintf("  %s\n", page.URL))
			for _, iss := range page.Issues {
				sb.WriteString(fmt.Sprintf("    - %s\n", iss))
			}
		}
		sb.WriteString("\n")
	}
}
