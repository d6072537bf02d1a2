package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/seoscan/seoscan/internal/model"
)

// maxTableRows caps per-section tables so reports stay readable.
const maxTableRows = 15

// MarkdownWriter outputs reports in Markdown format, designed for
// documentation and sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(data *Data) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, data.Run)
	w.writeSteps(md, data.Run)
	w.writeKeywords(md, data.Universe)
	w.writeSerpGaps(md, data.SerpGaps)
	w.writeBacklinks(md, data.Backlinks)
	w.writeClusters(md, data.Clusters)
	w.writeLinking(md, data.Linking)
	w.writeAudit(md, data.Audit)

	return len(md.String()), md.Build()
}

// writeHeader writes the run metadata table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, run *model.PipelineRun) {
	md.H1("SEO Analysis Report")
	md.PlainText("")

	status := "✅ Complete"
	if run.Summary.FailedSteps > 0 {
		status = fmt.Sprintf("⚠️ %d step(s) failed", run.Summary.FailedSteps)
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Domain", "`" + run.Domain + "`"},
			{"Run ID", run.ID},
			{"Started", run.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", run.Summary.Duration.Round(runDurationPrecision).String()},
			{"Status", status},
		},
	})
	md.PlainText("")
}

// writeSteps writes the per-step status table and a distribution chart.
func (w *MarkdownWriter) writeSteps(md *markdown.Markdown, run *model.PipelineRun) {
	md.H2("Pipeline Steps")
	md.PlainText("")

	rows := make([][]string, 0, len(run.Steps))
	for _, step := range run.Steps {
		detail := step.ArtifactPath
		if step.Error != "" {
			detail = step.Error
		}
		rows = append(rows, []string{
			step.Name,
			statusEmoji(step.Status) + " " + string(step.Status),
			step.Duration.Round(runDurationPrecision).String(),
			detail,
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Step", "Status", "Duration", "Detail"},
		Rows:   rows,
	})
	md.PlainText("")

	if run.Summary.FailedSteps > 0 {
		md.Warningf("%d of %d steps failed; sections below reflect partial results.",
			run.Summary.FailedSteps, run.Summary.TotalSteps)
		md.PlainText("")
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Step Outcomes"),
		piechart.WithShowData(true),
	)
	if run.Summary.CompletedSteps > 0 {
		chart.LabelAndIntValue("Completed", uint64(run.Summary.CompletedSteps))
	}
	if run.Summary.FailedSteps > 0 {
		chart.LabelAndIntValue("Failed", uint64(run.Summary.FailedSteps))
	}
	if run.Summary.SkippedSteps > 0 {
		chart.LabelAndIntValue("Skipped", uint64(run.Summary.SkippedSteps))
	}
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeKeywords writes the top keyword opportunities.
func (w *MarkdownWriter) writeKeywords(md *markdown.Markdown, universe *model.KeywordUniverse) {
	if universe == nil {
		return
	}
	md.H2("Keyword Opportunities")
	md.PlainText("")
	md.PlainTextf("%d keywords from %d seeds.", len(universe.Keywords), len(universe.Seeds))
	md.PlainText("")

	rows := [][]string{}
	for _, kw := range capKeywords(universe.Keywords) {
		rows = append(rows, []string{
			kw.Keyword,
			strconv.Itoa(kw.Volume),
			fmt.Sprintf("%.2f", kw.CPC),
			fmt.Sprintf("%.0f", kw.Competition),
			fmt.Sprintf("%.0f", kw.OpportunityScore),
			kw.Source,
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Keyword", "Volume", "CPC", "Competition", "Opportunity", "Source"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeSerpGaps writes the SERP gap opportunities.
func (w *MarkdownWriter) writeSerpGaps(md *markdown.Markdown, gaps *model.SerpGapReport) {
	if gaps == nil {
		return
	}
	md.H2("SERP Gaps")
	md.PlainText("")

	if len(gaps.Opportunities) == 0 {
		md.PlainText("No ranking gaps against the configured competitors.")
		md.PlainText("")
		return
	}

	rows := [][]string{}
	for i, opp := range gaps.Opportunities {
		if i >= maxTableRows {
			break
		}
		ourRank := "—"
		if opp.OurRank != nil {
			ourRank = strconv.Itoa(*opp.OurRank)
		}
		rows = append(rows, []string{
			opp.Keyword,
			fmt.Sprintf("%.0f", opp.Score),
			string(opp.Tier),
			strconv.Itoa(opp.CompetitorCount),
			ourRank,
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Keyword", "Score", "Tier", "Competitors Ranking", "Our Rank"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeBacklinks writes the backlink opportunity summary and table.
func (w *MarkdownWriter) writeBacklinks(md *markdown.Markdown, gaps *model.BacklinkGapReport) {
	if gaps == nil {
		return
	}
	md.H2("Backlink Opportunities")
	md.PlainText("")
	md.PlainTextf("%d opportunities (%d high, %d medium, %d low), average authority %.0f.",
		len(gaps.Opportunities),
		gaps.Summary.HighCount, gaps.Summary.MediumCount, gaps.Summary.LowCount,
		gaps.Summary.AvgAuthorityRank)
	md.PlainText("")

	rows := [][]string{}
	for i, opp := range gaps.Opportunities {
		if i >= maxTableRows {
			break
		}
		rows = append(rows, []string{
			opp.Domain,
			fmt.Sprintf("%.0f", opp.AuthorityRank),
			strconv.Itoa(opp.CompetitorLinkCount),
			fmt.Sprintf("%.0f", opp.Score),
			string(opp.Tier),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Domain", "Authority", "Competitors Linked", "Score", "Tier"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeClusters writes the content calendar.
func (w *MarkdownWriter) writeClusters(md *markdown.Markdown, clusters *model.ClusterReport) {
	if clusters == nil {
		return
	}
	md.H2("Content Calendar")
	md.PlainText("")
	md.PlainTextf("%d topical clusters, %d content gaps.", len(clusters.Clusters), clusters.ContentGaps)
	md.PlainText("")

	if len(clusters.Calendar) == 0 {
		md.PlainText("Existing content covers every cluster well.")
		md.PlainText("")
		return
	}

	rows := [][]string{}
	for i, entry := range clusters.Calendar {
		if i >= maxTableRows {
			break
		}
		target := entry.TargetPage
		if target == "" {
			target = "(new page)"
		}
		rows = append(rows, []string{
			entry.Action,
			entry.PillarKeyword,
			target,
			strconv.Itoa(entry.TotalVolume),
			strconv.Itoa(entry.Priority),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Action", "Pillar Keyword", "Target", "Volume", "Priority"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeLinking writes the top internal link recommendations.
func (w *MarkdownWriter) writeLinking(md *markdown.Markdown, linking *model.LinkingReport) {
	if linking == nil {
		return
	}
	md.H2("Internal Link Recommendations")
	md.PlainText("")

	if len(linking.Recommendations) == 0 {
		md.PlainText("No new internal links recommended.")
		md.PlainText("")
		return
	}

	rows := [][]string{}
	for i, rec := range linking.Recommendations {
		if i >= maxTableRows {
			break
		}
		rows = append(rows, []string{
			rec.SourcePage,
			rec.TargetPage,
			rec.SuggestedAnchorText,
			fmt.Sprintf("%.0f", rec.RelevanceScore),
			strconv.Itoa(rec.Priority),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Source", "Target", "Suggested Anchor", "Relevance", "Priority"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeAudit writes the technical findings, worst first, with an alert
// matched to the highest severity present.
func (w *MarkdownWriter) writeAudit(md *markdown.Markdown, audit *model.AuditReport) {
	if audit == nil {
		return
	}
	md.H2("Technical Audit")
	md.PlainText("")

	if len(audit.Issues) == 0 {
		md.Tip("No technical issues detected.")
		md.PlainText("")
		return
	}

	switch audit.Issues[0].Severity {
	case model.SeverityCritical:
		md.Cautionf("Critical issues found on %s. Fix these before anything else.", audit.TargetURL)
	case model.SeverityHigh:
		md.Warningf("High-severity issues found on %s.", audit.TargetURL)
	default:
		md.Notef("Minor issues found on %s.", audit.TargetURL)
	}
	md.PlainText("")

	rows := [][]string{}
	for _, issue := range audit.Issues {
		rows = append(rows, []string{
			issue.Check,
			issue.SeverityText,
			strconv.Itoa(issue.Count),
			issue.Recommendation,
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Check", "Severity", "Pages", "Recommendation"},
		Rows:   rows,
	})
	md.PlainText("")
}

// capKeywords returns at most maxTableRows keywords.
func capKeywords(keywords []model.KeywordRecord) []model.KeywordRecord {
	if len(keywords) > maxTableRows {
		return keywords[:maxTableRows]
	}
	return keywords
}

// statusEmoji maps step states to their table markers.
func statusEmoji(status model.StepStatus) string {
	switch status {
	case model.StepCompleted:
		return "✅"
	case model.StepFailed:
		return "❌"
	case model.StepSkipped:
		return "⏭️"
	default:
		return "•"
	}
}
