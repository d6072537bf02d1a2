package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/seoscan/seoscan/internal/config"
	"github.com/seoscan/seoscan/internal/database"
	"github.com/seoscan/seoscan/internal/model"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List past analysis runs or show one run in detail",
		Long: `History lists the analysis runs recorded in the local run database,
newest first. Pass a run identifier to show that run's step results,
and --keywords to include the keyword snapshot stored with it.

Examples:
  # List the last ten runs
  seoscan history

  # List runs for one domain
  seoscan history --domain example.com

  # Show one run in detail, with its keyword snapshot
  seoscan history 2f1c9a8e-... --keywords`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().StringP("domain", "d", "", "Only list runs for this domain")
	cmd.Flags().IntP("limit", "n", 10, "Maximum number of runs to list (0 for all)")
	cmd.Flags().Bool("keywords", false, "Include the keyword snapshot when showing a run")
	cmd.Flags().String("db-dir", "", "Run database directory (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false
	db, err := database.Open(dbDir, opts)
	if err != nil {
		return fmt.Errorf("no run history found in %s: %w", dbDir, err)
	}
	defer func() { _ = db.Close() }()

	if len(args) == 1 {
		withKeywords, err := cmd.Flags().GetBool("keywords")
		if err != nil {
			return err
		}
		return showRun(cmd, db, args[0], withKeywords)
	}
	return listRuns(cmd, db)
}

// listRuns prints stored run metadata as a table, newest first.
func listRuns(cmd *cobra.Command, db *database.RunDB) error {
	domain, err := cmd.Flags().GetString("domain")
	if err != nil {
		return err
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	runs, err := db.ListRuns(cmd.Context(), domain, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		cmd.Println("No recorded runs.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tDOMAIN\tSTARTED\tSTEPS\tDURATION")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			run.ID,
			run.Domain,
			run.StartedAt.Format("2006-01-02 15:04"),
			stepTally(run),
			run.Duration.Round(time.Millisecond),
		)
	}
	return w.Flush()
}

// stepTally renders completed/failed/skipped counts for a listed run.
func stepTally(run database.RunMetadata) string {
	tally := fmt.Sprintf("%d ok", run.CompletedSteps)
	if run.FailedSteps > 0 {
		tally += fmt.Sprintf(", %d failed", run.FailedSteps)
	}
	if run.SkippedSteps > 0 {
		tally += fmt.Sprintf(", %d skipped", run.SkippedSteps)
	}
	return tally
}

// showRun prints one stored run's step results.
func showRun(cmd *cobra.Command, db *database.RunDB, id string, withKeywords bool) error {
	run, err := db.GetRun(cmd.Context(), id)
	if err != nil {
		return err
	}

	cmd.Printf("Run %s\n", run.ID)
	cmd.Printf("Domain:      %s\n", run.Domain)
	if len(run.Competitors) > 0 {
		cmd.Printf("Competitors: %s\n", strings.Join(run.Competitors, ", "))
	}
	cmd.Printf("Started:     %s\n", run.StartedAt.Format(time.RFC3339))
	cmd.Printf("Duration:    %s\n\n", run.Summary.Duration.Round(time.Millisecond))

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tSTATUS\tDURATION\tDETAIL")
	for _, step := range run.Steps {
		detail := step.ArtifactPath
		if step.Status == model.StepFailed {
			detail = step.Error
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			step.Name, step.Status, step.Duration.Round(time.Millisecond), detail)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !withKeywords {
		return nil
	}

	snapshots, err := db.GetKeywordSnapshots(cmd.Context(), run.ID)
	if err != nil {
		return err
	}
	if len(snapshots) == 0 {
		cmd.Println("\nNo keyword snapshot recorded for this run.")
		return nil
	}

	cmd.Println()
	kw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(kw, "KEYWORD\tVOLUME\tOPPORTUNITY\tSOURCE")
	for _, s := range snapshots {
		fmt.Fprintf(kw, "%s\t%d\t%.0f\t%s\n",
			s.Keyword, s.Volume, s.OpportunityScore, s.Source)
	}
	return kw.Flush()
}
