package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/seoscan/seoscan/internal/audit"
	"github.com/seoscan/seoscan/internal/backlinks"
	"github.com/seoscan/seoscan/internal/clustering"
	"github.com/seoscan/seoscan/internal/config"
	"github.com/seoscan/seoscan/internal/database"
	"github.com/seoscan/seoscan/internal/extractor"
	"github.com/seoscan/seoscan/internal/keywords"
	"github.com/seoscan/seoscan/internal/linking"
	"github.com/seoscan/seoscan/internal/log"
	"github.com/seoscan/seoscan/internal/model"
	"github.com/seoscan/seoscan/internal/pipeline"
	"github.com/seoscan/seoscan/internal/report"
	"github.com/seoscan/seoscan/internal/seoapi"
	"github.com/seoscan/seoscan/internal/serp"
)

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the SEO analysis pipeline for a domain",
		Long: `Run executes the full analysis pipeline: keyword research, SERP gap
analysis, backlink gaps, content clustering, internal link
recommendations, and a technical site audit.

Stages run in sequence. A failed stage is recorded and the run
continues; the exit status is non-zero when any stage failed.

The provider API key is read from the SEOSCAN_API_KEY environment
variable, never from a flag.

Examples:
  # Full analysis with inline configuration
  seoscan run --domain example.com --seeds "seo tools,keyword research" \
    --competitors rival-a.com,rival-b.com

  # Use a project file (.seoscan in the current or home directory)
  seoscan run

  # Skip the slow stages and emit a Markdown report
  seoscan run --skip serp-analysis,technical-audit --markdown -o report.md

Project file (.seoscan) example:
  domain: example.com
  competitors:
    - rival-a.com
    - rival-b.com
  seeds:
    - seo tools
    - keyword research
  contentDir: ./content
  serpKeywordLimit: 20`,
		Args: cobra.NoArgs,
		RunE: runRunCmd,
	}

	// Target flags
	cmd.Flags().StringP("domain", "d", "", "Domain to analyze")
	cmd.Flags().StringSliceP("competitors", "C", nil, "Competitor domains")
	cmd.Flags().StringSliceP("seeds", "s", nil, "Seed keywords for keyword research")

	// Stage behavior flags
	cmd.Flags().String("content-dir", config.DefaultContentDir,
		"Content page tree scanned for clustering and internal linking")
	cmd.Flags().StringSlice("skip", nil,
		"Pipeline steps to skip (keyword-research, serp-analysis, backlink-gaps, content-clustering, internal-linking, technical-audit)")
	cmd.Flags().Int("serp-limit", config.DefaultSerpKeywordLimit,
		"Maximum keywords analyzed by the SERP stage")
	cmd.Flags().String("audit-url", "",
		"Crawl target for the technical audit (default: https://<domain>)")

	// Provider flags
	cmd.Flags().String("api-base-url", config.DefaultAPIBaseURL, "Data provider API base URL")
	cmd.Flags().Duration("request-interval", config.DefaultRequestInterval,
		"Minimum spacing between provider API calls")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Project file path (default: .seoscan in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().String("output-dir", "",
		"Directory for stage artifacts (default: XDG data directory)")
	cmd.Flags().Bool("no-history", false, "Do not record this run in the history database")

	return cmd
}

// runRunCmd executes the run command.
func runRunCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Cancel the run on interrupt so partial results still get reported
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runPipeline(ctx, cfg, logger, cmd.OutOrStdout())
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags, the project
// file, and the environment.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	if cfg.Domain, err = cmd.Flags().GetString("domain"); err != nil {
		return nil, err
	}
	if cfg.Competitors, err = cmd.Flags().GetStringSlice("competitors"); err != nil {
		return nil, err
	}
	if cfg.Seeds, err = cmd.Flags().GetStringSlice("seeds"); err != nil {
		return nil, err
	}
	if cfg.ContentDir, err = cmd.Flags().GetString("content-dir"); err != nil {
		return nil, err
	}
	if cfg.SkipSteps, err = cmd.Flags().GetStringSlice("skip"); err != nil {
		return nil, err
	}
	if cfg.SerpKeywordLimit, err = cmd.Flags().GetInt("serp-limit"); err != nil {
		return nil, err
	}
	if cfg.AuditURL, err = cmd.Flags().GetString("audit-url"); err != nil {
		return nil, err
	}
	if cfg.APIBaseURL, err = cmd.Flags().GetString("api-base-url"); err != nil {
		return nil, err
	}
	if cfg.RequestInterval, err = cmd.Flags().GetDuration("request-interval"); err != nil {
		return nil, err
	}
	if cfg.ConfigFilePath, err = cmd.Flags().GetString("config"); err != nil {
		return nil, err
	}
	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = cmd.Flags().GetString("output"); err != nil {
		return nil, err
	}
	outputDir, err := cmd.Flags().GetString("output-dir")
	if err != nil {
		return nil, err
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}
	cfg.SaveHistory = !noHistory
	cfg.Verbose = getVerboseFlag(cmd)

	// Project file fills in whatever the flags left unset. An
	// explicitly named file must exist; the default search may come up
	// empty.
	explicit := cfg.ConfigFilePath != ""
	if path := config.FindConfigFile(cfg.ConfigFilePath); path != "" {
		project, err := config.LoadProjectFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load project file %s: %w", path, err)
		}
		project.Apply(cfg)
	} else if explicit {
		return nil, fmt.Errorf("project file not found: %s", cfg.ConfigFilePath)
	}

	// The API key comes only from the environment
	cfg.APIKey = os.Getenv(config.APIKeyEnv)

	return cfg, nil
}

// runPipeline wires the stages together and executes the run.
func runPipeline(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout io.Writer) error {
	client, err := seoapi.NewClient(cfg.APIBaseURL, cfg.APIKey,
		seoapi.WithRequestInterval(cfg.RequestInterval),
		seoapi.WithPollInterval(cfg.PollInterval),
		seoapi.WithMaxPollAttempts(cfg.MaxPollAttempts),
		seoapi.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	store, err := pipeline.NewStore(cfg.OutputDir)
	if err != nil {
		return err
	}

	ex := extractor.New(extractor.WithLogger(logger))
	p := pipeline.New(
		pipeline.WithLogger(logger),
		pipeline.WithSkip(cfg.SkipSteps...),
	)
	p.AddSteps(
		pipeline.NewKeywordResearchStep(keywords.NewAggregator(client, keywords.WithLogger(logger))),
		pipeline.NewSerpAnalysisStep(serp.NewAnalyzer(client,
			serp.WithKeywordLimit(cfg.SerpKeywordLimit),
			serp.WithLogger(logger))),
		pipeline.NewBacklinkGapsStep(backlinks.NewFinder(client, backlinks.WithLogger(logger))),
		pipeline.NewContentClusteringStep(clustering.NewEngine(clustering.WithLogger(logger)), ex),
		pipeline.NewInternalLinkingStep(linking.NewRecommender(linking.WithLogger(logger)), ex),
		pipeline.NewTechnicalAuditStep(audit.NewAuditor(client, audit.WithLogger(logger))),
	)

	rc := &pipeline.RunContext{
		Run:        model.NewPipelineRun(cfg.Domain, cfg.Competitors),
		Store:      store,
		Seeds:      cfg.Seeds,
		ContentDir: cfg.ContentDir,
		AuditURL:   cfg.AuditURL,
	}

	fmt.Fprintf(stdout, "Analyzing %s...\n", cfg.Domain)
	if err := p.Execute(ctx, rc); err != nil {
		return err
	}

	if err := outputReport(cfg, rc, stdout); err != nil {
		logger.Error("report output failed", "error", err)
	}
	if cfg.SaveHistory {
		if err := saveRunHistory(ctx, cfg, rc, logger); err != nil {
			logger.Error("failed to save run history", "error", err)
		}
	}

	if !rc.Run.Succeeded() {
		return fmt.Errorf("%d of %d steps failed",
			rc.Run.Summary.FailedSteps, rc.Run.Summary.TotalSteps)
	}
	return nil
}

// outputReport renders the run in the configured format and
// destination.
func outputReport(cfg *config.Config, rc *pipeline.RunContext, stdout io.Writer) error {
	data := &report.Data{
		Run:       rc.Run,
		Universe:  rc.Universe,
		SerpGaps:  rc.SerpReport,
		Backlinks: rc.BacklinkGaps,
		Clusters:  rc.Clusters,
		Linking:   rc.Linking,
		Audit:     rc.Audit,
	}

	out := stdout
	if cfg.ReportFile != "" {
		if dir := filepath.Dir(cfg.ReportFile); dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create report directory: %w", err)
			}
		}
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewJSONWriter(out, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(out)
	default:
		w = report.NewSimpleWriter(out, report.WithVerbose(cfg.Verbose))
	}

	_, err := w.Write(data)
	return err
}

// saveRunHistory records the run in the history database.
func saveRunHistory(ctx context.Context, cfg *config.Config, rc *pipeline.RunContext, logger *slog.Logger) error {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.SaveRun(ctx, rc.Run, rc.Universe); err != nil {
		return err
	}
	logger.Info("run recorded", "id", rc.Run.ID, "db", cfg.DBDir)
	return nil
}
