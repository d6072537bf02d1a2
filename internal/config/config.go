package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. Rate and polling defaults are chosen for
// the typical metered SEO data provider, where requests are billed per
// call and asynchronous tasks take tens of seconds.
const (
	// DefaultAPIBaseURL is the data provider's API root.
	DefaultAPIBaseURL = "https://api.seodata.example.com"

	// DefaultRequestInterval is the minimum spacing between API calls.
	// One second keeps a full pipeline run inside the free-tier rate
	// limit of every provider we have tested against.
	DefaultRequestInterval = 1 * time.Second

	// DefaultPollInterval is the spacing between asynchronous task
	// status checks. SERP and crawl tasks rarely finish in under a few
	// seconds, so checking more often only burns request quota.
	DefaultPollInterval = 2 * time.Second

	// DefaultMaxPollAttempts caps the poll loop. Combined with the poll
	// interval this gives a task roughly a minute to complete before
	// the step fails with a timeout.
	DefaultMaxPollAttempts = 30

	// DefaultSerpKeywordLimit bounds how many keywords the SERP stage
	// analyzes. Each keyword costs one task submission plus polling, so
	// the stage is truncated to the top opportunities by default.
	DefaultSerpKeywordLimit = 20

	// DefaultBacklinkResultLimit caps the backlink opportunity list.
	DefaultBacklinkResultLimit = 100

	// DefaultClusterThreshold is the Jaccard similarity above which a
	// keyword joins an open cluster.
	DefaultClusterThreshold = 0.3

	// DefaultPageMatchThreshold is the Jaccard similarity above which a
	// page is considered to cover a cluster.
	DefaultPageMatchThreshold = 0.2

	// DefaultContentDir is where page content is read from, relative to
	// the working directory.
	DefaultContentDir = "content"

	// AppName is the application name used for XDG directory paths.
	AppName = "seoscan"

	// APIKeyEnv is the environment variable holding the provider API key.
	APIKeyEnv = "SEOSCAN_API_KEY"
)

// Config holds all configuration options for a pipeline run. It is
// populated from CLI flags and the optional project file, validated
// once, and then passed through the application unchanged.
type Config struct {
	// Domain is the operator's domain the analysis is run for.
	Domain string

	// Competitors are the competitor domains to measure gaps against.
	Competitors []string

	// Seeds are the seed keywords the keyword research starts from.
	Seeds []string

	// SkipSteps lists pipeline step names to skip this run.
	SkipSteps []string

	// SerpKeywordLimit truncates the keyword list fed to the SERP
	// stage. Zero disables the cap and analyzes every keyword.
	SerpKeywordLimit int

	// AuditURL overrides the crawl target for the technical audit.
	// When empty, "https://" + Domain is crawled.
	AuditURL string

	// ContentDir is the root of the content page tree scanned by the
	// extractor.
	ContentDir string

	// OutputDir is where stage artifacts and the run report are
	// written. Defaults to the XDG data directory.
	OutputDir string

	// APIBaseURL is the data provider's API root.
	APIBaseURL string

	// APIKey authenticates provider requests. Loaded from the
	// SEOSCAN_API_KEY environment variable, never from flags, so it
	// cannot leak into shell history.
	APIKey string

	// RequestInterval is the minimum spacing between provider calls.
	RequestInterval time.Duration

	// PollInterval and MaxPollAttempts bound asynchronous task polling.
	PollInterval    time.Duration
	MaxPollAttempts int

	// Verbose enables debug-level log output.
	Verbose bool

	// JSONReport and MarkdownReport select the run report format.
	// Mutually exclusive; the default is a plain text report.
	JSONReport     bool
	MarkdownReport bool

	// ReportFile is the output file path for the run report. When
	// empty, the report is written to stdout.
	ReportFile string

	// DBDir is the directory for the run history database. Defaults to
	// the XDG data directory.
	DBDir string

	// SaveHistory indicates whether to persist the run to the history
	// database.
	SaveHistory bool

	// ConfigFilePath is an explicit project file path. When empty, the
	// loader searches for .seoscan in the working and home directories.
	ConfigFilePath string
}

// NewConfig creates a Config with default values. Many defaults are
// non-zero, so relying on zero values would be error-prone; this
// constructor also documents what the defaults are.
func NewConfig() *Config {
	return &Config{
		SerpKeywordLimit: DefaultSerpKeywordLimit,
		ContentDir:       DefaultContentDir,
		OutputDir:        XDGDataDir(),
		APIBaseURL:       DefaultAPIBaseURL,
		RequestInterval:  DefaultRequestInterval,
		PollInterval:     DefaultPollInterval,
		MaxPollAttempts:  DefaultMaxPollAttempts,
		DBDir:            XDGDataDir(),
		SaveHistory:      true,
	}
}

// XDGDataDir returns the XDG data directory for seoscan.
// On Linux: ~/.local/share/seoscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for seoscan.
// On Linux: ~/.config/seoscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks that the configuration can support a run. It returns
// the first problem found; fixing one error often changes the rest.
func (c *Config) Validate() error {
	if c.Domain == "" {
		return ErrNoDomain
	}
	if len(c.Seeds) == 0 {
		return ErrNoSeeds
	}
	if c.APIKey == "" {
		return ErrNoAPIKey
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if c.RequestInterval < 0 {
		return ErrInvalidRequestInterval
	}
	if c.MaxPollAttempts <= 0 {
		return ErrInvalidPollAttempts
	}
	if c.SerpKeywordLimit < 0 {
		return ErrInvalidKeywordLimit
	}
	return nil
}
