package config

// Project represents the structure of the .seoscan project file. It
// carries the stable, per-site parts of the configuration so runs do
// not need the same long flag list every time.
type Project struct {
	// Domain is the operator's domain.
	Domain string `yaml:"domain,omitempty"`

	// Competitors are the competitor domains.
	Competitors []string `yaml:"competitors,omitempty"`

	// Seeds are the default seed keywords.
	Seeds []string `yaml:"seeds,omitempty"`

	// ContentDir is the content page tree root.
	ContentDir string `yaml:"contentDir,omitempty"`

	// Skip lists pipeline step names to skip.
	Skip []string `yaml:"skip,omitempty"`

	// SerpKeywordLimit truncates the SERP stage keyword list.
	SerpKeywordLimit int `yaml:"serpKeywordLimit,omitempty"`

	// AuditURL overrides the technical audit crawl target.
	AuditURL string `yaml:"auditUrl,omitempty"`

	// APIBaseURL overrides the data provider endpoint, mainly for
	// self-hosted proxies.
	APIBaseURL string `yaml:"apiBaseUrl,omitempty"`
}

// Apply merges the project file into the config. Flags win: only config
// fields still at their zero or default values are overridden.
func (p *Project) Apply(cfg *Config) {
	if cfg.Domain == "" {
		cfg.Domain = p.Domain
	}
	if len(cfg.Competitors) == 0 {
		cfg.Competitors = p.Competitors
	}
	if len(cfg.Seeds) == 0 {
		cfg.Seeds = p.Seeds
	}
	if p.ContentDir != "" && cfg.ContentDir == DefaultContentDir {
		cfg.ContentDir = p.ContentDir
	}
	if len(cfg.SkipSteps) == 0 {
		cfg.SkipSteps = p.Skip
	}
	if p.SerpKeywordLimit > 0 && cfg.SerpKeywordLimit == DefaultSerpKeywordLimit {
		cfg.SerpKeywordLimit = p.SerpKeywordLimit
	}
	if cfg.AuditURL == "" {
		cfg.AuditURL = p.AuditURL
	}
	if p.APIBaseURL != "" && cfg.APIBaseURL == DefaultAPIBaseURL {
		cfg.APIBaseURL = p.APIBaseURL
	}
}
