package config

import "errors"

// Configuration validation errors returned by Config.Validate().
// Package-level sentinels allow callers to use errors.Is() while still
// carrying human-readable messages.
var (
	// ErrNoDomain is returned when no operator domain is configured.
	ErrNoDomain = errors.New("no domain specified: set --domain or the domain key in .seoscan")

	// ErrNoSeeds is returned when the seed keyword list is empty.
	// Keyword research cannot start from nothing.
	ErrNoSeeds = errors.New("no seed keywords: pass them as arguments or set seeds in .seoscan")

	// ErrNoAPIKey is returned when the provider API key is missing.
	ErrNoAPIKey = errors.New("no api key: set the SEOSCAN_API_KEY environment variable")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidRequestInterval is returned when the request interval
	// is negative. Use 0 to disable rate limiting.
	ErrInvalidRequestInterval = errors.New("invalid request interval: must be non-negative")

	// ErrInvalidPollAttempts is returned when the poll attempt cap is
	// not positive. A cap of zero would fail every asynchronous task.
	ErrInvalidPollAttempts = errors.New("invalid poll attempts: must be positive")

	// ErrInvalidKeywordLimit is returned when the SERP keyword limit is
	// negative. Use 0 to analyze every keyword.
	ErrInvalidKeywordLimit = errors.New("invalid serp keyword limit: must be non-negative")
)
