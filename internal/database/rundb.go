package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/seoscan/seoscan/internal/model"
)

// snapshotLimit caps how many keywords are snapshotted per run.
const snapshotLimit = 50

// ErrRunNotFound is returned when the requested run does not exist.
var ErrRunNotFound = errors.New("run not found")

// RunDB provides SQLite-based storage for pipeline run history.
type RunDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures RunDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a RunDB in the specified directory. When
// CreateIfNotExists is false and no database file exists, an error is
// returned instead of silently creating an empty history.
func Open(dbDir string, opts Options) (*RunDB, error) {
	dbPath := filepath.Join(dbDir, "seoscan.db")

	var dsn string
	if opts.CreateIfNotExists {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = dbPath + "?mode=rwc"
	} else {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &RunDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Close closes the database connection.
func (rdb *RunDB) Close() error {
	return rdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (rdb *RunDB) createTables() error {
	schema := `
	-- Runs store one row per pipeline execution, with the full report as JSON
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		domain TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		completed_steps INTEGER DEFAULT 0,
		failed_steps INTEGER DEFAULT 0,
		skipped_steps INTEGER DEFAULT 0,
		duration_ms INTEGER DEFAULT 0,
		run_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_domain ON runs(domain);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

	-- Steps store per-stage outcomes for querying without JSON parsing
	CREATE TABLE IF NOT EXISTS steps (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		status TEXT NOT NULL,
		duration_ms INTEGER DEFAULT 0,
		artifact_path TEXT,
		error TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_steps_run ON steps(run_id);

	-- Keyword snapshots preserve the top keywords of each run for trend review
	CREATE TABLE IF NOT EXISTS keyword_snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		keyword TEXT NOT NULL,
		volume INTEGER DEFAULT 0,
		opportunity_score REAL DEFAULT 0,
		source TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_run ON keyword_snapshots(run_id);
	CREATE INDEX IF NOT EXISTS idx_snapshots_keyword ON keyword_snapshots(keyword);
	`

	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun stores a completed run with its step outcomes and, when a
// keyword universe is available, a snapshot of its top keywords.
func (rdb *RunDB) SaveRun(ctx context.Context, run *model.PipelineRun, universe *model.KeywordUniverse) error {
	runJSON, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to serialize run: %w", err)
	}

	tx, err := rdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
	INSERT INTO runs (id, domain, started_at, completed_steps, failed_steps, skipped_steps, duration_ms, run_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Domain,
		run.StartedAt.UTC().Format(time.RFC3339),
		run.Summary.CompletedSteps,
		run.Summary.FailedSteps,
		run.Summary.SkippedSteps,
		run.Summary.Duration.Milliseconds(),
		string(runJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, step := range run.Steps {
		_, err = tx.ExecContext(ctx, `
		INSERT INTO steps (run_id, name, status, duration_ms, artifact_path, error)
		VALUES (?, ?, ?, ?, ?, ?)`,
			run.ID, step.Name, string(step.Status),
			step.Duration.Milliseconds(), step.ArtifactPath, step.Error,
		)
		if err != nil {
			return fmt.Errorf("failed to insert step %s: %w", step.Name, err)
		}
	}

	if universe != nil {
		limit := min(len(universe.Keywords), snapshotLimit)
		for _, kw := range universe.Keywords[:limit] {
			_, err = tx.ExecContext(ctx, `
			INSERT INTO keyword_snapshots (run_id, keyword, volume, opportunity_score, source)
			VALUES (?, ?, ?, ?, ?)`,
				run.ID, kw.Keyword, kw.Volume, kw.OpportunityScore, kw.Source,
			)
			if err != nil {
				return fmt.Errorf("failed to insert keyword snapshot: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// RunMetadata summarizes one stored run for listing.
type RunMetadata struct {
	ID             string
	Domain         string
	StartedAt      time.Time
	CompletedSteps int
	FailedSteps    int
	SkippedSteps   int
	Duration       time.Duration
}

// ListRuns returns stored run metadata, newest first, optionally
// filtered by domain. A zero limit returns everything.
func (rdb *RunDB) ListRuns(ctx context.Context, domain string, limit int) ([]RunMetadata, error) {
	query := `
	SELECT id, domain, started_at, completed_steps, failed_steps, skipped_steps, duration_ms
	FROM runs`
	args := []any{}
	if domain != "" {
		query += " WHERE domain = ?"
		args = append(args, domain)
	}
	query += " ORDER BY started_at DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := rdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []RunMetadata
	for rows.Next() {
		var (
			meta       RunMetadata
			startedAt  string
			durationMS int64
		)
		if err := rows.Scan(&meta.ID, &meta.Domain, &startedAt, &meta.CompletedSteps,
			&meta.FailedSteps, &meta.SkippedSteps, &durationMS); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		meta.StartedAt = parseTimestamp(startedAt)
		meta.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, meta)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun retrieves a full run report by its identifier.
func (rdb *RunDB) GetRun(ctx context.Context, id string) (*model.PipelineRun, error) {
	var runJSON string
	err := rdb.db.QueryRowContext(ctx,
		"SELECT run_json FROM runs WHERE id = ?", id).Scan(&runJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	var run model.PipelineRun
	if err := json.Unmarshal([]byte(runJSON), &run); err != nil {
		return nil, fmt.Errorf("failed to parse run: %w", err)
	}
	return &run, nil
}

// KeywordSnapshot is one stored keyword observation.
type KeywordSnapshot struct {
	Keyword          string
	Volume           int
	OpportunityScore float64
	Source           string
}

// GetKeywordSnapshots returns the keyword snapshot for a run, in stored
// (opportunity) order.
func (rdb *RunDB) GetKeywordSnapshots(ctx context.Context, runID string) ([]KeywordSnapshot, error) {
	rows, err := rdb.db.QueryContext(ctx, `
	SELECT keyword, volume, opportunity_score, source
	FROM keyword_snapshots WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query keyword snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snapshots []KeywordSnapshot
	for rows.Next() {
		var snap KeywordSnapshot
		if err := rows.Scan(&snap.Keyword, &snap.Volume, &snap.OpportunityScore, &snap.Source); err != nil {
			return nil, fmt.Errorf("failed to scan keyword snapshot: %w", err)
		}
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate keyword snapshots: %w", err)
	}
	return snapshots, nil
}

// timestampFormats contains the timestamp formats SQLite may return.
// More specific formats come first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999",
}

// parseTimestamp attempts each known format and falls back to the zero
// time when none matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
