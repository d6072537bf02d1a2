package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Artifact prefixes, one per producing stage.
const (
	PrefixKeywords  = "keywords"
	PrefixSerpGaps  = "serp-gaps"
	PrefixBacklinks = "backlink-gaps"
	PrefixClusters  = "clusters"
	PrefixLinking   = "internal-links"
	PrefixAudit     = "technical-audit"
)

// timestampLayout orders artifact filenames lexically by creation time.
const timestampLayout = "20060102-150405"

// Store persists stage outputs as timestamped JSON files in a single
// output directory. Files are named <prefix>-<timestamp>.json so
// successive runs never overwrite each other.
type Store struct {
	// dir is the artifact output directory.
	dir string

	// now is injectable for tests.
	now func() time.Time
}

// NewStore creates a Store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create artifact directory: %w", err)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

// Dir returns the store's output directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save marshals v as indented JSON and writes it under the given
// prefix, returning the written file path.
func (s *Store) Save(prefix string, v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s artifact: %w", prefix, err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("%s-%s.json", prefix, s.now().UTC().Format(timestampLayout)))
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write %s artifact: %w", prefix, err)
	}
	return path, nil
}

// Latest returns the most recently modified artifact for the prefix, or
// an ErrMissingArtifact-wrapped error if none exists. Used only when the
// producing step did not run this time; within a run, steps hand their
// outputs to dependents directly.
func (s *Store) Latest(prefix string) (string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return "", fmt.Errorf("failed to read artifact directory: %w", err)
	}

	var (
		latest     string
		latestTime time.Time
	)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix+"-") || !strings.HasSuffix(name, ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		// Timestamped names sort chronologically, which breaks ties when
		// the filesystem's mtime resolution is too coarse.
		newer := info.ModTime().After(latestTime) ||
			(info.ModTime().Equal(latestTime) && name > filepath.Base(latest))
		if latest == "" || newer {
			latest = filepath.Join(s.dir, name)
			latestTime = info.ModTime()
		}
	}
	if latest == "" {
		return "", fmt.Errorf("%w: no %s artifact in %s", ErrMissingArtifact, prefix, s.dir)
	}
	return latest, nil
}

// Load reads the most recent artifact for the prefix into v.
func (s *Store) Load(prefix string, v any) error {
	path, err := s.Latest(prefix)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path) //nolint:gosec // Path comes from our own directory scan
	if err != nil {
		return fmt.Errorf("failed to read %s artifact: %w", prefix, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s artifact: %w", prefix, err)
	}
	return nil
}
