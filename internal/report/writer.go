package report

import (
	"io"

	"github.com/seoscan/seoscan/internal/model"
)

// Data bundles a run report with the stage outputs produced during the
// run. Stage fields are nil when their step failed or was skipped;
// writers render what is present.
type Data struct {
	// Run is the pipeline run report.
	Run *model.PipelineRun

	// Universe is the keyword research output.
	Universe *model.KeywordUniverse

	// SerpGaps is the SERP gap analysis output.
	SerpGaps *model.SerpGapReport

	// Backlinks is the backlink gap output.
	Backlinks *model.BacklinkGapReport

	// Clusters is the content clustering output.
	Clusters *model.ClusterReport

	// Linking is the internal linking output.
	Linking *model.LinkingReport

	// Audit is the technical audit output.
	Audit *model.AuditReport
}

// Writer defines the interface for report output. Implementations
// render run results in various formats.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(data *Data) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously, for example to
// both terminal and file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers, stopping on the
// first error. Returns the total bytes written.
func (m *MultiWriter) Write(data *Data) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(data)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
