package report

import (
	"encoding/json"
	"io"

	"github.com/seoscan/seoscan/internal/model"
)

// JSONWriter outputs reports in JSON format for tool integration.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed output.
	indent bool

	// version is embedded in the output for traceability.
	version string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables pretty-printed JSON output.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
	}
}

// WithVersion embeds the tool version in the output.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// jsonReport wraps the run and stage outputs with version metadata so
// the raw data structures stay free of output-only fields.
type jsonReport struct {
	Version   string                   `json:"version,omitempty"`
	Run       *model.PipelineRun       `json:"run"`
	Keywords  *model.KeywordUniverse   `json:"keywords,omitempty"`
	SerpGaps  *model.SerpGapReport     `json:"serp_gaps,omitempty"`
	Backlinks *model.BacklinkGapReport `json:"backlink_gaps,omitempty"`
	Clusters  *model.ClusterReport     `json:"clusters,omitempty"`
	Linking   *model.LinkingReport     `json:"internal_linking,omitempty"`
	Audit     *model.AuditReport       `json:"technical_audit,omitempty"`
}

// Write outputs the report as a single JSON document.
func (w *JSONWriter) Write(data *Data) (int, error) {
	wrapped := jsonReport{
		Version:   w.version,
		Run:       data.Run,
		Keywords:  data.Universe,
		SerpGaps:  data.SerpGaps,
		Backlinks: data.Backlinks,
		Clusters:  data.Clusters,
		Linking:   data.Linking,
		Audit:     data.Audit,
	}

	var (
		raw []byte
		err error
	)
	if w.indent {
		raw, err = json.MarshalIndent(wrapped, "", "  ")
	} else {
		raw, err = json.Marshal(wrapped)
	}
	if err != nil {
		return 0, err
	}

	// Trailing newline for terminal output
	raw = append(raw, '\n')
	return w.output.Write(raw)
}
