package model

import (
	"time"

	"github.com/google/uuid"
)

// StepStatus is the lifecycle state of one pipeline step.
// Transitions: pending -> running -> completed | failed. Skipped steps
// go straight from pending to skipped. Terminal states never change.
type StepStatus string

const (
	StepPending   StepStatus = "pending"
	StepRunning   StepStatus = "running"
	StepCompleted StepStatus = "completed"
	StepFailed    StepStatus = "failed"
	StepSkipped   StepStatus = "skipped"
)

// StepResult records one step's execution within a run. A result carries
// either an artifact path or an error message, never both.
type StepResult struct {
	// Name is the step's configured name (e.g. "keyword-research").
	Name string `json:"name"`

	// Status is the step's current lifecycle state.
	Status StepStatus `json:"status"`

	// StartedAt and FinishedAt bound the step's execution. Zero for
	// steps that never ran.
	StartedAt  time.Time `json:"started_at,omitempty"`
	FinishedAt time.Time `json:"finished_at,omitempty"`

	// Duration is FinishedAt minus StartedAt.
	Duration time.Duration `json:"duration_ns,omitempty"`

	// ArtifactPath is the path of the artifact the step wrote.
	// Empty for failed or skipped steps.
	ArtifactPath string `json:"artifact_path,omitempty"`

	// Error is the captured failure message. Empty on success.
	Error string `json:"error,omitempty"`
}

// Start transitions the result to running and stamps the start time.
func (s *StepResult) Start() {
	s.Status = StepRunning
	s.StartedAt = time.Now()
}

// Complete transitions the result to completed with its artifact path.
// Any previously captured error is cleared.
func (s *StepResult) Complete(artifactPath string) {
	s.Status = StepCompleted
	s.FinishedAt = time.Now()
	s.Duration = s.FinishedAt.Sub(s.StartedAt)
	s.ArtifactPath = artifactPath
	s.Error = ""
}

// Fail transitions the result to failed with the captured error.
// Any previously recorded artifact path is cleared.
func (s *StepResult) Fail(err error) {
	s.Status = StepFailed
	s.FinishedAt = time.Now()
	s.Duration = s.FinishedAt.Sub(s.StartedAt)
	s.ArtifactPath = ""
	if err != nil {
		s.Error = err.Error()
	}
}

// RunSummary tallies the run's step outcomes.
type RunSummary struct {
	TotalSteps     int           `json:"total_steps"`
	CompletedSteps int           `json:"completed_steps"`
	FailedSteps    int           `json:"failed_steps"`
	SkippedSteps   int           `json:"skipped_steps"`
	Duration       time.Duration `json:"duration_ns"`
}

// PipelineRun is the top-level run report aggregating per-step status.
type PipelineRun struct {
	// ID is a unique identifier for this run, used to scope artifacts
	// and key the run history database.
	ID string `json:"id"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Domain and Competitors echo the run configuration.
	Domain      string   `json:"domain"`
	Competitors []string `json:"competitors,omitempty"`

	// Steps holds one result per configured step, in execution order.
	Steps []StepResult `json:"steps"`

	// Summary is derived from Steps by Summarize.
	Summary RunSummary `json:"summary"`
}

// NewPipelineRun creates a run report with a fresh identifier.
func NewPipelineRun(domain string, competitors []string) *PipelineRun {
	return &PipelineRun{
		ID:          uuid.NewString(),
		StartedAt:   time.Now(),
		Domain:      domain,
		Competitors: competitors,
	}
}

// Step returns the result for the named step, or nil if absent.
func (r *PipelineRun) Step(name string) *StepResult {
	for i := range r.Steps {
		if r.Steps[i].Name == name {
			return &r.Steps[i]
		}
	}
	return nil
}

// Summarize recomputes the run summary from the step results.
func (r *PipelineRun) Summarize() {
	s := RunSummary{TotalSteps: len(r.Steps)}
	for _, step := range r.Steps {
		switch step.Status {
		case StepCompleted:
			s.CompletedSteps++
		case StepFailed:
			s.FailedSteps++
		case StepSkipped:
			s.SkippedSteps++
		}
	}
	s.Duration = time.Since(r.StartedAt)
	r.Summary = s
}

// Succeeded reports whether the run completed with zero failed steps.
func (r *PipelineRun) Succeeded() bool {
	return r.Summary.FailedSteps == 0
}
