package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/seoscan/seoscan/internal/model"
)

// ErrMissingArtifact marks a step that could not obtain its upstream
// input, neither from the current run nor from a previous artifact.
var ErrMissingArtifact = errors.New("missing upstream artifact")

// Step is one analysis stage of a run. Steps execute in sequence and
// record their outcome on the run context's report.
type Step interface {
	// Do executes the step. It reads its inputs from the run context,
	// writes its artifact through the context's store, and publishes its
	// output handle for dependent steps.
	Do(ctx context.Context, rc *RunContext) error

	// Name returns the step's name for logging and run reporting.
	Name() string
}

// RunContext carries everything the steps share: the run report, the
// artifact store, the run configuration, and the typed outputs each
// producing step publishes for its dependents.
type RunContext struct {
	// Run is the report being built.
	Run *model.PipelineRun

	// Store persists stage artifacts.
	Store *Store

	// Seeds are the seed keywords for keyword research.
	Seeds []string

	// ContentDir is the local content tree for clustering and linking.
	ContentDir string

	// AuditURL is the site URL for the technical audit. Falls back to
	// https://<domain> when empty.
	AuditURL string

	// Outputs published by completed steps this run. Dependent steps
	// check these before falling back to stored artifacts.
	Universe     *model.KeywordUniverse
	SerpReport   *model.SerpGapReport
	BacklinkGaps *model.BacklinkGapReport
	Clusters     *model.ClusterReport
	Linking      *model.LinkingReport
	Audit        *model.AuditReport
	Pages        []*model.Page
	pagesScanned bool
}

// Publish marks the named step completed with its artifact path.
func (rc *RunContext) Publish(name, artifactPath string) {
	if result := rc.Run.Step(name); result != nil {
		result.Complete(artifactPath)
	}
}

// Pipeline executes an ordered list of steps against one run context.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// skip holds step names excluded from this run.
	skip map[string]bool

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithSkip excludes the named steps from execution. Skipped steps are
// still recorded on the run report with the skipped status.
func WithSkip(names ...string) Option {
	return func(p *Pipeline) {
		for _, name := range names {
			p.skip[name] = true
		}
	}
}

// New creates a Pipeline with the given options. Steps are added with
// AddSteps after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps:  make([]Step, 0),
		skip:   make(map[string]bool),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AddSteps appends steps to the pipeline in execution order.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}

// Execute runs all steps in sequence against the run context. A step
// failure is recorded on the run report and execution continues with
// the next step; only context cancellation aborts the run. The run
// summary is recomputed before returning.
func (p *Pipeline) Execute(ctx context.Context, rc *RunContext) error {
	for _, step := range p.steps {
		rc.Run.Steps = append(rc.Run.Steps, model.StepResult{
			Name:   step.Name(),
			Status: model.StepPending,
		})
	}

	for _, step := range p.steps {
		result := rc.Run.Step(step.Name())

		select {
		case <-ctx.Done():
			p.logger.Warn("run cancelled", "step", step.Name(), "reason", ctx.Err())
			rc.Run.Summarize()
			return ctx.Err()
		default:
		}

		if p.skip[step.Name()] {
			p.logger.Info("skipping step", "step", step.Name())
			result.Status = model.StepSkipped
			continue
		}

		p.logger.Info("executing step", "step", step.Name(), "domain", rc.Run.Domain)
		result.Start()

		if err := step.Do(ctx, rc); err != nil {
			p.logger.Error("step failed", "step", step.Name(), "error", err)
			result.Fail(err)
			continue
		}
		// Steps that save an artifact complete themselves via Publish.
		if result.Status == model.StepRunning {
			result.Complete("")
		}
		p.logger.Debug("step completed", "step", step.Name(), "artifact", result.ArtifactPath)
	}

	rc.Run.Summarize()
	return nil
}
