package batch

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cperrin88/fsops/internal/logger"
	"github.com/cperrin88/fsops/pkg/boundary"
)

// Executor runs one operation. *boundary.Bridge implements it.
type Executor interface {
	Do(req boundary.Request) boundary.Outcome
}

// StepResult is the outcome of one executed step.
type StepResult struct {
	Index   int              `json:"index" yaml:"index"`
	Label   string           `json:"label" yaml:"label"`
	Outcome boundary.Outcome `json:"outcome" yaml:"outcome"`
}

// Report describes a batch run. Steps after a stopping failure appear in
// neither Results nor Skipped.
type Report struct {
	RunID    uuid.UUID     `json:"run_id" yaml:"run_id"`
	Started  time.Time     `json:"started" yaml:"started"`
	Duration time.Duration `json:"duration" yaml:"duration"`
	Results  []StepResult  `json:"results" yaml:"results"`
	Skipped  []int         `json:"skipped,omitempty" yaml:"skipped,omitempty"` // indexes filtered out by platform
	Stopped  bool          `json:"stopped" yaml:"stopped"`                     // a failure ended the run early
}

// Summary counts succeeded and failed steps.
func (r *Report) Summary() (succeeded, failed int) {
	for _, res := range r.Results {
		if res.Outcome.Success {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}

// Failed reports whether any executed step failed.
func (r *Report) Failed() bool {
	_, failed := r.Summary()
	return failed > 0
}

// Runner executes manifests sequentially.
type Runner struct {
	Ops             Executor
	ContinueOnError bool

	log zerolog.Logger
}

// NewRunner creates a runner. A manifest's own continue_on_error setting
// overrides continueOnError.
func NewRunner(ops Executor, continueOnError bool) *Runner {
	return &Runner{
		Ops:             ops,
		ContinueOnError: continueOnError,
		log:             logger.Component("batch"),
	}
}

// Run executes the manifest's steps in order. Steps whose platform filter does
// not match the host are skipped. The first failure stops the run unless
// continue-on-error is in effect; completed steps are never undone. A
// cancelled context stops the run between steps and is returned together with
// the partial report.
func (r *Runner) Run(ctx context.Context, m *Manifest) (*Report, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	continueOnError := r.ContinueOnError
	if m.ContinueOnError != nil {
		continueOnError = *m.ContinueOnError
	}

	report := &Report{RunID: uuid.New(), Started: time.Now()}
	log := r.log.With().Str("run_id", report.RunID.String()).Logger()
	log.Debug().Int("steps", len(m.Steps)).Bool("continue_on_error", continueOnError).Msg("starting batch")

	defer func() { report.Duration = time.Since(report.Started) }()

	for i, step := range m.Steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if step.Platform != nil && !step.Platform.IsCurrent() {
			log.Debug().Int("step", i+1).Str("platform", step.Platform.String()).Msg("skipping step for other platform")
			report.Skipped = append(report.Skipped, i)
			continue
		}

		// Validated above.
		req, _ := step.Request()
		out := r.Ops.Do(req)
		report.Results = append(report.Results, StepResult{Index: i, Label: step.Label(), Outcome: out})

		if out.Success {
			log.Debug().Int("step", i+1).Msg(out.Message)
			continue
		}

		log.Warn().Int("step", i+1).Msg(out.Message)
		if !continueOnError {
			report.Stopped = i < len(m.Steps)-1
			break
		}
	}

	succeeded, failed := report.Summary()
	log.Info().Int("succeeded", succeeded).Int("failed", failed).Int("skipped", len(report.Skipped)).Msg("batch finished")
	return report, nil
}
