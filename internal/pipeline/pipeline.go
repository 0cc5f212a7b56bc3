// SPDX-License-Identifier: MPL-2.0

// Package pipeline runs release stages strictly in order.
//
// There is no concurrency and no recovery: each stage blocks until its
// subprocess work finishes, and the first failure aborts everything that
// follows.
package pipeline

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
)

type (
	// Stage is one step of a release pipeline.
	Stage struct {
		// Name identifies the stage in logs and errors.
		Name string
		// Run does the work. A non-nil error halts the pipeline.
		Run func(ctx context.Context) error
	}

	// Runner executes stages sequentially.
	Runner struct {
		// Logger reports stage transitions. Defaults to log.Default().
		Logger *log.Logger
	}

	// StageError wraps a stage failure with the stage name.
	StageError struct {
		Stage string
		Err   error
	}
)

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("stage %q failed: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying stage error.
func (e *StageError) Unwrap() error {
	return e.Err
}

// NewRunner creates a Runner logging through logger. A nil logger falls back
// to log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Run executes the stages in order, halting on the first failure or on
// context cancellation between stages.
func (r *Runner) Run(ctx context.Context, stages []Stage) error {
	total := len(stages)

	for i, stage := range stages {
		select {
		case <-ctx.Done():
			return &StageError{Stage: stage.Name, Err: ctx.Err()}
		default:
		}

		r.Logger.Info("stage started", "stage", stage.Name, "step", fmt.Sprintf("%d/%d", i+1, total))

		if err := stage.Run(ctx); err != nil {
			r.Logger.Error("stage failed", "stage", stage.Name, "err", err)
			return &StageError{Stage: stage.Name, Err: err}
		}

		r.Logger.Info("stage completed", "stage", stage.Name)
	}

	return nil
}
