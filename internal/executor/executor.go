// Package executor runs the test-step pipeline for one seed (the case) and the
// one-off compile phase that precedes every run.
package executor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/seedrun/internal/ctxlog"
	"github.com/specialistvlad/seedrun/internal/model"
	"github.com/specialistvlad/seedrun/internal/score"
	"github.com/specialistvlad/seedrun/internal/step"
)

// Executor runs a single case to completion and never returns an error:
// every failure becomes a Rejected outcome on the CaseResult.
type Executor interface {
	Execute(ctx context.Context, seed uint64) model.CaseResult
}

// CaseExecutor is the process-backed Executor.
type CaseExecutor struct {
	steps     []model.StepSpec
	runner    step.Runner
	extractor *score.Extractor
}

// New creates a CaseExecutor over the configured test steps.
func New(steps []model.StepSpec, runner step.Runner, extractor *score.Extractor) *CaseExecutor {
	return &CaseExecutor{steps: steps, runner: runner, extractor: extractor}
}

// Execute runs every test step for seed, strictly in order, and classifies
// the case from the captured output. A step that cannot be spawned ends the
// case early as Rejected; later steps are not attempted.
func (e *CaseExecutor) Execute(ctx context.Context, seed uint64) model.CaseResult {
	logger := ctxlog.FromContext(ctx).With("seed", seed)
	result := model.CaseResult{
		Seed:     seed,
		Captures: make([]model.Capture, 0, len(e.steps)),
	}

	for i, spec := range e.steps {
		resolved := step.Resolve(spec, seed)
		out, err := e.runner.Run(ctx, resolved)
		if spec.Measured {
			result.Elapsed += out.Elapsed
		}
		if err != nil {
			logger.Warn("Test step failed, rejecting case.", "step", i+1, "program", resolved.Program, "error", err)
			result.Outcome = model.Rejected(failureReason(i, err))
			return result
		}
		result.Captures = append(result.Captures, out.Capture())
	}

	result.Outcome = e.extractor.Extract(result.Captures)
	if !result.Outcome.Accepted {
		logger.Debug("Case rejected.", "reason", result.Outcome.Reason)
	}
	return result
}

func failureReason(index int, err error) string {
	var spawnErr *step.SpawnError
	if errors.As(err, &spawnErr) {
		return fmt.Sprintf("spawn failed at step %d: %v", index+1, spawnErr.Err)
	}
	return fmt.Sprintf("step %d failed: %v", index+1, err)
}

// CompileError reports a failed compile step. It is fatal to the whole run.
type CompileError struct {
	Index    int
	Program  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CompileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("compile step %d (%s) failed: %v", e.Index+1, e.Program, e.Err)
	}
	msg := fmt.Sprintf("compile step %d (%s) exited with status %d", e.Index+1, e.Program, e.ExitCode)
	if e.Stderr != "" {
		msg += ":\n" + e.Stderr
	}
	return msg
}

func (e *CompileError) Unwrap() error { return e.Err }

// stderrTail bounds how much compiler output is carried in a CompileError.
const stderrTail = 2048

// Compile runs the compile steps once, sequentially, on the calling goroutine.
// The first failing step aborts the phase.
func Compile(ctx context.Context, runner step.Runner, steps []model.StepSpec) error {
	logger := ctxlog.FromContext(ctx)
	for i, spec := range steps {
		logger.Info("🔨 Running compile step", "step", i+1, "program", spec.Program, "args", spec.Args)
		start := time.Now()
		out, err := runner.Run(ctx, spec)
		if err != nil {
			return &CompileError{Index: i, Program: spec.Program, Err: err}
		}
		if out.ExitCode != 0 {
			stderr := out.Stderr
			if len(stderr) > stderrTail {
				stderr = stderr[len(stderr)-stderrTail:]
			}
			return &CompileError{Index: i, Program: spec.Program, ExitCode: out.ExitCode, Stderr: string(stderr)}
		}
		logger.Debug("Compile step finished.", "step", i+1, "elapsed", time.Since(start))
	}
	return nil
}
