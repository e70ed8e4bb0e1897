package step

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/specialistvlad/seedrun/internal/ctxlog"
	"github.com/specialistvlad/seedrun/internal/model"
)

// Output is the observable result of one step invocation.
type Output struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
	Elapsed  time.Duration
}

// Capture converts the output into the form the score extractor consumes.
func (o Output) Capture() model.Capture {
	return model.Capture{Stdout: o.Stdout, Stderr: o.Stderr, ExitCode: o.ExitCode}
}

// Runner executes one already-resolved StepSpec.
type Runner interface {
	Run(ctx context.Context, spec model.StepSpec) (Output, error)
}

// SpawnError reports that a step's program could not be launched or its
// input could not be prepared.
type SpawnError struct {
	Program string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to spawn %q: %v", e.Program, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// CaptureWriteError reports that a finished step's output could not be
// written to its configured capture file.
type CaptureWriteError struct {
	Path string
	Err  error
}

func (e *CaptureWriteError) Error() string {
	return fmt.Sprintf("failed to write capture file %s: %v", e.Path, e.Err)
}

func (e *CaptureWriteError) Unwrap() error { return e.Err }

// ExecRunner runs steps as local child processes.
//
// The context is used for logging only. Children are never killed when the
// context is cancelled; they run to completion unless KillRunning is called.
type ExecRunner struct{}

// NewExecRunner creates a process-backed Runner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, spec model.StepSpec) (Output, error) {
	logger := ctxlog.FromContext(ctx).With("program", spec.Program)

	cmd := exec.Command(spec.Program, spec.Args...)
	cmd.Dir = spec.Dir
	detachProcessGroup(cmd)

	if spec.Stdin != "" {
		in, err := os.Open(spec.Stdin)
		if err != nil {
			return Output{}, &SpawnError{Program: spec.Program, Err: fmt.Errorf("open stdin: %w", err)}
		}
		defer in.Close()
		cmd.Stdin = in
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("Starting step process.", "args", spec.Args, "dir", spec.Dir)
	start := time.Now()
	if err := cmd.Start(); err != nil {
		return Output{}, &SpawnError{Program: spec.Program, Err: err}
	}
	track(cmd.Process)

	waitErr := cmd.Wait()
	untrack(cmd.Process)
	out := Output{
		Stdout:  stdout.Bytes(),
		Stderr:  stderr.Bytes(),
		Elapsed: time.Since(start),
	}

	var exitErr *exec.ExitError
	switch {
	case waitErr == nil:
	case errors.As(waitErr, &exitErr):
		out.ExitCode = exitErr.ExitCode()
	default:
		return out, fmt.Errorf("waiting for %q: %w", spec.Program, waitErr)
	}
	logger.Debug("Step process exited.", "exit_code", out.ExitCode, "elapsed", out.Elapsed)

	if err := writeCapture(spec.Stdout, out.Stdout); err != nil {
		return out, err
	}
	if err := writeCapture(spec.Stderr, out.Stderr); err != nil {
		return out, err
	}
	return out, nil
}

func writeCapture(path string, data []byte) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &CaptureWriteError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &CaptureWriteError{Path: path, Err: err}
	}
	return nil
}
