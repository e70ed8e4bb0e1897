package executor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/specialistvlad/seedrun/internal/model"
	"github.com/specialistvlad/seedrun/internal/score"
	"github.com/specialistvlad/seedrun/internal/step"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scorePattern = `^\s*Score\s*=\s*(?P<score>\d+)\s*$`

// fakeRunner records every resolved spec and replays scripted outputs.
type fakeRunner struct {
	mu      sync.Mutex
	calls   []model.StepSpec
	outputs []step.Output
	errs    []error
}

func (f *fakeRunner) Run(_ context.Context, spec model.StepSpec) (step.Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := len(f.calls)
	f.calls = append(f.calls, spec)
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	if i < len(f.outputs) {
		return f.outputs[i], err
	}
	return step.Output{}, err
}

func newExtractor(t *testing.T) *score.Extractor {
	t.Helper()
	ex, err := score.NewExtractor(scorePattern)
	require.NoError(t, err)
	return ex
}

func TestExecute_RunsStepsInOrderWithResolvedPlaceholders(t *testing.T) {
	// --- Arrange ---
	runner := &fakeRunner{outputs: []step.Output{
		{Stdout: []byte("solving\n"), Elapsed: 30 * time.Millisecond},
		{Stderr: []byte("Score = 512\n"), Elapsed: 5 * time.Millisecond},
	}}
	steps := []model.StepSpec{
		{Program: "./solver", Stdin: "in/{SEED04}.txt", Stdout: "out/{SEED04}.txt", Measured: true},
		{Program: "./vis", Args: []string{"in/{SEED04}.txt", "out/{SEED04}.txt"}},
	}
	exec := New(steps, runner, newExtractor(t))

	// --- Act ---
	res := exec.Execute(context.Background(), 7)

	// --- Assert ---
	require.Len(t, runner.calls, 2)
	assert.Equal(t, "./solver", runner.calls[0].Program)
	assert.Equal(t, "in/0007.txt", runner.calls[0].Stdin)
	assert.Equal(t, "out/0007.txt", runner.calls[0].Stdout)
	assert.Equal(t, []string{"in/0007.txt", "out/0007.txt"}, runner.calls[1].Args)

	assert.Equal(t, uint64(7), res.Seed)
	assert.Equal(t, model.Accepted(512), res.Outcome)
	assert.Equal(t, 30*time.Millisecond, res.Elapsed, "only measured steps count")
	assert.Len(t, res.Captures, 2)
}

func TestExecute_SpawnFailureRejectsAndStops(t *testing.T) {
	runner := &fakeRunner{
		outputs: []step.Output{{}, {}},
		errs:    []error{&step.SpawnError{Program: "./missing", Err: errors.New("no such file")}},
	}
	steps := []model.StepSpec{{Program: "./missing"}, {Program: "./vis"}}

	res := New(steps, runner, newExtractor(t)).Execute(context.Background(), 1)

	assert.False(t, res.Outcome.Accepted)
	assert.Contains(t, res.Outcome.Reason, "spawn failed at step 1")
	assert.Len(t, runner.calls, 1, "later steps must not run after a spawn failure")
}

func TestExecute_RealProcesses(t *testing.T) {
	dir := t.TempDir()
	steps := []model.StepSpec{
		{Program: "sh", Args: []string{"-c", "echo {SEED} > " + filepath.Join(dir, "{SEED04}.out")}, Measured: true},
		{Program: "sh", Args: []string{"-c", "echo \"Score = $(( $(cat " + filepath.Join(dir, "{SEED04}.out") + ") * 10 ))\""}},
	}

	res := New(steps, step.NewExecRunner(), newExtractor(t)).Execute(context.Background(), 12)

	assert.Equal(t, model.Accepted(120), res.Outcome)
	_, err := os.Stat(filepath.Join(dir, "0012.out"))
	require.NoError(t, err)
}

func TestCompile_Success(t *testing.T) {
	err := Compile(context.Background(), step.NewExecRunner(), []model.StepSpec{{Program: "true"}, {Program: "true"}})
	require.NoError(t, err)
}

func TestCompile_FailureIsFatal(t *testing.T) {
	runner := step.NewExecRunner()
	steps := []model.StepSpec{
		{Program: "sh", Args: []string{"-c", "echo boom 1>&2; exit 2"}},
		{Program: "true"},
	}

	err := Compile(context.Background(), runner, steps)

	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, 0, compileErr.Index)
	assert.Equal(t, 2, compileErr.ExitCode)
	assert.Contains(t, err.Error(), "boom")
}

func TestCompile_SpawnFailureIsFatal(t *testing.T) {
	err := Compile(context.Background(), step.NewExecRunner(), []model.StepSpec{{Program: "./no-such-compiler"}})

	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	var spawnErr *step.SpawnError
	require.ErrorAs(t, err, &spawnErr)
}
