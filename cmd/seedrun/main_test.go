package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/seedrun/internal/app"
	"github.com/specialistvlad/seedrun/internal/cli"
	"github.com/stretchr/testify/require"
)

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, &bytes.Buffer{}, []string{"-h"})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	args := []string{"run", "--this-is-not-a-valid-flag"}

	// --- Act ---
	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, args)

	// --- Assert ---
	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_MissingSettingsIsFatal(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	args := []string{"run", "--setting-file", filepath.Join(t.TempDir(), "seedrun.hcl")}

	// --- Act ---
	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, args)

	// --- Assert ---
	var fatalErr *app.FatalError
	require.True(t, errors.As(err, &fatalErr))
	require.Contains(t, err.Error(), "failed to load settings")
}

func TestRun_RunThenList(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	settings := filepath.Join(dir, "seedrun.hcl")
	hcl := fmt.Sprintf(`
problem {
  name        = "demo"
  objective   = "min"
  score_regex = "^score: (?P<score>\\d+)$"
}

test {
  start_seed = 1
  end_seed   = 4
  threads    = 0
  out_dir    = %q

  test_step {
    program = "sh"
    args    = ["-c", "echo score: {SEED}0 >&2"]
  }
}
`, filepath.Join(dir, "out"))
	require.NoError(t, os.WriteFile(settings, []byte(hcl), 0o644))

	// --- Act ---
	runOut := &bytes.Buffer{}
	err := run(context.Background(), runOut, &bytes.Buffer{}, []string{"run", "--setting-file", settings, "-c", "smoke"})
	require.NoError(t, err)

	listOut := &bytes.Buffer{}
	err = run(context.Background(), listOut, &bytes.Buffer{}, []string{"list", "--setting-file", settings})
	require.NoError(t, err)

	// --- Assert ---
	require.Contains(t, runOut.String(), "Accepted               : 3 / 3")
	require.Contains(t, listOut.String(), "3/3")
	require.Contains(t, listOut.String(), "smoke")
	require.Contains(t, listOut.String(), "100.000")
}
