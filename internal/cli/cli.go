package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/seedrun/internal/app"
	"github.com/specialistvlad/seedrun/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

const mainUsage = `
seedrun - run a heuristic contest solution over a range of seeds.

Usage:
  seedrun <command> [options]

Commands:
  run    Compile, run every seed, and record the results.
  list   Show recent runs scored against the current best scores.

Run 'seedrun <command> -h' for the options of a command.
`

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	if len(args) == 0 {
		fmt.Fprint(output, mainUsage)
		return nil, true, nil
	}

	switch args[0] {
	case "-h", "-help", "--help", "help":
		fmt.Fprint(output, mainUsage)
		return nil, true, nil
	case string(app.CommandRun):
		return parseRun(args[1:], output)
	case string(app.CommandList):
		return parseList(args[1:], output)
	}
	return nil, false, usageError("unknown command %q; expected 'run' or 'list'", args[0])
}

// common are the flags shared by every command.
type common struct {
	settingFile string
	logLevel    string
	logFormat   string
}

func newFlagSet(name, usage string, output io.Writer) (*flag.FlagSet, *common) {
	fs := flag.NewFlagSet("seedrun "+name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, usage)
		fs.PrintDefaults()
	}

	c := &common{}
	fs.StringVar(&c.settingFile, "setting-file", config.DefaultPath, "Path to the settings file (.hcl, .yaml or .yml).")
	fs.StringVar(&c.logLevel, "log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	fs.StringVar(&c.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	return fs, c
}

// parseFlags runs fs over args and rejects stray positional arguments.
func parseFlags(fs *flag.FlagSet, args []string) (bool, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return true, nil
		}
		return false, &ExitError{Code: 2, Message: err.Error()}
	}
	if fs.NArg() > 0 {
		return false, usageError("unexpected argument %q", fs.Arg(0))
	}
	return false, nil
}

func (c *common) config(cmd app.Command) (app.Config, error) {
	logFormat := strings.ToLower(c.logFormat)
	if logFormat != "text" && logFormat != "json" {
		return app.Config{}, usageError("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(c.logLevel)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return app.Config{}, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	return app.Config{
		Command:     cmd,
		SettingFile: c.settingFile,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	}, nil
}

func parseRun(args []string, output io.Writer) (*app.Config, bool, error) {
	fs, c := newFlagSet("run", `
Usage:
  seedrun run [options]

Options:
`, output)

	var opts app.RunOptions
	fs.StringVar(&opts.Comment, "comment", "", "Comment stored with the run.")
	fs.StringVar(&opts.Comment, "c", "", "Comment stored with the run (shorthand).")
	fs.BoolVar(&opts.Tag, "tag", false, "Tag the current source state in git.")
	fs.BoolVar(&opts.Tag, "t", false, "Tag the current source state in git (shorthand).")
	fs.BoolVar(&opts.JSON, "json", false, "Print one JSON object per case instead of the table.")
	fs.BoolVar(&opts.JSON, "j", false, "Print one JSON object per case (shorthand).")
	fs.BoolVar(&opts.Shuffle, "shuffle", false, "Dispatch seeds in random order.")
	fs.BoolVar(&opts.Shuffle, "s", false, "Dispatch seeds in random order (shorthand).")
	fs.BoolVar(&opts.Freeze, "freeze-best-scores", false, "Do not update the best scores.")
	fs.BoolVar(&opts.Freeze, "f", false, "Do not update the best scores (shorthand).")
	fs.BoolVar(&opts.NoResultFile, "no-result-file", false, "Do not write the run record or summary row.")
	fs.BoolVar(&opts.NoCompile, "no-compile", false, "Skip the compile steps.")
	statusAddr := fs.String("status-addr", "", "Serve /health and /progress on this address, e.g. 127.0.0.1:8080.")

	if exit, err := parseFlags(fs, args); exit || err != nil {
		return nil, exit, err
	}
	slog.Debug("Arguments parsed successfully.")

	base, err := c.config(app.CommandRun)
	if err != nil {
		return nil, false, err
	}
	base.StatusAddr = *statusAddr
	base.Run = opts

	cfg, err := app.NewConfig(base)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}

func parseList(args []string, output io.Writer) (*app.Config, bool, error) {
	fs, c := newFlagSet("list", `
Usage:
  seedrun list [options]

Options:
`, output)

	var opts app.ListOptions
	fs.IntVar(&opts.Limit, "n", app.DefaultListLimit, "Number of most recent runs to show.")
	fs.BoolVar(&opts.All, "all", false, "Show every run.")
	fs.BoolVar(&opts.All, "a", false, "Show every run (shorthand).")

	if exit, err := parseFlags(fs, args); exit || err != nil {
		return nil, exit, err
	}
	if opts.Limit <= 0 && !opts.All {
		return nil, false, usageError("invalid -n: must be positive")
	}

	base, err := c.config(app.CommandList)
	if err != nil {
		return nil, false, err
	}
	base.List = opts

	cfg, err := app.NewConfig(base)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return cfg, false, nil
}
