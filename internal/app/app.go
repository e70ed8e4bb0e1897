package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/specialistvlad/seedrun/internal/ctxlog"
	"github.com/specialistvlad/seedrun/internal/step"
	"github.com/specialistvlad/seedrun/internal/vcs"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	errW   io.Writer
	logger *slog.Logger
	config *Config

	runner step.Runner
	tagger vcs.Tagger
	now    func() time.Time
	newID  func() string
}

// NewApp is the constructor for the main application. outW receives the
// table or JSON lines; errW receives logs and warnings.
func NewApp(outW, errW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		errW:   errW,
		logger: logger,
		config: cfg,
		runner: step.NewExecRunner(),
		tagger: vcs.NewGitTagger("."),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Execute runs the configured command.
func (a *App) Execute(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	switch a.config.Command {
	case CommandRun:
		return a.Run(ctx)
	case CommandList:
		return a.List(ctx)
	}
	return fmt.Errorf("unknown command %q", a.config.Command)
}
