package app

import (
	"context"

	"github.com/specialistvlad/seedrun/internal/bestscore"
	"github.com/specialistvlad/seedrun/internal/config"
	"github.com/specialistvlad/seedrun/internal/ctxlog"
	"github.com/specialistvlad/seedrun/internal/history"
)

// List prints the most recent runs with relative scores recomputed against
// the current best scores.
func (a *App) List(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	settings, err := config.Load(ctx, a.config.SettingFile)
	if err != nil {
		return fatal("failed to load settings", err)
	}
	best, err := bestscore.Load(bestscore.Path(settings.Test.OutDir))
	if err != nil {
		return fatal("failed to load best scores", err)
	}

	limit := a.config.List.Limit
	if a.config.List.All {
		limit = 0
	}
	entries, err := history.Load(ctx, settings.Test.OutDir, limit)
	if err != nil {
		return fatal("failed to read results", err)
	}
	history.Recompute(entries, best)

	return history.Render(a.outW, settings.Problem.Objective, entries)
}
