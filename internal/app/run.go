package app

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/seedrun/internal/bestscore"
	"github.com/specialistvlad/seedrun/internal/config"
	"github.com/specialistvlad/seedrun/internal/ctxlog"
	"github.com/specialistvlad/seedrun/internal/executor"
	"github.com/specialistvlad/seedrun/internal/persist"
	"github.com/specialistvlad/seedrun/internal/report"
	"github.com/specialistvlad/seedrun/internal/scheduler"
	"github.com/specialistvlad/seedrun/internal/score"
)

// Run executes the compile phase and every case, then records the run.
// Only configuration and compile failures are returned; persistence and
// tagging problems are reported as warnings on errW.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")
	opts := a.config.Run

	settings, err := config.Load(ctx, a.config.SettingFile)
	if err != nil {
		return fatal("failed to load settings", err)
	}
	outDir := settings.Test.OutDir
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fatal("failed to create output directory", err)
	}

	bestPath := bestscore.Path(outDir)
	best, err := bestscore.Load(bestPath)
	if err != nil {
		return fatal("failed to load best scores", err)
	}
	a.logger.Debug("Best scores loaded.", "path", bestPath, "seeds", len(best))

	extractor, err := score.NewExtractor(settings.Problem.ScorePattern)
	if err != nil {
		return fatal("failed to compile score pattern", err)
	}

	startTime := a.now()
	var warnings []error

	if opts.NoCompile {
		a.logger.Info("Compile phase skipped.")
	} else {
		a.logger.Info("Compile phase started.", "steps", len(settings.Test.CompileSteps))
		if err := executor.Compile(ctx, a.runner, settings.Test.CompileSteps); err != nil {
			return fatal("compile failed", err)
		}
		a.logger.Info("Compile finished.")
	}

	// Tag only after a successful compile.
	tag := ""
	if opts.Tag {
		tag, err = a.tagger.Tag(ctx, opts.Comment)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("failed to create tag: %w", err))
		}
	}

	seeds := settings.Test.Seeds.Seeds()
	sched := scheduler.New(executor.New(settings.Test.TestSteps, a.runner, extractor), scheduler.Config{
		Workers: settings.Test.Threads,
		Shuffle: opts.Shuffle,
	})

	var printer report.Printer = report.NewConsole(a.outW, len(seeds))
	if opts.JSON {
		printer = report.NewJSONLines(a.outW)
	}
	agg := report.NewAggregator(settings.Problem.Objective, best, printer, len(seeds))

	if a.config.StatusAddr != "" {
		srv, err := a.startStatusServer(ctx, a.config.StatusAddr, agg)
		if err != nil {
			return fatal("failed to start status server", err)
		}
		defer srv.Close(ctx)
	}

	a.logger.Info("🚀 Starting cases...", "problem", settings.Problem.Name, "seeds", len(seeds), "workers", sched.Workers())
	summary := agg.Consume(ctx, sched.Run(ctx, seeds))
	a.logger.Info("🏁 Cases finished.", "completed", summary.Stats.Completed, "total", len(seeds))

	if summary.Stats.Completed == 0 {
		a.logger.Warn("No case completed; nothing to record.")
		a.printWarnings(warnings)
		return nil
	}

	if opts.NoResultFile {
		a.logger.Info("Result files skipped.")
	} else {
		rec := persist.BuildRecord(persist.RunInfo{
			ID:        a.newID(),
			StartTime: startTime,
			Objective: settings.Problem.Objective,
			Tag:       tag,
			Comment:   opts.Comment,
		}, summary)

		if path, err := persist.SaveRecord(outDir, rec); err != nil {
			warnings = append(warnings, err)
		} else {
			a.logger.Info("Run record written.", "path", path)
		}
		if err := persist.AppendSummary(outDir, rec); err != nil {
			warnings = append(warnings, err)
		}
	}

	if opts.Freeze {
		a.logger.Info("Best scores frozen for this run.")
	} else {
		merged, improved := bestscore.Merge(settings.Problem.Objective, best, summary.Results)
		if len(improved) > 0 {
			if err := bestscore.Save(bestPath, merged); err != nil {
				warnings = append(warnings, &persist.WriteError{Path: bestPath, Err: err})
			} else {
				a.logger.Info("Best scores updated.", "path", bestPath, "improved", len(improved))
			}
		}
	}

	a.printWarnings(warnings)
	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) printWarnings(warnings []error) {
	for _, w := range warnings {
		fmt.Fprintf(a.errW, "warning: %v\n", w)
	}
}
