package report

import (
	"cmp"
	"context"
	"slices"
	"sync/atomic"

	"github.com/specialistvlad/seedrun/internal/bestscore"
	"github.com/specialistvlad/seedrun/internal/ctxlog"
	"github.com/specialistvlad/seedrun/internal/model"
)

// CaseView is what a Printer sees for one completed case.
type CaseView struct {
	Progress   int
	Total      int
	Result     model.CaseResult
	Relative   float64
	RelativeOK bool
	Running    *Stats
}

// Printer renders the live view and the final summary.
type Printer interface {
	PrintCase(c CaseView) error
	PrintSummary(s *Stats) error
}

// Summary is what a finished Consume hands to persistence.
type Summary struct {
	Stats *Stats
	// Results sorted by seed.
	Results []model.CaseResult
	// Relative holds the defined relative scores by seed, against the pre-run snapshot.
	Relative map[uint64]float64
}

// Aggregator consumes results from the scheduler on a single goroutine.
type Aggregator struct {
	obj     model.Objective
	best    bestscore.Scores
	printer Printer
	total   int

	latest atomic.Pointer[Snapshot]
}

// NewAggregator creates an aggregator for a run of total cases. best is the
// pre-run snapshot used for every relative score.
func NewAggregator(obj model.Objective, best bestscore.Scores, printer Printer, total int) *Aggregator {
	a := &Aggregator{obj: obj, best: best, printer: printer, total: total}
	a.latest.Store(&Snapshot{Total: total})
	return a
}

// Latest returns the most recent snapshot. Safe for concurrent use.
func (a *Aggregator) Latest() Snapshot {
	return *a.latest.Load()
}

// Consume drains results until the channel is closed, rendering each case as
// it arrives and the summary at the end. Rendering errors are logged and do
// not stop the drain.
func (a *Aggregator) Consume(ctx context.Context, results <-chan model.CaseResult) Summary {
	logger := ctxlog.FromContext(ctx)

	stats := &Stats{Total: a.total}
	summary := Summary{Stats: stats, Relative: make(map[uint64]float64)}

	for r := range results {
		// Output is only needed for extraction; keep results small for the run.
		r.Captures = nil
		rel, ok := stats.Add(a.obj, r, a.best.Get(r.Seed))
		if ok {
			summary.Relative[r.Seed] = rel
		}
		summary.Results = append(summary.Results, r)

		snap := stats.Snapshot()
		a.latest.Store(&snap)

		view := CaseView{
			Progress:   stats.Completed,
			Total:      a.total,
			Result:     r,
			Relative:   rel,
			RelativeOK: ok,
			Running:    stats,
		}
		if err := a.printer.PrintCase(view); err != nil {
			logger.Warn("Failed to render case.", "seed", r.Seed, "error", err)
		}
	}

	slices.SortFunc(summary.Results, func(x, y model.CaseResult) int {
		return cmp.Compare(x.Seed, y.Seed)
	})

	final := stats.Snapshot()
	final.Finished = true
	a.latest.Store(&final)

	if stats.Completed > 0 {
		if err := a.printer.PrintSummary(stats); err != nil {
			logger.Warn("Failed to render summary.", "error", err)
		}
	}
	return summary
}
