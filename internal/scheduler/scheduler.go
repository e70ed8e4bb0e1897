package scheduler

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"
	"slices"

	"github.com/klauspost/cpuid/v2"
	"github.com/specialistvlad/seedrun/internal/ctxlog"
	"github.com/specialistvlad/seedrun/internal/executor"
	"github.com/specialistvlad/seedrun/internal/model"
	"golang.org/x/sync/errgroup"
)

// Config controls the worker pool.
type Config struct {
	// Workers is the pool width; 0 means the number of physical cores.
	Workers int
	// Shuffle randomises dispatch order.
	Shuffle bool
	// Rand is the shuffle source; nil uses the global generator.
	Rand *rand.Rand
}

// Scheduler owns the worker pool for one run.
type Scheduler struct {
	exec    executor.Executor
	workers int
	shuffle bool
	rng     *rand.Rand
}

// New creates a scheduler. The worker count is resolved immediately.
func New(exec executor.Executor, cfg Config) *Scheduler {
	return &Scheduler{
		exec:    exec,
		workers: ResolveWorkers(cfg.Workers),
		shuffle: cfg.Shuffle,
		rng:     cfg.Rand,
	}
}

// ResolveWorkers maps a requested width to the effective one.
func ResolveWorkers(requested int) int {
	if requested > 0 {
		return requested
	}
	if n := cpuid.CPU.PhysicalCores; n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// Workers returns the effective pool width.
func (s *Scheduler) Workers() int {
	return s.workers
}

// Run starts dispatching seeds and returns the stream of results.
func (s *Scheduler) Run(ctx context.Context, seeds []uint64) <-chan model.CaseResult {
	logger := ctxlog.FromContext(ctx)

	order := slices.Clone(seeds)
	if s.shuffle {
		s.shuffleSeeds(order)
	}

	jobs := make(chan uint64)
	results := make(chan model.CaseResult, s.workers)

	var g errgroup.Group
	g.Go(func() error {
		s.dispatch(ctx, order, jobs)
		return nil
	})

	logger.Debug("Starting worker pool.", "workers", s.workers, "cases", len(order), "shuffle", s.shuffle)
	for id := range s.workers {
		g.Go(func() error {
			return s.worker(ctx, id, jobs, results)
		})
	}

	go func() {
		if err := g.Wait(); err != nil {
			logger.Error("Worker pool finished with errors.", "error", err)
		}
		close(results)
		logger.Debug("Worker pool drained.")
	}()

	return results
}

func (s *Scheduler) shuffleSeeds(seeds []uint64) {
	swap := func(i, j int) { seeds[i], seeds[j] = seeds[j], seeds[i] }
	if s.rng != nil {
		s.rng.Shuffle(len(seeds), swap)
		return
	}
	rand.Shuffle(len(seeds), swap)
}

// dispatch feeds seeds to the workers until they run out or ctx is cancelled.
func (s *Scheduler) dispatch(ctx context.Context, seeds []uint64, jobs chan<- uint64) {
	logger := ctxlog.FromContext(ctx)
	defer close(jobs)

	for i, seed := range seeds {
		if ctx.Err() != nil {
			logger.Warn("Dispatch stopped by interrupt.", "dispatched", i, "remaining", len(seeds)-i)
			return
		}
		select {
		case <-ctx.Done():
			logger.Warn("Dispatch stopped by interrupt.", "dispatched", i, "remaining", len(seeds)-i)
			return
		case jobs <- seed:
		}
	}
}

// worker is the processing loop for a single concurrent worker. A panicking
// case is reported as rejected and the worker moves on; the first panic is
// returned once the jobs run out.
func (s *Scheduler) worker(ctx context.Context, workerID int, jobs <-chan uint64, results chan<- model.CaseResult) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Worker started.", "workerID", workerID)

	// In-flight cases must outlive an interrupt.
	caseCtx := context.WithoutCancel(ctx)
	var firstErr error

	for seed := range jobs {
		workerLogger := logger.With("workerID", workerID, "seed", seed)
		if ctx.Err() != nil {
			workerLogger.Debug("Context canceled, seed not started.")
			continue
		}

		workerLogger.Debug("Worker picked up seed.")
		result, err := s.execute(ctxlog.WithLogger(caseCtx, workerLogger), seed)
		if err != nil {
			workerLogger.Error("Case panicked.", "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
		results <- result
	}
	logger.Debug("Worker finished.", "workerID", workerID)
	return firstErr
}

func (s *Scheduler) execute(ctx context.Context, seed uint64) (result model.CaseResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("seed %d: panic: %v", seed, r)
			result = model.CaseResult{Seed: seed, Outcome: model.Rejected(fmt.Sprintf("internal error: %v", r))}
		}
	}()
	return s.exec.Execute(ctx, seed), nil
}
