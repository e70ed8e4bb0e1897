package scheduler

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/specialistvlad/seedrun/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// instantExecutor accepts every seed with score seed+1.
type instantExecutor struct {
	calls atomic.Int64
}

func (e *instantExecutor) Execute(_ context.Context, seed uint64) model.CaseResult {
	e.calls.Add(1)
	return model.CaseResult{Seed: seed, Outcome: model.Accepted(seed + 1)}
}

// gatedExecutor blocks every case until the test releases it.
type gatedExecutor struct {
	started chan uint64
	release chan struct{}
}

func (e *gatedExecutor) Execute(ctx context.Context, seed uint64) model.CaseResult {
	e.started <- seed
	<-e.release
	return model.CaseResult{Seed: seed, Outcome: model.Accepted(seed + 1)}
}

// panickingExecutor panics on one seed and accepts the rest.
type panickingExecutor struct {
	seed uint64
}

func (e *panickingExecutor) Execute(_ context.Context, seed uint64) model.CaseResult {
	if seed == e.seed {
		panic("boom")
	}
	return model.CaseResult{Seed: seed, Outcome: model.Accepted(seed + 1)}
}

func collect(ch <-chan model.CaseResult) []model.CaseResult {
	var out []model.CaseResult
	for r := range ch {
		out = append(out, r)
	}
	return out
}

func seedsOf(results []model.CaseResult) []uint64 {
	seeds := make([]uint64, 0, len(results))
	for _, r := range results {
		seeds = append(seeds, r.Seed)
	}
	slices.Sort(seeds)
	return seeds
}

func TestRun_ExactlyOneResultPerSeed(t *testing.T) {
	seeds := model.SeedRange{Start: 5, End: 42}.Seeds()

	for _, workers := range []int{1, 2, 8} {
		for _, shuffle := range []bool{false, true} {
			t.Run(fmt.Sprintf("W=%d/shuffle=%v", workers, shuffle), func(t *testing.T) {
				exec := &instantExecutor{}
				s := New(exec, Config{Workers: workers, Shuffle: shuffle, Rand: rand.New(rand.NewPCG(1, 2))})

				results := collect(s.Run(context.Background(), seeds))

				require.Len(t, results, len(seeds))
				assert.Equal(t, seeds, seedsOf(results), "every seed exactly once")
				assert.Equal(t, int64(len(seeds)), exec.calls.Load())
			})
		}
	}
}

func TestRun_ShuffleDoesNotMutateInput(t *testing.T) {
	seeds := []uint64{0, 1, 2, 3, 4, 5, 6, 7}
	s := New(&instantExecutor{}, Config{Workers: 3, Shuffle: true})

	_ = collect(s.Run(context.Background(), seeds))

	assert.Equal(t, []uint64{0, 1, 2, 3, 4, 5, 6, 7}, seeds)
}

func TestResolveWorkers(t *testing.T) {
	assert.Equal(t, 3, ResolveWorkers(3))
	assert.Greater(t, ResolveWorkers(0), 0)
	assert.Greater(t, ResolveWorkers(-1), 0)
}

func TestRun_CancellationStopsDispatchButFinishesInFlight(t *testing.T) {
	// --- Arrange ---
	exec := &gatedExecutor{started: make(chan uint64, 16), release: make(chan struct{})}
	s := New(exec, Config{Workers: 2})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := s.Run(ctx, model.SeedRange{Start: 0, End: 10}.Seeds())

	var (
		mu        sync.Mutex
		collected []model.CaseResult
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for r := range results {
			mu.Lock()
			collected = append(collected, r)
			mu.Unlock()
		}
	}()

	waitStarted := func(n int) {
		for range n {
			select {
			case <-exec.started:
			case <-time.After(5 * time.Second):
				t.Fatal("timed out waiting for a case to start")
			}
		}
	}

	// --- Act ---
	// Two cases start; let three complete in total, which starts three more.
	waitStarted(2)
	for range 3 {
		exec.release <- struct{}{}
		waitStarted(1)
	}
	// Three completed, two in flight.
	cancel()
	exec.release <- struct{}{}
	exec.release <- struct{}{}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("results channel was not closed after cancellation")
	}

	// --- Assert ---
	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, collected, 5, "three completed plus two in-flight cases")
	assert.Empty(t, exec.started, "no case may start after the interrupt")
	assert.Equal(t, []uint64{0, 1, 2, 3, 4}, seedsOf(collected))
}

func TestRun_PanickingCaseIsRejectedAndPoolDrains(t *testing.T) {
	// Arrange
	seeds := model.SeedRange{Start: 0, End: 10}.Seeds()
	s := New(&panickingExecutor{seed: 3}, Config{Workers: 2})

	// Act
	results := make(chan []model.CaseResult, 1)
	go func() { results <- collect(s.Run(context.Background(), seeds)) }()

	// Assert
	var got []model.CaseResult
	select {
	case got = <-results:
	case <-time.After(5 * time.Second):
		t.Fatal("results channel was never closed")
	}
	require.Len(t, got, len(seeds))
	assert.Equal(t, seeds, seedsOf(got))
	for _, r := range got {
		if r.Seed == 3 {
			assert.Equal(t, model.Rejected("internal error: boom"), r.Outcome)
			continue
		}
		assert.Equal(t, model.Accepted(r.Seed+1), r.Outcome)
	}
}
