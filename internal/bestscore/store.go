// Package bestscore persists the best score ever observed per seed.
//
// A run loads the file once into an immutable Scores snapshot, uses it for
// every relative-score computation, and merges its accepted results back in a
// single step after all workers have finished. Entries are only ever added or
// improved, never removed.
package bestscore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/specialistvlad/seedrun/internal/model"
)

// FileName is the store's file name inside the output directory.
const FileName = "best_scores.json"

// Scores maps seed to best accepted score. Treat values as read-only.
type Scores map[uint64]uint64

// Get returns the best for seed, or 0 when unknown.
func (s Scores) Get(seed uint64) uint64 {
	return s[seed]
}

// Path returns the store location for an output directory.
func Path(outDir string) string {
	return filepath.Join(outDir, FileName)
}

// Load reads the store. A missing file yields an empty snapshot.
func Load(path string) (Scores, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Scores{}, nil
		}
		return nil, fmt.Errorf("bestscore: read %s: %w", path, err)
	}

	var raw map[string]uint64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("bestscore: parse %s: %w", path, err)
	}

	scores := make(Scores, len(raw))
	for key, value := range raw {
		seed, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bestscore: parse %s: invalid seed key %q", path, key)
		}
		if value == 0 {
			continue
		}
		scores[seed] = value
	}
	return scores, nil
}

// Merge returns a new Scores with every accepted result folded in, plus the
// seeds whose entry was added or improved. prev is not modified.
func Merge(obj model.Objective, prev Scores, results []model.CaseResult) (Scores, []uint64) {
	next := maps.Clone(prev)
	if next == nil {
		next = Scores{}
	}

	var improved []uint64
	for _, r := range results {
		if !r.Outcome.Accepted || r.Outcome.Score == 0 {
			continue
		}
		best, ok := next[r.Seed]
		if ok && !obj.Better(r.Outcome.Score, best) {
			continue
		}
		next[r.Seed] = r.Outcome.Score
		improved = append(improved, r.Seed)
	}
	slices.Sort(improved)
	return next, improved
}

// Save writes the store atomically, keyed by zero-padded seed in ascending order.
func Save(path string, scores Scores) error {
	// encoding/json sorts map keys; zero padding keeps that order numeric for seeds < 10000.
	out := make(map[string]uint64, len(scores))
	for seed, value := range scores {
		out[fmt.Sprintf("%04d", seed)] = value
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("bestscore: encode: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("bestscore: ensure dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".best_scores-*.json")
	if err != nil {
		return fmt.Errorf("bestscore: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("bestscore: write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("bestscore: close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("bestscore: replace %s: %w", path, err)
	}
	return nil
}
