package history

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"

	"github.com/specialistvlad/seedrun/internal/bestscore"
	"github.com/specialistvlad/seedrun/internal/ctxlog"
	"github.com/specialistvlad/seedrun/internal/fsutil"
	"github.com/specialistvlad/seedrun/internal/model"
	"github.com/specialistvlad/seedrun/internal/persist"
	"github.com/specialistvlad/seedrun/internal/score"
)

// ErrNoResults is returned when the output directory holds no record directory.
var ErrNoResults = errors.New("no results found")

// Entry is one listed run with its aggregates recomputed against current bests.
type Entry struct {
	Path         string
	Record       *model.RunRecord
	MeanRelative float64
	RelativeOK   bool
}

// Load returns up to limit of the most recent run records in outDir, oldest
// first. A limit of 0 or less loads every record. Files that cannot be read
// or parsed are skipped with a warning.
func Load(ctx context.Context, outDir string, limit int) ([]Entry, error) {
	logger := ctxlog.FromContext(ctx)
	dir := filepath.Join(outDir, persist.RecordDir)

	files, err := fsutil.FindFilesByExtension(dir, ".json")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w in %s", ErrNoResults, dir)
		}
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	logger.Debug("Discovered run records.", "dir", dir, "count", len(files))

	// Names embed the start time, so reverse name order is newest first.
	slices.Reverse(files)

	var entries []Entry
	for _, path := range files {
		if limit > 0 && len(entries) == limit {
			break
		}
		rec, err := persist.LoadRecord(path)
		if err != nil {
			logger.Warn("Skipping unreadable run record.", "path", path, "error", err)
			continue
		}
		entries = append(entries, Entry{Path: path, Record: rec})
	}

	slices.Reverse(entries)
	return entries, nil
}

// Recompute fills each entry's mean relative score from best.
func Recompute(entries []Entry, best bestscore.Scores) {
	for i := range entries {
		entries[i].MeanRelative, entries[i].RelativeOK = MeanRelative(entries[i].Record, best)
	}
}

// MeanRelative computes the mean relative score of rec against best.
func MeanRelative(rec *model.RunRecord, best bestscore.Scores) (float64, bool) {
	var mean score.RelativeMean
	for _, c := range rec.Cases {
		mean.Add(rec.Objective, c.Accepted(), c.Score, best.Get(c.Seed))
	}
	return mean.Mean()
}
