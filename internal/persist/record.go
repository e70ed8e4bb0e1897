package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/specialistvlad/seedrun/internal/model"
	"github.com/specialistvlad/seedrun/internal/report"
)

// RecordDir is the directory, relative to the output directory, holding run records.
const RecordDir = "json"

// WriteError reports a result file that could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// RunInfo is the run metadata not derived from case results.
type RunInfo struct {
	ID        string
	StartTime time.Time
	Objective model.Objective
	Tag       string
	Comment   string
}

// BuildRecord turns a finished run into its durable form.
func BuildRecord(info RunInfo, summary report.Summary) *model.RunRecord {
	s := summary.Stats
	rec := &model.RunRecord{
		ID:               info.ID,
		StartTime:        info.StartTime,
		Objective:        info.Objective,
		Tag:              info.Tag,
		Comment:          info.Comment,
		CaseCount:        s.Completed,
		AcceptedCount:    s.Accepted,
		TotalScore:       s.ScoreSum,
		MeanScore:        s.MeanScore(),
		TotalScoreLog10:  s.Log10Sum,
		MeanScoreLog10:   s.MeanLog10(),
		MaxExecutionTime: s.MaxElapsed.Seconds(),
		RejectedSeeds:    []uint64{},
		Cases:            make([]model.CaseRecord, 0, len(summary.Results)),
	}
	if rel, ok := s.MeanRelative(); ok {
		rec.MeanRelative = &rel
	}

	for _, r := range summary.Results {
		c := model.CaseRecord{
			Seed:          r.Seed,
			ExecutionTime: r.Elapsed.Seconds(),
			ErrorMessage:  r.Outcome.Reason,
		}
		if r.Outcome.Accepted {
			c.Score = r.Outcome.Score
			if rel, ok := summary.Relative[r.Seed]; ok {
				c.RelativeScore = &rel
			}
		} else {
			rec.RejectedSeeds = append(rec.RejectedSeeds, r.Seed)
		}
		rec.Cases = append(rec.Cases, c)
	}
	return rec
}

// RecordName is the base file name for a run started at t, before any
// collision suffix.
func RecordName(t time.Time) string {
	return "result_" + t.Format("20060102_150405")
}

// SaveRecord writes rec under outDir/json and returns the path written. An
// existing record is never overwritten; a numeric suffix is added instead.
func SaveRecord(outDir string, rec *model.RunRecord) (string, error) {
	dir := filepath.Join(outDir, RecordDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &WriteError{Path: dir, Err: err}
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", &WriteError{Path: dir, Err: err}
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, ".result-*.tmp")
	if err != nil {
		return "", &WriteError{Path: dir, Err: err}
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", &WriteError{Path: tmp.Name(), Err: err}
	}
	if err := tmp.Close(); err != nil {
		return "", &WriteError{Path: tmp.Name(), Err: err}
	}

	// Link fails when the target exists, so each name is claimed atomically.
	base := RecordName(rec.StartTime.Local())
	for i := 0; ; i++ {
		name := base + ".json"
		if i > 0 {
			name = fmt.Sprintf("%s_%d.json", base, i)
		}
		path := filepath.Join(dir, name)
		err := os.Link(tmp.Name(), path)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", &WriteError{Path: path, Err: err}
		}
	}
}

// LoadRecord reads one persisted run record.
func LoadRecord(path string) (*model.RunRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec model.RunRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &rec, nil
}
