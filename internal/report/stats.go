package report

import (
	"time"

	"github.com/specialistvlad/seedrun/internal/model"
	"github.com/specialistvlad/seedrun/internal/score"
)

// Stats are the running aggregates of a run.
type Stats struct {
	Total      int
	Completed  int
	Accepted   int
	ScoreSum   uint64
	Log10Sum   float64
	MaxElapsed time.Duration

	relative score.RelativeMean
}

// Add folds one result into the aggregates and returns its relative score
// against best (the pre-run snapshot value for the seed).
func (s *Stats) Add(obj model.Objective, r model.CaseResult, best uint64) (float64, bool) {
	s.Completed++
	if r.Outcome.Accepted {
		s.Accepted++
		s.ScoreSum += r.Outcome.Score
		s.Log10Sum += score.Log10(r.Outcome.Score)
	}
	s.MaxElapsed = max(s.MaxElapsed, r.Elapsed)
	return s.relative.Add(obj, r.Outcome.Accepted, r.Outcome.Score, best)
}

// MeanScore is the mean absolute score over accepted cases.
func (s *Stats) MeanScore() float64 {
	if s.Accepted == 0 {
		return 0
	}
	return float64(s.ScoreSum) / float64(s.Accepted)
}

// MeanLog10 is the mean log10(score) over accepted cases.
func (s *Stats) MeanLog10() float64 {
	if s.Accepted == 0 {
		return 0
	}
	return s.Log10Sum / float64(s.Accepted)
}

// MeanRelative is the mean relative score, undefined when no case qualifies.
func (s *Stats) MeanRelative() (float64, bool) {
	return s.relative.Mean()
}

// AllAccepted reports whether every completed case was accepted.
func (s *Stats) AllAccepted() bool {
	return s.Completed > 0 && s.Accepted == s.Completed
}

// Snapshot is a point-in-time copy of the aggregates, safe to share.
type Snapshot struct {
	Total          int      `json:"total"`
	Completed      int      `json:"completed"`
	Accepted       int      `json:"accepted"`
	MeanScore      float64  `json:"mean_score"`
	MeanScoreLog10 float64  `json:"mean_score_log10"`
	MeanRelative   *float64 `json:"mean_relative_score"`
	MaxExecutionMs int64    `json:"max_execution_time_ms"`
	Finished       bool     `json:"finished"`
}

// Snapshot copies the current aggregates.
func (s *Stats) Snapshot() Snapshot {
	snap := Snapshot{
		Total:          s.Total,
		Completed:      s.Completed,
		Accepted:       s.Accepted,
		MeanScore:      s.MeanScore(),
		MeanScoreLog10: s.MeanLog10(),
		MaxExecutionMs: s.MaxElapsed.Milliseconds(),
	}
	if rel, ok := s.MeanRelative(); ok {
		snap.MeanRelative = &rel
	}
	return snap
}
