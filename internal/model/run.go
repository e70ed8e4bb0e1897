package model

import (
	"math"
	"time"
)

// RunRecord is the durable record of one run. Cases are sorted by seed.
// RelativeScore fields reflect the best scores known when the run executed
// and are informational only; readers recompute them against current bests.
type RunRecord struct {
	ID               string       `json:"id"`
	StartTime        time.Time    `json:"start_time"`
	Objective        Objective    `json:"objective"`
	Tag              string       `json:"tag_name,omitempty"`
	Comment          string       `json:"comment"`
	CaseCount        int          `json:"case_count"`
	AcceptedCount    int          `json:"accepted_count"`
	TotalScore       uint64       `json:"total_score"`
	MeanScore        float64      `json:"mean_score"`
	TotalScoreLog10  float64      `json:"total_score_log10"`
	MeanScoreLog10   float64      `json:"mean_score_log10"`
	MeanRelative     *float64     `json:"mean_relative_score"`
	MaxExecutionTime float64      `json:"max_execution_time"`
	RejectedSeeds    []uint64     `json:"wa_seeds"`
	Cases            []CaseRecord `json:"cases"`
}

// CaseRecord is the persisted form of a CaseResult. Score is 0 when rejected.
type CaseRecord struct {
	Seed          uint64   `json:"seed"`
	Score         uint64   `json:"score"`
	RelativeScore *float64 `json:"relative_score"`
	ExecutionTime float64  `json:"execution_time"`
	ErrorMessage  string   `json:"error_message"`
}

// Accepted reports whether the case was accepted.
func (c CaseRecord) Accepted() bool {
	return c.ErrorMessage == "" && c.Score > 0
}

// MaxExecution returns the maximum execution time as a duration.
func (r *RunRecord) MaxExecution() time.Duration {
	return time.Duration(math.Round(r.MaxExecutionTime * float64(time.Second)))
}
