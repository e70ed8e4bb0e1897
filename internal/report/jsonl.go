package report

import (
	"encoding/json"
	"io"
)

// JSONRecord is one line of machine-readable output.
type JSONRecord struct {
	Progress      int      `json:"progress"`
	Seed          uint64   `json:"seed"`
	Score         uint64   `json:"score"`
	RelativeScore *float64 `json:"relative_score"`
	ExecutionTime float64  `json:"execution_time"`
	ErrorMessage  string   `json:"error_message"`
}

// JSONLines writes one JSON object per completed case and no summary.
type JSONLines struct {
	enc *json.Encoder
}

// NewJSONLines creates a line-delimited JSON printer.
func NewJSONLines(w io.Writer) *JSONLines {
	return &JSONLines{enc: json.NewEncoder(w)}
}

// PrintCase implements Printer.
func (j *JSONLines) PrintCase(v CaseView) error {
	rec := JSONRecord{
		Progress:      v.Progress,
		Seed:          v.Result.Seed,
		Score:         v.Result.Outcome.Score,
		ExecutionTime: v.Result.Elapsed.Seconds(),
		ErrorMessage:  v.Result.Outcome.Reason,
	}
	if v.RelativeOK {
		rel := v.Relative
		rec.RelativeScore = &rel
	}
	return j.enc.Encode(rec)
}

// PrintSummary implements Printer.
func (j *JSONLines) PrintSummary(*Stats) error {
	return nil
}
