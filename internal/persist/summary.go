package persist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/seedrun/internal/model"
	"github.com/specialistvlad/seedrun/internal/report"
)

// SummaryFile is the append-only run log inside the output directory.
const SummaryFile = "summary.md"

const summaryHeader = "| Time | Cases | AC | Total Score | Avg. Score | Total log10 | Avg. log10 | Comment |\n" +
	"|------|------:|---:|------------:|-----------:|------------:|-----------:|---------|\n"

// AppendSummary adds one row for rec to summary.md, creating the file with a
// header first if needed.
func AppendSummary(outDir string, rec *model.RunRecord) error {
	path := filepath.Join(outDir, SummaryFile)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	var b strings.Builder
	if info.Size() == 0 {
		b.WriteString(summaryHeader)
	}
	b.WriteString(SummaryRow(rec))

	if _, err := f.WriteString(b.String()); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// SummaryRow renders the markdown row for one run.
func SummaryRow(rec *model.RunRecord) string {
	comment := rec.Comment
	if rec.Tag != "" {
		comment = strings.TrimSpace(fmt.Sprintf("(%s) %s", rec.Tag, comment))
	}
	comment = strings.NewReplacer("|", `\|`, "\n", " ").Replace(comment)

	return fmt.Sprintf("| %s | %d | %d | %s | %s | %s | %s | %s |\n",
		rec.StartTime.Local().Format("2006-01-02 15:04:05"),
		rec.CaseCount,
		rec.AcceptedCount,
		report.FormatInt(rec.TotalScore),
		report.FormatFloat(rec.MeanScore, 2),
		report.FormatFloat(rec.TotalScoreLog10, 3),
		report.FormatFloat(rec.MeanScoreLog10, 3),
		comment,
	)
}
