package history

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/specialistvlad/seedrun/internal/model"
	"github.com/specialistvlad/seedrun/internal/report"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	bestStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#98C379"))
)

// Render writes entries as a markdown-style table. The best mean score under
// obj and the best mean relative score are highlighted.
func Render(w io.Writer, obj model.Objective, entries []Entry) error {
	bestScore, bestRel := -1, -1
	for i, e := range entries {
		if e.Record.AcceptedCount > 0 {
			if bestScore < 0 || betterMean(obj, e.Record.MeanScore, entries[bestScore].Record.MeanScore) {
				bestScore = i
			}
		}
		if e.RelativeOK && (bestRel < 0 || e.MeanRelative > entries[bestRel].MeanRelative) {
			bestRel = i
		}
	}

	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rec := e.Record

		avgScore := report.FormatFloat(rec.MeanScore, 2)
		if i == bestScore {
			avgScore = bestStyle.Render(avgScore)
		}
		avgRel := report.FormatRelative(e.MeanRelative, e.RelativeOK)
		if i == bestRel {
			avgRel = bestStyle.Render(avgRel)
		}

		rows = append(rows, []string{
			rec.StartTime.Local().Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%d/%d", rec.AcceptedCount, rec.CaseCount),
			avgScore,
			avgRel,
			report.FormatInt(rec.MaxExecution().Milliseconds()) + " ms",
			rec.Tag,
			strings.ReplaceAll(rec.Comment, "\n", " "),
		})
	}

	t := table.New().
		Border(lipgloss.MarkdownBorder()).
		BorderTop(false).
		BorderBottom(false).
		Headers("Time", "AC/All", "Avg Score", "Avg Rel.", "Max Time", "Tag", "Comment").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func betterMean(obj model.Objective, candidate, best float64) bool {
	if obj == model.Minimize {
		return candidate < best
	}
	return candidate > best
}
