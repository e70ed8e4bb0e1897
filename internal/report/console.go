package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

var (
	rejectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5C07B"))
	goodStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#98C379"))
	warnStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E5C07B"))
)

// barWidth is the width of the progress bar column.
const barWidth = 10

// Console renders a live, append-only table followed by a summary block.
type Console struct {
	w          io.Writer
	total      int
	scoreWidth int
	bar        progress.Model
}

// NewConsole creates a console printer for a run of total cases.
func NewConsole(w io.Writer, total int) *Console {
	return &Console{
		w:          w,
		total:      total,
		scoreWidth: 7,
		bar:        progress.New(progress.WithWidth(barWidth), progress.WithoutPercentage(), progress.WithSolidFill("#61AFEF")),
	}
}

// PrintCase implements Printer.
func (c *Console) PrintCase(v CaseView) error {
	if v.Progress == 1 {
		if err := c.printHeader(); err != nil {
			return err
		}
	}

	digits := len(strconv.Itoa(c.total))
	scoreText := FormatInt(v.Result.Outcome.Score)
	c.scoreWidth = max(c.scoreWidth, len(scoreText))
	meanRel, meanOK := v.Running.MeanRelative()

	row := fmt.Sprintf("| case %*d / %d | %s | %04d | %*s | %8s | %*s | %8s | %9s |",
		digits, v.Progress, c.total,
		c.bar.ViewAs(float64(v.Progress)/float64(max(c.total, 1))),
		v.Result.Seed,
		c.scoreWidth, scoreText,
		FormatRelative(v.Relative, v.RelativeOK),
		c.scoreWidth, FormatInt(uint64(v.Running.MeanScore()+0.5)),
		FormatRelative(meanRel, meanOK),
		FormatInt(v.Result.Elapsed.Milliseconds())+" ms",
	)

	if v.Result.Outcome.Accepted {
		_, err := fmt.Fprintln(c.w, row)
		return err
	}
	_, err := fmt.Fprintf(c.w, "%s\n%s\n", rejectedStyle.Render(row), rejectedStyle.Render(v.Result.Outcome.Reason))
	return err
}

func (c *Console) printHeader() error {
	digits := len(strconv.Itoa(c.total))
	progressWidth := digits*2 + 8
	scoreCol := c.scoreWidth + 11

	lines := []string{
		fmt.Sprintf("| %-*s | %-*s | %4s | %-*s | %-*s | %9s |",
			progressWidth, "Progress", barWidth, "", "Seed", scoreCol, "Case Score", scoreCol, "Average Score", "Exec."),
		fmt.Sprintf("| %-*s | %-*s | %4s | %*s | %8s | %*s | %8s | %9s |",
			progressWidth, "", barWidth, "", "", c.scoreWidth, "Score", "Relative", c.scoreWidth, "Score", "Relative", "Time"),
		"|" + strings.Join([]string{
			strings.Repeat("-", progressWidth+2),
			strings.Repeat("-", barWidth+2),
			strings.Repeat("-", 6),
			strings.Repeat("-", c.scoreWidth+2),
			strings.Repeat("-", 10),
			strings.Repeat("-", c.scoreWidth+2),
			strings.Repeat("-", 10),
			strings.Repeat("-", 11),
		}, "|") + "|",
	}
	_, err := fmt.Fprintln(c.w, strings.Join(lines, "\n"))
	return err
}

// PrintSummary implements Printer.
func (c *Console) PrintSummary(s *Stats) error {
	meanRel, ok := s.MeanRelative()

	accepted := fmt.Sprintf("%d / %d", s.Accepted, s.Completed)
	if s.AllAccepted() {
		accepted = goodStyle.Render(accepted)
	} else {
		accepted = warnStyle.Render(accepted)
	}

	lines := []string{
		"Average Score          : " + FormatInt(uint64(s.MeanScore()+0.5)),
		"Average Score (log10)  : " + fmt.Sprintf("%.3f", s.MeanLog10()),
		"Average Relative Score : " + FormatRelative(meanRel, ok),
		"Accepted               : " + accepted,
		"Max Execution Time     : " + FormatInt(s.MaxElapsed.Milliseconds()) + " ms",
	}
	if s.Completed < s.Total {
		lines = append(lines, warnStyle.Render(fmt.Sprintf("Interrupted            : %d of %d cases not run", s.Total-s.Completed, s.Total)))
	}
	_, err := fmt.Fprintln(c.w, strings.Join(lines, "\n"))
	return err
}
