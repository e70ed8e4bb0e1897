package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/specialistvlad/seedrun/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func views() []CaseView {
	results := []model.CaseResult{
		{Seed: 0, Outcome: model.Accepted(1000), Elapsed: 1500 * time.Millisecond},
		{Seed: 1, Outcome: model.Accepted(500), Elapsed: 12250 * time.Millisecond},
		{Seed: 2, Outcome: model.Rejected("error"), Elapsed: time.Millisecond},
	}
	best := map[uint64]uint64{0: 100, 1: 100, 2: 100}

	stats := &Stats{Total: len(results)}
	var out []CaseView
	for _, r := range results {
		rel, ok := stats.Add(model.Maximize, r, best[r.Seed])
		snapshot := *stats
		out = append(out, CaseView{
			Progress: stats.Completed, Total: len(results), Result: r,
			Relative: rel, RelativeOK: ok, Running: &snapshot,
		})
	}
	return out
}

func TestJSONLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewJSONLines(&buf)

	for _, v := range views() {
		require.NoError(t, p.PrintCase(v))
	}
	require.NoError(t, p.PrintSummary(&Stats{}))

	expected := `{"progress":1,"seed":0,"score":1000,"relative_score":1000,"execution_time":1.5,"error_message":""}
{"progress":2,"seed":1,"score":500,"relative_score":500,"execution_time":12.25,"error_message":""}
{"progress":3,"seed":2,"score":0,"relative_score":0,"execution_time":0.001,"error_message":"error"}
`
	assert.Equal(t, expected, buf.String())
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	p := NewConsole(&buf, 3)

	vs := views()
	for _, v := range vs {
		require.NoError(t, p.PrintCase(v))
	}
	require.NoError(t, p.PrintSummary(vs[len(vs)-1].Running))

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.Contains(t, lines[0], "Progress")
	assert.Contains(t, lines[1], "Relative")
	assert.True(t, strings.HasPrefix(lines[2], "|---"))

	assert.Contains(t, lines[3], "| case 1 / 3 |")
	assert.Contains(t, lines[3], "| 0000 |")
	assert.Contains(t, lines[3], "1,000")
	assert.Contains(t, lines[3], "1000.000")
	assert.Contains(t, lines[3], "1,500 ms")

	assert.Contains(t, lines[4], "12,250 ms")
	assert.Contains(t, lines[5], "| case 3 / 3 |")
	assert.Contains(t, lines[6], "error")

	assert.Contains(t, out, "Average Score          : 750")
	assert.Contains(t, out, "Average Score (log10)  : 2.849")
	assert.Contains(t, out, "Average Relative Score : 500.000")
	assert.Contains(t, out, "Accepted               : 2 / 3")
	assert.Contains(t, out, "Max Execution Time     : 12,250 ms")
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "11,000", FormatInt(uint64(11000)))
	assert.Equal(t, "5,500.00", FormatFloat(5500, 2))
	assert.Equal(t, "-", FormatRelative(0, false))
	assert.Equal(t, "75.000", FormatRelative(75, true))
}
