package score

import (
	"testing"

	"github.com/specialistvlad/seedrun/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultPattern = `^\s*Score\s*=\s*(?P<score>-?\d+)\s*$`

func capture(stdout, stderr string) model.Capture {
	return model.Capture{Stdout: []byte(stdout), Stderr: []byte(stderr)}
}

func TestNewExtractor_RequiresGroup(t *testing.T) {
	_, err := NewExtractor(`Score = \d+`)
	require.Error(t, err)

	_, err = NewExtractor(`Score = (\d+`)
	require.Error(t, err)
}

func TestExtract(t *testing.T) {
	ex, err := NewExtractor(defaultPattern)
	require.NoError(t, err)

	testCases := []struct {
		name     string
		captures []model.Capture
		expected model.Outcome
	}{
		{
			name:     "single stdout match",
			captures: []model.Capture{capture("Score = 1234\n", "")},
			expected: model.Accepted(1234),
		},
		{
			name:     "later step overrides earlier step",
			captures: []model.Capture{capture("Score = 10\n", ""), capture("Score = 20\n", "")},
			expected: model.Accepted(20),
		},
		{
			name:     "earlier step kept when later step has no match",
			captures: []model.Capture{capture("Score = 10\n", ""), capture("done\n", "")},
			expected: model.Accepted(10),
		},
		{
			name:     "stderr overrides stdout within a step",
			captures: []model.Capture{capture("Score = 10\n", "Score = 30\n")},
			expected: model.Accepted(30),
		},
		{
			name:     "later step stdout overrides earlier step stderr",
			captures: []model.Capture{capture("", "Score = 30\n"), capture("Score = 40\n", "")},
			expected: model.Accepted(40),
		},
		{
			name:     "last matching line within a stream wins",
			captures: []model.Capture{capture("Score = 1\nnoise\nScore = 2\n", "")},
			expected: model.Accepted(2),
		},
		{
			name:     "CRLF line endings",
			captures: []model.Capture{capture("Score = 77\r\n", "")},
			expected: model.Accepted(77),
		},
		{
			name:     "zero is rejected",
			captures: []model.Capture{capture("Score = 0\n", "")},
			expected: model.Rejected("wrong answer: score 0"),
		},
		{
			name:     "negative is rejected",
			captures: []model.Capture{capture("Score = -5\n", "")},
			expected: model.Rejected("wrong answer: score -5"),
		},
		{
			name:     "no match",
			captures: []model.Capture{capture("invalid_output\n", "")},
			expected: model.Rejected("score not found"),
		},
		{
			name:     "no match mentions failing step",
			captures: []model.Capture{{Stdout: []byte("crash\n"), ExitCode: 139}},
			expected: model.Rejected("score not found (step 1 exited with status 139)"),
		},
		{
			name:     "unparseable later match overrides earlier valid score",
			captures: []model.Capture{capture("Score = 5\n", ""), capture("Score = 99999999999999999999\n", "")},
			expected: model.Rejected(`invalid score "99999999999999999999"`),
		},
		{
			name:     "valid line after an unparseable one in the same stream wins",
			captures: []model.Capture{capture("Score = 99999999999999999999\nScore = 8\n", "")},
			expected: model.Accepted(8),
		},
		{
			name:     "no captures at all",
			captures: nil,
			expected: model.Rejected("score not found"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ex.Extract(tc.captures))
		})
	}
}

func TestExtract_NonZeroExitWithValidScoreIsAccepted(t *testing.T) {
	ex, err := NewExtractor(defaultPattern)
	require.NoError(t, err)

	got := ex.Extract([]model.Capture{{Stdout: []byte("Score = 9\n"), ExitCode: 1}})

	assert.Equal(t, model.Accepted(9), got)
}

func TestExtract_UnnamedGroup(t *testing.T) {
	ex, err := NewExtractor(`^score: (\d+)$`)
	require.NoError(t, err)

	assert.Equal(t, model.Accepted(55), ex.Extract([]model.Capture{capture("score: 55\n", "")}))
}

func TestExtract_NamedGroupPreferredOverFirst(t *testing.T) {
	ex, err := NewExtractor(`^(case \d+): (?P<score>\d+)$`)
	require.NoError(t, err)

	assert.Equal(t, model.Accepted(900), ex.Extract([]model.Capture{capture("case 3: 900\n", "")}))
}

func TestExtract_IsDeterministic(t *testing.T) {
	ex, err := NewExtractor(defaultPattern)
	require.NoError(t, err)
	captures := []model.Capture{capture("Score = 3\n", "Score = 4\n"), capture("x\n", "Score = 5\n")}

	first := ex.Extract(captures)
	for range 10 {
		assert.Equal(t, first, ex.Extract(captures))
	}
}

func TestExtract_NonIntegerMatchIsInvalid(t *testing.T) {
	ex, err := NewExtractor(`^Score = (?P<score>[0-9.]*)$`)
	require.NoError(t, err)

	assert.Equal(t, model.Rejected(`invalid score "1.5"`), ex.Extract([]model.Capture{capture("Score = 3\n", ""), capture("Score = 1.5\n", "")}))
	assert.Equal(t, model.Rejected(`invalid score ""`), ex.Extract([]model.Capture{capture("Score = \n", "")}))
}
