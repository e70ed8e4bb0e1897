// Package score turns captured step output into a case outcome and derives
// relative scores against the best known results.
package score

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/specialistvlad/seedrun/internal/model"
)

// GroupName is the named capture group that holds the score, when present.
const GroupName = "score"

// Extractor finds the score line in a case's captures. It holds only the
// compiled pattern and is safe for concurrent use.
type Extractor struct {
	pattern *regexp.Regexp
	group   int
}

// NewExtractor compiles pattern. The value is read from the group named
// "score" if there is one, otherwise from the first capture group.
func NewExtractor(pattern string) (*Extractor, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid score pattern: %w", err)
	}
	if re.NumSubexp() == 0 {
		return nil, errors.New("invalid score pattern: it must contain a capture group, e.g. (?P<score>\\d+)")
	}
	group := re.SubexpIndex(GroupName)
	if group < 0 {
		group = 1
	}
	return &Extractor{pattern: re, group: group}, nil
}

// Pattern returns the source of the compiled pattern.
func (e *Extractor) Pattern() string {
	return e.pattern.String()
}

// Extract classifies a case from its ordered per-step captures.
//
// The last matching line wins, in step order; within a step a stderr match
// takes precedence over a stdout match. No match, a value <= 0, or a winning
// line whose value is not an integer rejects.
func (e *Extractor) Extract(captures []model.Capture) model.Outcome {
	var (
		last  match
		found bool
	)
	for _, c := range captures {
		if m, ok := e.lastMatch(c.Stderr); ok {
			last, found = m, true
		} else if m, ok := e.lastMatch(c.Stdout); ok {
			last, found = m, true
		}
	}

	if !found {
		return model.Rejected(notFoundReason(captures))
	}
	if !last.valid {
		return model.Rejected(fmt.Sprintf("invalid score %q", last.raw))
	}
	if last.value <= 0 {
		return model.Rejected(fmt.Sprintf("wrong answer: score %d", last.value))
	}
	return model.Accepted(uint64(last.value))
}

// match is one line accepted by the pattern. valid is false when the
// captured text does not parse as a 64-bit integer.
type match struct {
	raw   string
	value int64
	valid bool
}

func (e *Extractor) lastMatch(data []byte) (match, bool) {
	var (
		last  match
		found bool
	)
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		m := e.pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		raw := strings.TrimSpace(m[e.group])
		v, err := strconv.ParseInt(raw, 10, 64)
		last, found = match{raw: raw, value: v, valid: err == nil}, true
	}
	return last, found
}

func notFoundReason(captures []model.Capture) string {
	for i, c := range captures {
		if c.ExitCode != 0 {
			return fmt.Sprintf("score not found (step %d exited with status %d)", i+1, c.ExitCode)
		}
	}
	return "score not found"
}
