package config

import (
	"fmt"

	"github.com/specialistvlad/seedrun/internal/score"
)

// ValidationError reports a settings value that cannot be used.
type ValidationError struct {
	Path   string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid settings in %s: %s: %s", e.Path, e.Field, e.Reason)
}

func validate(path string, s *Settings) error {
	invalid := func(field, reason string) error {
		return &ValidationError{Path: path, Field: field, Reason: reason}
	}

	if s.Problem.Name == "" {
		return invalid("problem.name", "must not be empty")
	}
	if _, err := score.NewExtractor(s.Problem.ScorePattern); err != nil {
		return invalid("problem.score_regex", err.Error())
	}
	if err := s.Test.Seeds.Validate(); err != nil {
		return invalid("test.start_seed", err.Error())
	}
	if s.Test.Threads < 0 {
		return invalid("test.threads", "must not be negative")
	}
	if len(s.Test.TestSteps) == 0 {
		return invalid("test.test_step", "at least one test step is required")
	}
	for i, st := range s.Test.CompileSteps {
		if st.Program == "" {
			return invalid(fmt.Sprintf("test.compile_step[%d].program", i), "must not be empty")
		}
	}
	for i, st := range s.Test.TestSteps {
		if st.Program == "" {
			return invalid(fmt.Sprintf("test.test_step[%d].program", i), "must not be empty")
		}
	}
	return nil
}
