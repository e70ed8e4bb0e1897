package config

import (
	"context"

	"github.com/specialistvlad/seedrun/internal/ctxlog"
	"github.com/specialistvlad/seedrun/internal/model"
)

// translate converts the raw schema into Settings and validates the result.
func translate(ctx context.Context, path string, raw *rawFile) (*Settings, error) {
	logger := ctxlog.FromContext(ctx)

	if raw.Problem == nil {
		return nil, &ValidationError{Path: path, Field: "problem", Reason: "block is required"}
	}
	if raw.Test == nil {
		return nil, &ValidationError{Path: path, Field: "test", Reason: "block is required"}
	}

	obj, err := model.ParseObjective(raw.Problem.Objective)
	if err != nil {
		return nil, &ValidationError{Path: path, Field: "problem.objective", Reason: err.Error()}
	}

	s := &Settings{
		Problem: Problem{
			Name:         raw.Problem.Name,
			Objective:    obj,
			ScorePattern: raw.Problem.ScoreRegex,
		},
		Test: Test{
			Seeds:        model.SeedRange{Start: raw.Test.StartSeed, End: raw.Test.EndSeed},
			Threads:      raw.Test.Threads,
			OutDir:       raw.Test.OutDir,
			CompileSteps: translateSteps(raw.Test.CompileSteps),
			TestSteps:    translateSteps(raw.Test.TestSteps),
		},
	}
	if s.Test.OutDir == "" {
		s.Test.OutDir = DefaultOutDir
	}

	if err := validate(path, s); err != nil {
		return nil, err
	}

	logger.Debug("Settings translated.",
		"problem", s.Problem.Name,
		"objective", s.Problem.Objective,
		"seeds", s.Test.Seeds.Len(),
		"compile_steps", len(s.Test.CompileSteps),
		"test_steps", len(s.Test.TestSteps),
	)
	return s, nil
}

func translateSteps(raw []*rawStep) []model.StepSpec {
	steps := make([]model.StepSpec, 0, len(raw))
	for _, r := range raw {
		measured := true
		if r.MeasureTime != nil {
			measured = *r.MeasureTime
		}
		steps = append(steps, model.StepSpec{
			Program:  r.Program,
			Args:     r.Args,
			Dir:      r.Dir,
			Stdin:    r.Stdin,
			Stdout:   r.Stdout,
			Stderr:   r.Stderr,
			Measured: measured,
		})
	}
	return steps
}
