package config

import "github.com/specialistvlad/seedrun/internal/model"

// DefaultOutDir is where results go when out_dir is not set.
const DefaultOutDir = "seedrun"

// Settings is the validated, format-agnostic configuration of a problem.
type Settings struct {
	Problem Problem
	Test    Test
}

// Problem describes how cases are judged.
type Problem struct {
	Name         string
	Objective    model.Objective
	ScorePattern string
}

// Test describes what a run executes.
type Test struct {
	Seeds model.SeedRange
	// Threads is the worker count; 0 means one per physical core.
	Threads      int
	OutDir       string
	CompileSteps []model.StepSpec
	TestSteps    []model.StepSpec
}
