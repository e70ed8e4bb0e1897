// Package config loads the problem settings from HCL or YAML into the
// format-agnostic Settings model and validates them.
//
// Both formats share one raw schema. The HCL loader evaluates expressions
// against an `env` object and a small set of string functions, so values
// such as `out_dir = "${env.HOME}/runs"` work; `{SEED}` and `{SEED04}` are not
// template syntax and pass through untouched for the step runner.
package config
