// Package model defines the format-agnostic types shared by every stage of a
// run: the problem Objective, the StepSpec pipeline descriptors, the SeedRange,
// per-case results and the persisted RunRecord.
//
// Nothing in this package performs I/O. Configuration loaders translate their
// own schema into these types and the engine consumes them read-only.
package model
