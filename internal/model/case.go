package model

import "time"

// Capture holds everything one executed step produced.
type Capture struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Outcome classifies a finished case. A zero Score is never Accepted.
type Outcome struct {
	Accepted bool
	Score    uint64
	// Reason explains a rejection; empty for accepted cases.
	Reason string
}

// Accepted builds an accepted outcome for a positive score.
func Accepted(score uint64) Outcome {
	return Outcome{Accepted: true, Score: score}
}

// Rejected builds a rejected outcome carrying its cause.
func Rejected(reason string) Outcome {
	return Outcome{Reason: reason}
}

// CaseResult is the product of running every test step for one seed.
type CaseResult struct {
	Seed    uint64
	Outcome Outcome
	// Elapsed is summed over the steps flagged as measured.
	Elapsed  time.Duration
	Captures []Capture
}
