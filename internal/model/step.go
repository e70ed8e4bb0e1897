package model

// StepSpec describes one process invocation of a pipeline. Program, Args and
// every path field may contain the {SEED} and {SEED04} placeholders; they are
// resolved per case before the step runs. Empty path fields mean "not set".
type StepSpec struct {
	Program  string
	Args     []string
	Dir      string
	Stdin    string
	Stdout   string
	Stderr   string
	Measured bool
}
