package config

// rawFile is the on-disk schema shared by the HCL and YAML loaders.
type rawFile struct {
	Problem *rawProblem `hcl:"problem,block" yaml:"problem"`
	Test    *rawTest    `hcl:"test,block" yaml:"test"`
}

type rawProblem struct {
	Name       string `hcl:"name" yaml:"name"`
	Objective  string `hcl:"objective" yaml:"objective"`
	ScoreRegex string `hcl:"score_regex" yaml:"score_regex"`
}

type rawTest struct {
	StartSeed    uint64     `hcl:"start_seed" yaml:"start_seed"`
	EndSeed      uint64     `hcl:"end_seed" yaml:"end_seed"`
	Threads      int        `hcl:"threads,optional" yaml:"threads"`
	OutDir       string     `hcl:"out_dir,optional" yaml:"out_dir"`
	CompileSteps []*rawStep `hcl:"compile_step,block" yaml:"compile_steps"`
	TestSteps    []*rawStep `hcl:"test_step,block" yaml:"test_steps"`
}

type rawStep struct {
	Program     string   `hcl:"program" yaml:"program"`
	Args        []string `hcl:"args,optional" yaml:"args"`
	Dir         string   `hcl:"dir,optional" yaml:"dir"`
	Stdin       string   `hcl:"stdin,optional" yaml:"stdin"`
	Stdout      string   `hcl:"stdout,optional" yaml:"stdout"`
	Stderr      string   `hcl:"stderr,optional" yaml:"stderr"`
	MeasureTime *bool    `hcl:"measure_time,optional" yaml:"measure_time"`
}
