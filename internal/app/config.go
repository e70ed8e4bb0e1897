package app

import (
	"errors"
	"fmt"
)

// Command selects what an App does.
type Command string

const (
	// CommandRun executes every case and records the run.
	CommandRun Command = "run"
	// CommandList shows previous runs.
	CommandList Command = "list"
)

// DefaultListLimit is how many runs list shows without -n or -a.
const DefaultListLimit = 10

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Command     Command
	SettingFile string

	LogFormat  string
	LogLevel   string
	StatusAddr string

	Run  RunOptions
	List ListOptions
}

// RunOptions are the switches of a run.
type RunOptions struct {
	Comment      string
	Tag          bool
	JSON         bool
	Shuffle      bool
	Freeze       bool
	NoResultFile bool
	NoCompile    bool
}

// ListOptions bound how many runs are listed.
type ListOptions struct {
	Limit int
	All   bool
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.SettingFile == "" {
		return nil, errors.New("SettingFile is a required configuration field and cannot be empty")
	}
	switch cfg.Command {
	case CommandRun, CommandList:
	default:
		return nil, fmt.Errorf("unknown command %q", cfg.Command)
	}
	if cfg.List.Limit < 0 {
		return nil, errors.New("list limit must not be negative")
	}
	if cfg.List.Limit == 0 {
		cfg.List.Limit = DefaultListLimit
	}
	return &cfg, nil
}
