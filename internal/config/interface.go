package config

import (
	"context"
	"path/filepath"
	"strings"
)

// DefaultPath is the settings file used when none is given.
const DefaultPath = "seedrun.hcl"

// Loader is the interface for a format-specific settings loader.
type Loader interface {
	// Load reads the file at path and returns validated Settings.
	Load(ctx context.Context, path string) (*Settings, error)
}

// LoaderFor picks the loader for path by its extension. Anything other than
// .yaml or .yml is treated as HCL.
func LoaderFor(path string) Loader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return NewYAMLLoader()
	default:
		return NewHCLLoader()
	}
}

// Load reads and validates the settings file at path.
func Load(ctx context.Context, path string) (*Settings, error) {
	return LoaderFor(path).Load(ctx, path)
}
