package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/seedrun/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// YAMLLoader is the YAML implementation of the Loader interface.
type YAMLLoader struct{}

// NewYAMLLoader creates a new YAML settings loader.
func NewYAMLLoader() *YAMLLoader {
	return &YAMLLoader{}
}

// Load decodes the YAML file at path. Unknown keys are rejected.
func (l *YAMLLoader) Load(ctx context.Context, path string) (*Settings, error) {
	ctxlog.FromContext(ctx).Debug("YAML loader started.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML file %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var raw rawFile
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
	}

	return translate(ctx, path, &raw)
}
