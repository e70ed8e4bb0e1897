package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/seedrun/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// HCLLoader is the HCL implementation of the Loader interface.
type HCLLoader struct {
	environ func() []string
}

// NewHCLLoader creates a new HCL settings loader.
func NewHCLLoader() *HCLLoader {
	return &HCLLoader{environ: os.Environ}
}

// Load parses and decodes the HCL file at path.
func (l *HCLLoader) Load(ctx context.Context, path string) (*Settings, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var raw rawFile
	diags = gohcl.DecodeBody(file.Body, l.evalContext(), &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	return translate(ctx, path, &raw)
}

// evalContext exposes the environment as `env.NAME` plus a few string helpers.
func (l *HCLLoader) evalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		env[name] = cty.StringVal(value)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(env),
		},
		Functions: map[string]function.Function{
			"upper":  stdlib.UpperFunc,
			"lower":  stdlib.LowerFunc,
			"format": stdlib.FormatFunc,
			"join":   stdlib.JoinFunc,
			"concat": stdlib.ConcatFunc,
		},
	}
}
