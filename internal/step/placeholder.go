package step

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/specialistvlad/seedrun/internal/model"
)

const (
	// SeedPlaceholder expands to the decimal seed.
	SeedPlaceholder = "{SEED}"
	// Seed04Placeholder expands to the seed zero-padded to four digits.
	Seed04Placeholder = "{SEED04}"
)

func seedReplacer(seed uint64) *strings.Replacer {
	// {SEED04} first: the replacer compares in argument order at each position.
	return strings.NewReplacer(
		Seed04Placeholder, fmt.Sprintf("%04d", seed),
		SeedPlaceholder, strconv.FormatUint(seed, 10),
	)
}

// Expand substitutes the seed placeholders in s.
func Expand(s string, seed uint64) string {
	return seedReplacer(seed).Replace(s)
}

// Resolve returns a copy of spec with every placeholder-bearing field resolved.
func Resolve(spec model.StepSpec, seed uint64) model.StepSpec {
	r := seedReplacer(seed)
	resolved := spec
	resolved.Program = r.Replace(spec.Program)
	resolved.Dir = r.Replace(spec.Dir)
	resolved.Stdin = r.Replace(spec.Stdin)
	resolved.Stdout = r.Replace(spec.Stdout)
	resolved.Stderr = r.Replace(spec.Stderr)
	if spec.Args != nil {
		resolved.Args = make([]string, len(spec.Args))
		for i, arg := range spec.Args {
			resolved.Args[i] = r.Replace(arg)
		}
	}
	return resolved
}
