package model

import (
	"fmt"
	"strings"
)

// Objective is the direction in which an absolute score is better.
type Objective int

const (
	// Maximize means a larger score is better.
	Maximize Objective = iota
	// Minimize means a smaller score is better.
	Minimize
)

// ParseObjective accepts "max", "maximize", "min" and "minimize", case-insensitively.
func ParseObjective(s string) (Objective, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "max", "maximize":
		return Maximize, nil
	case "min", "minimize":
		return Minimize, nil
	}
	return 0, fmt.Errorf("invalid objective %q: must be 'max' or 'min'", s)
}

// String returns the canonical configuration spelling.
func (o Objective) String() string {
	if o == Minimize {
		return "min"
	}
	return "max"
}

// Better reports whether candidate strictly beats best under the objective.
func (o Objective) Better(candidate, best uint64) bool {
	if o == Minimize {
		return candidate < best
	}
	return candidate > best
}

// MarshalText implements encoding.TextMarshaler.
func (o Objective) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Objective) UnmarshalText(text []byte) error {
	parsed, err := ParseObjective(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
