package model

import "fmt"

// SeedRange is the half-open interval [Start, End) of case identifiers.
type SeedRange struct {
	Start uint64
	End   uint64
}

// Validate rejects empty and inverted ranges.
func (r SeedRange) Validate() error {
	if r.Start >= r.End {
		return fmt.Errorf("seed range [%d, %d) is empty: start_seed must be less than end_seed (end_seed is exclusive)", r.Start, r.End)
	}
	return nil
}

// Len returns the number of seeds in the range.
func (r SeedRange) Len() int {
	if r.End <= r.Start {
		return 0
	}
	return int(r.End - r.Start)
}

// Seeds enumerates the range in ascending order.
func (r SeedRange) Seeds() []uint64 {
	seeds := make([]uint64, 0, r.Len())
	for s := r.Start; s < r.End; s++ {
		seeds = append(seeds, s)
	}
	return seeds
}
