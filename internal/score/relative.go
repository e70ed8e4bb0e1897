package score

import (
	"math"

	"github.com/specialistvlad/seedrun/internal/model"
)

// Relative normalises score to 100 against best. It is undefined (ok=false)
// when the best is unknown (zero) or the score itself is zero.
func Relative(obj model.Objective, score, best uint64) (float64, bool) {
	if best == 0 || score == 0 {
		return 0, false
	}
	if obj == model.Minimize {
		return 100 * float64(best) / float64(score), true
	}
	return 100 * float64(score) / float64(best), true
}

// Log10 returns log10(score) for a positive score.
func Log10(score uint64) float64 {
	return math.Log10(float64(score))
}

// RelativeMean accumulates relative scores. Rejected cases count as 0;
// accepted cases without a known best are left out. The mean stays undefined
// until at least one accepted case has a relative score.
type RelativeMean struct {
	sum      float64
	defined  int
	rejected int
}

// Add folds one case into the mean and returns the case's own relative score.
func (m *RelativeMean) Add(obj model.Objective, accepted bool, score, best uint64) (float64, bool) {
	if !accepted {
		m.rejected++
		return 0, true
	}
	rel, ok := Relative(obj, score, best)
	if ok {
		m.sum += rel
		m.defined++
	}
	return rel, ok
}

// Mean returns the mean, or ok=false when no accepted case had a relative score.
func (m *RelativeMean) Mean() (float64, bool) {
	if m.defined == 0 {
		return 0, false
	}
	return m.sum / float64(m.defined+m.rejected), true
}
