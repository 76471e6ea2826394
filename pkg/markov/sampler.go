package markov

import (
	"fmt"
	"math"
)

// Sample draws one state from the ordered state sequence according to the
// aligned probability vector, using [DefaultTolerance] for validation.
// See [SampleWithTolerance] for the selection semantics.
func Sample[S comparable](states []S, probs []float64, src RandomSource) (S, error) {
	return SampleWithTolerance(states, probs, src, DefaultTolerance)
}

// SampleWithTolerance draws one state via inverse transform sampling: it
// builds the cumulative sum of probs, draws u from src, and returns the state
// at the smallest index i with u < cum[i] (half-open interval semantics).
// If floating-point drift leaves u at or beyond the final cumulative value,
// the last state is returned rather than failing.
//
// The vector must be aligned to states, contain no negative entries, and sum
// to 1 within tol; violations return a *InvalidDistributionError. Identical
// draw sequences from src yield identical results.
func SampleWithTolerance[S comparable](states []S, probs []float64, src RandomSource, tol float64) (S, error) {
	var zero S
	if len(states) == 0 {
		return zero, &InvalidDistributionError{Detail: "no states to sample from"}
	}
	if len(probs) != len(states) {
		return zero, &InvalidDistributionError{
			Detail: fmt.Sprintf("%d probabilities for %d states", len(probs), len(states)),
		}
	}

	sum := 0.0
	for i, p := range probs {
		if p < 0 {
			return zero, &InvalidDistributionError{
				Detail: fmt.Sprintf("negative probability %g at index %d", p, i),
			}
		}
		sum += p
	}
	if dev := math.Abs(sum - 1); dev > tol {
		return zero, &InvalidDistributionError{
			Detail: fmt.Sprintf("probabilities sum to %g (deviation %g exceeds tolerance %g)", sum, dev, tol),
		}
	}

	u := src.Float64()
	cum := 0.0
	for i, p := range probs {
		cum += p
		if u < cum {
			return states[i], nil
		}
	}
	// u >= cum[last] can occur through accumulated rounding; clamp to the
	// last state instead of failing.
	return states[len(states)-1], nil
}
