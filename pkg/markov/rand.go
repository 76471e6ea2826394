package markov

import "math/rand/v2"

// RandomSource supplies uniform random values in the half-open interval [0,1).
// It is the only randomness API the package requires; implementations may be
// seeded for reproducible runs or backed by a process-wide generator.
//
// *math/rand/v2.Rand satisfies the interface directly.
type RandomSource interface {
	Float64() float64
}

// NewSource returns a deterministic PCG-backed source for the given seed.
// Two sources created with the same seed produce identical value sequences.
func NewSource(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}
