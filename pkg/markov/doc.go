// Package markov provides validated first-order Markov chains with weighted
// random sampling.
//
// # Overview
//
// Markovcity derives correlated visual attributes for a city grid by walking
// Markov chains in lock-step across the grid. This package supplies the two
// building blocks that walk needs: a validated transition model and a
// weighted sampler driven by an injectable randomness source.
//
// The state type is a type parameter constrained to comparable, so chains can
// range over any equality-comparable domain value (integer height levels,
// RGB color triples, strings). The engine never interprets states beyond
// identity.
//
// # Basic Usage
//
// Build a model with [NewModel], then draw successors with [Sample]:
//
//	m, err := markov.NewModel(
//	    []int{0, 1},
//	    map[int]map[int]float64{
//	        0: {0: 0.7, 1: 0.3},
//	        1: {0: 0.4, 1: 0.6},
//	    },
//	    nil, // no explicit prior: fallback policy applies
//	    nil, // default options
//	)
//	src := markov.NewSource(42)
//	dist, _ := m.Next(0)
//	next, _ := markov.Sample(m.States(), dist, src)
//
// # Validation
//
// [NewModel] enforces a closed, square state set: every state owns exactly
// one transition row, every row ranges over exactly the declared states, and
// every row (and the prior, if supplied) sums to 1 within a configurable
// tolerance. Construction is all-or-nothing; violations surface as
// [*ValidationError] naming the offending row and its deviation.
//
// # Determinism
//
// All randomness flows through the [RandomSource] interface. A seeded source
// from [NewSource] replays identically, so chain walks are reproducible under
// a fixed seed and independent runs never share hidden generator state.
//
// # Concurrency
//
// Models are immutable after construction and safe for concurrent reads.
// A RandomSource is owned by a single walk at a time.
package markov
