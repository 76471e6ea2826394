// Package city derives a grid of correlated building attributes by walking
// two Markov chains in lock-step across a row-major traversal.
//
// # Overview
//
// Each cell of the city grid carries an attribute pair: a discrete building
// height and a named color. A [Generator] holds one height chain and one
// color chain (both [markov.Model] instances) and threads each chain's
// current state from cell to cell across the entire traversal, so the last
// cell of one row feeds the first cell of the next. That continuity is what
// makes neighboring buildings correlate.
//
// # Basic Usage
//
//	gen := city.NewGenerator(heightModel, colorModel)
//	grid, err := gen.Generate(8, 8, markov.NewSource(42))
//
// The traversal is strictly sequential: every cell consumes exactly two
// draws from the random source, height first, then color, and each cell's
// distribution depends on the immediately preceding cell's outcome. The
// same source state therefore always yields the same grid.
//
// # Heights
//
// A non-positive height is a valid outcome meaning "empty lot" - the
// generator emits it like any other state and downstream scene building
// skips it. See [Height.Empty].
//
// # Serialization
//
// Grids marshal to a compact row-major JSON format via [MarshalGrid],
// [WriteGridFile], and friends.
package city
