package city

import (
	"github.com/lcsmith2/markovcity/pkg/markov"
)

// Generator produces city grids from a height chain and a color chain.
// The two chains are independent: they share the traversal order and the
// random source, but each threads its own state.
//
// A Generator holds no mutable state between calls; the chain pointers live
// in local variables for the duration of one Generate call, so a single
// Generator may serve concurrent generations with distinct sources.
type Generator struct {
	heights *markov.Model[Height]
	colors  *markov.Model[Color]
}

// NewGenerator creates a generator from validated height and color models.
func NewGenerator(heights *markov.Model[Height], colors *markov.Model[Color]) *Generator {
	return &Generator{heights: heights, colors: colors}
}

// HeightModel returns the height chain.
func (g *Generator) HeightModel() *markov.Model[Height] { return g.heights }

// ColorModel returns the color chain.
func (g *Generator) ColorModel() *markov.Model[Color] { return g.colors }

// Generate walks both chains across a rows×cols grid in row-major order and
// returns the completed grid.
//
// The initial state of each chain is sampled from its prior (height chain
// first). Every cell then consumes exactly two draws from src, height first
// then color, each conditioned on the previous cell's outcome on the same
// chain. Chain state is never reset at row boundaries: the last cell of one
// row feeds the first cell of the next.
//
// If rows or cols is 0 the empty grid is returned and src is never queried.
// Negative dimensions return [ErrNegativeDimensions]. Validation and
// sampling errors from the models propagate unchanged; no partially filled
// grid is ever returned.
func (g *Generator) Generate(rows, cols int, src markov.RandomSource) (Grid, error) {
	if rows < 0 || cols < 0 {
		return Grid{}, ErrNegativeDimensions
	}
	if rows == 0 || cols == 0 {
		return Grid{}, nil
	}

	heightStates := g.heights.States()
	colorStates := g.colors.States()

	curHeight, err := markov.SampleWithTolerance(heightStates, g.heights.Prior(), src, g.heights.Tolerance())
	if err != nil {
		return Grid{}, err
	}
	curColor, err := markov.SampleWithTolerance(colorStates, g.colors.Prior(), src, g.colors.Tolerance())
	if err != nil {
		return Grid{}, err
	}

	cells := make([][]Cell, rows)
	for r := range rows {
		cells[r] = make([]Cell, cols)
		for c := range cols {
			heightDist, err := g.heights.Next(curHeight)
			if err != nil {
				return Grid{}, err
			}
			nextHeight, err := markov.SampleWithTolerance(heightStates, heightDist, src, g.heights.Tolerance())
			if err != nil {
				return Grid{}, err
			}

			colorDist, err := g.colors.Next(curColor)
			if err != nil {
				return Grid{}, err
			}
			nextColor, err := markov.SampleWithTolerance(colorStates, colorDist, src, g.colors.Tolerance())
			if err != nil {
				return Grid{}, err
			}

			cells[r][c] = Cell{Height: nextHeight, Color: nextColor}
			curHeight, curColor = nextHeight, nextColor
		}
	}

	return newGrid(cells), nil
}
