package city

import "errors"

// ErrNegativeDimensions is returned by [Generator.Generate] when rows or
// cols is negative. Zero dimensions are valid and produce an empty grid.
var ErrNegativeDimensions = errors.New("grid dimensions must be non-negative")

// Grid is an immutable R×C row-major grid of generated cells.
// The zero value is an empty grid.
type Grid struct {
	cells [][]Cell
}

// newGrid wraps the cell matrix without copying; callers hand over ownership.
func newGrid(cells [][]Cell) Grid { return Grid{cells: cells} }

// Rows returns the number of rows.
func (g Grid) Rows() int { return len(g.cells) }

// Cols returns the number of columns, 0 for an empty grid.
func (g Grid) Cols() int {
	if len(g.cells) == 0 {
		return 0
	}
	return len(g.cells[0])
}

// At returns the cell at row r, column c. Indices must be in range.
func (g Grid) At(r, c int) Cell { return g.cells[r][c] }

// Cells returns a deep copy of the cell matrix in row-major order.
func (g Grid) Cells() [][]Cell {
	out := make([][]Cell, len(g.cells))
	for r, row := range g.cells {
		out[r] = make([]Cell, len(row))
		copy(out[r], row)
	}
	return out
}

// Empty reports whether the grid contains no cells.
func (g Grid) Empty() bool { return len(g.cells) == 0 }

// CellCount returns rows × cols.
func (g Grid) CellCount() int { return g.Rows() * g.Cols() }
