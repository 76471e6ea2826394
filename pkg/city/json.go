package city

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// gridJSON is the wire format for grids: explicit dimensions plus the
// row-major cell matrix.
type gridJSON struct {
	Rows  int      `json:"rows"`
	Cols  int      `json:"cols"`
	Cells [][]Cell `json:"cells"`
}

// MarshalGrid converts a grid to indented JSON bytes.
func MarshalGrid(g Grid) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGridTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGrid writes a grid as JSON to an io.Writer.
func WriteGrid(g Grid, w io.Writer) error {
	return writeGridTo(g, w)
}

// WriteGridFile writes a grid to a JSON file with 0644 permissions.
func WriteGridFile(g Grid, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeGridTo(g, f)
}

// ReadGrid decodes a JSON grid from an io.Reader, validating that the cell
// matrix matches the declared dimensions and is rectangular.
func ReadGrid(r io.Reader) (Grid, error) {
	var data gridJSON
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return Grid{}, fmt.Errorf("decode: %w", err)
	}
	if len(data.Cells) != data.Rows {
		return Grid{}, fmt.Errorf("grid declares %d rows but has %d", data.Rows, len(data.Cells))
	}
	for r, row := range data.Cells {
		if len(row) != data.Cols {
			return Grid{}, fmt.Errorf("row %d has %d cells, want %d", r, len(row), data.Cols)
		}
	}
	return newGrid(data.Cells), nil
}

// ReadGridFile reads a JSON file and returns the decoded grid.
func ReadGridFile(path string) (Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return Grid{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGrid(f)
}

func writeGridTo(g Grid, w io.Writer) error {
	out := gridJSON{
		Rows:  g.Rows(),
		Cols:  g.Cols(),
		Cells: g.Cells(),
	}
	if out.Cells == nil {
		out.Cells = [][]Cell{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
