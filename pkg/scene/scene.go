// Package scene feeds generated city grids to a Renderer.
//
// The renderer is an external collaborator (a 3D host, an exporter, a test
// recorder); this package only decides what gets placed where. [Build] clears
// the scene, lays a base plate, and places one building per grid cell with a
// positive height. Geometry, materials, and lighting are entirely the
// renderer's concern.
package scene

import (
	"fmt"

	"github.com/lcsmith2/markovcity/pkg/city"
)

// Position locates a building on the base plane. Units are renderer units;
// the grid's row index maps to Y and the column index to X.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Renderer is the narrow interface the scene builder drives. Implementations
// may talk to a 3D host, write an export format, or record calls for tests.
type Renderer interface {
	// ClearScene removes everything from the previous build.
	ClearScene() error
	// AddBase places a square base plate of the given edge length.
	AddBase(size float64, color city.Color) error
	// AddBuilding places one cylindrical building. Height is in discrete
	// floors; the renderer owns the floor-to-unit scale.
	AddBuilding(pos Position, radius float64, sides int, height city.Height, color city.Color) error
}

// Options configures scene building. Zero fields take defaults.
type Options struct {
	Spacing    float64    // center-to-center lot distance (default 2)
	Radius     float64    // building cylinder radius (default 0.8)
	Sides      int        // cylinder side count (default 16)
	BaseMargin float64    // base plate overhang beyond the outer lots (default 1)
	BaseColor  city.Color // base plate color (default asphalt gray)
}

var defaultOpts = Options{
	Spacing:    2.0,
	Radius:     0.8,
	Sides:      16,
	BaseMargin: 1.0,
	BaseColor:  city.Color{Name: "asphalt", R: 60, G: 60, B: 64},
}

func (o *Options) withDefaults() Options {
	out := defaultOpts
	if o == nil {
		return out
	}
	if o.Spacing > 0 {
		out.Spacing = o.Spacing
	}
	if o.Radius > 0 {
		out.Radius = o.Radius
	}
	if o.Sides > 0 {
		out.Sides = o.Sides
	}
	if o.BaseMargin > 0 {
		out.BaseMargin = o.BaseMargin
	}
	if o.BaseColor != (city.Color{}) {
		out.BaseColor = o.BaseColor
	}
	return out
}

// Build clears the scene, places the base plate, and places one building per
// cell with a positive height. Cells with non-positive heights are empty lots
// and are skipped. Renderer errors abort the build and propagate unchanged.
//
// An empty grid produces a cleared scene with no base and no buildings.
func Build(g city.Grid, r Renderer, opts *Options) error {
	o := opts.withDefaults()

	if err := r.ClearScene(); err != nil {
		return fmt.Errorf("clear scene: %w", err)
	}
	if g.Empty() {
		return nil
	}

	size := float64(max(g.Rows(), g.Cols()))*o.Spacing + 2*o.BaseMargin
	if err := r.AddBase(size, o.BaseColor); err != nil {
		return fmt.Errorf("add base: %w", err)
	}

	for row := range g.Rows() {
		for col := range g.Cols() {
			cell := g.At(row, col)
			if cell.Height.Empty() {
				continue
			}
			pos := Position{X: float64(col) * o.Spacing, Y: float64(row) * o.Spacing}
			if err := r.AddBuilding(pos, o.Radius, o.Sides, cell.Height, cell.Color); err != nil {
				return fmt.Errorf("add building at (%d,%d): %w", row, col, err)
			}
		}
	}
	return nil
}
