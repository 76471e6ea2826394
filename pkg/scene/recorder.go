package scene

import "github.com/lcsmith2/markovcity/pkg/city"

// BaseCall records one AddBase invocation.
type BaseCall struct {
	Size  float64
	Color city.Color
}

// BuildingCall records one AddBuilding invocation.
type BuildingCall struct {
	Pos    Position
	Radius float64
	Sides  int
	Height city.Height
	Color  city.Color
}

// Recorder is a Renderer that records every call instead of drawing.
// It backs dry runs and tests. Not safe for concurrent use.
type Recorder struct {
	Cleared   int
	Bases     []BaseCall
	Buildings []BuildingCall
}

// ClearScene records the call and drops previously recorded geometry,
// mirroring what a real renderer would do.
func (r *Recorder) ClearScene() error {
	r.Cleared++
	r.Bases = nil
	r.Buildings = nil
	return nil
}

// AddBase records the call.
func (r *Recorder) AddBase(size float64, color city.Color) error {
	r.Bases = append(r.Bases, BaseCall{Size: size, Color: color})
	return nil
}

// AddBuilding records the call.
func (r *Recorder) AddBuilding(pos Position, radius float64, sides int, height city.Height, color city.Color) error {
	r.Buildings = append(r.Buildings, BuildingCall{Pos: pos, Radius: radius, Sides: sides, Height: height, Color: color})
	return nil
}

// Ensure Recorder implements Renderer.
var _ Renderer = (*Recorder)(nil)
