package city

import "fmt"

// Height is a discrete building height level. The unit is floors, not scene
// coordinates; scale factors belong to the renderer. Non-positive levels are
// valid chain states that mean "no building on this lot".
type Height int

// Empty reports whether the height denotes an empty lot.
func (h Height) Empty() bool { return h <= 0 }

// Color identifies a building color by name and RGB value. Equality covers
// all four fields, so two palette entries with the same channels but
// different names are distinct chain states.
type Color struct {
	Name string `json:"name"`
	R    uint8  `json:"r"`
	G    uint8  `json:"g"`
	B    uint8  `json:"b"`
}

// String returns the color name, or the hex triplet if unnamed.
func (c Color) String() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Hex()
}

// Hex returns the color as a #rrggbb string.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Cell is the attribute pair generated for one grid position.
type Cell struct {
	Height Height `json:"height"`
	Color  Color  `json:"color"`
}
