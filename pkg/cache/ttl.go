package cache

import "time"

// Cache TTLs per artifact kind. Grids are cheap to regenerate, so they get a
// shorter lifetime than rendered diagrams.
const (
	// TTLGrid is the lifetime of cached generated grids.
	TTLGrid = 24 * time.Hour

	// TTLDiagram is the lifetime of cached chain diagrams.
	TTLDiagram = 7 * 24 * time.Hour
)
