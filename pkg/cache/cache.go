// Package cache provides pluggable caching for generated grids and rendered
// chain diagrams. Backends include a file cache for CLI usage, a Redis cache
// for the server, and a null cache for disabling caching entirely.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was found; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A non-positive TTL means the
	// entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys for the artifacts the pipeline produces.
type Keyer interface {
	// GridKey generates a key for a generated grid.
	GridKey(configHash string, opts GridKeyOpts) string

	// DiagramKey generates a key for a rendered chain diagram.
	DiagramKey(configHash string, opts DiagramKeyOpts) string
}

// GridKeyOpts are the generation parameters that affect grid output.
// Two runs with the same config hash and the same opts produce the same grid.
type GridKeyOpts struct {
	Rows int    `json:"rows"`
	Cols int    `json:"cols"`
	Seed uint64 `json:"seed"`
}

// DiagramKeyOpts are the parameters that affect diagram output.
type DiagramKeyOpts struct {
	Chain     string `json:"chain"`  // "heights" or "colors"
	Format    string `json:"format"` // "dot" or "svg"
	ShowPrior bool   `json:"show_prior"`
}

// DefaultKeyer hashes key components into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GridKey generates a key for a generated grid.
func (k *DefaultKeyer) GridKey(configHash string, opts GridKeyOpts) string {
	return hashKey("grid", configHash, opts)
}

// DiagramKey generates a key for a rendered chain diagram.
func (k *DefaultKeyer) DiagramKey(configHash string, opts DiagramKeyOpts) string {
	return hashKey("diagram", configHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
