// Package pipeline provides the core generation pipeline for Markov City.
//
// This package implements the complete config → generate → export pipeline
// that can be used by CLI and server components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Config: Load and validate the chain configuration, build the models
//  2. Generate: Walk both chains across the grid with a seeded random source
//  3. Export: Serialize the grid in the requested formats
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Rows: 16,
//	    Cols: 16,
//	    Seed: 7,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data := result.Artifacts["json"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lcsmith2/markovcity/pkg/cache"
	"github.com/lcsmith2/markovcity/pkg/city"
	"github.com/lcsmith2/markovcity/pkg/config"
)

const (
	// DefaultRows is the default grid height in cells.
	DefaultRows = 10

	// DefaultCols is the default grid width in cells.
	DefaultCols = 10

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// MaxCells caps the grid size a single run may request. This protects
	// the server from absurd requests; the library itself has no limit.
	MaxCells = 1_000_000
)

// Format constants for grid output formats.
const (
	FormatJSON = "json"
)

// Diagram format constants.
const (
	DiagramDOT = "dot"
	DiagramSVG = "svg"
)

// Chain name constants.
const (
	ChainHeights = "heights"
	ChainColors  = "colors"
)

// ValidFormats is the set of supported grid output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
}

// ValidDiagramFormats is the set of supported diagram formats.
var ValidDiagramFormats = map[string]bool{
	DiagramDOT: true,
	DiagramSVG: true,
}

// ValidChains is the set of chain names a diagram can be requested for.
var ValidChains = map[string]bool{
	ChainHeights: true,
	ChainColors:  true,
}

// Options contains all configuration for the generation pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Generation options
	Rows int    `json:"rows,omitempty"`
	Cols int    `json:"cols,omitempty"`
	Seed uint64 `json:"seed,omitempty"`

	// ConfigPath points to a TOML chain configuration. Empty means the
	// built-in default configuration.
	ConfigPath string `json:"config_path,omitempty"`

	// Formats selects the export formats.
	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses the cache read (the result is still stored).
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Config *config.Config `json:"-"` // overrides ConfigPath when set
	Logger *log.Logger    `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this pipeline execution.
	RunID string

	// Grid is the generated city grid.
	Grid city.Grid

	// ConfigHash is the content hash of the resolved configuration.
	ConfigHash string

	// Artifacts contains exported outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rows         int
	Cols         int
	Buildings    int // cells with positive height
	ConfigTime   time.Duration
	GenerateTime time.Duration
	ExportTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GridHit bool // Whether the grid came from cache
}

// ValidateFormat checks that a grid output format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be: json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateChain checks that a chain name is valid.
func ValidateChain(chain string) error {
	if !ValidChains[chain] {
		return fmt.Errorf("invalid chain: %q (must be one of: heights, colors)", chain)
	}
	return nil
}

// ValidateDiagramFormat checks that a diagram format is valid.
func ValidateDiagramFormat(format string) error {
	if !ValidDiagramFormats[format] {
		return fmt.Errorf("invalid diagram format: %q (must be one of: dot, svg)", format)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Rows < 0 || o.Cols < 0 {
		return fmt.Errorf("rows and cols must be non-negative (got %d x %d)", o.Rows, o.Cols)
	}
	if o.Rows == 0 {
		o.Rows = DefaultRows
	}
	if o.Cols == 0 {
		o.Cols = DefaultCols
	}
	// Compare via division so Rows*Cols cannot overflow past the cap.
	// Cols is at least 1 here after defaulting.
	if o.Rows > MaxCells/o.Cols {
		return fmt.Errorf("grid too large: %d x %d exceeds %d cells", o.Rows, o.Cols, MaxCells)
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// GridKeyOpts returns cache key options for grid generation.
func (o *Options) GridKeyOpts() cache.GridKeyOpts {
	return cache.GridKeyOpts{
		Rows: o.Rows,
		Cols: o.Cols,
		Seed: o.Seed,
	}
}
