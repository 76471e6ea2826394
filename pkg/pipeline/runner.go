package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lcsmith2/markovcity/pkg/cache"
	"github.com/lcsmith2/markovcity/pkg/city"
	"github.com/lcsmith2/markovcity/pkg/config"
	"github.com/lcsmith2/markovcity/pkg/diagram"
	"github.com/lcsmith2/markovcity/pkg/markov"
	"github.com/lcsmith2/markovcity/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete config → generate → export pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Config
	configStart := time.Now()
	cfg, hash, err := r.ResolveConfig(opts)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	result.ConfigHash = hash
	result.Stats.ConfigTime = time.Since(configStart)

	// Stage 2: Generate
	generateStart := time.Now()
	grid, gridHit, err := r.GenerateWithCacheInfo(ctx, cfg, hash, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Grid = grid
	result.Stats.GenerateTime = time.Since(generateStart)
	result.Stats.Rows = grid.Rows()
	result.Stats.Cols = grid.Cols()
	result.Stats.Buildings = countBuildings(grid)
	result.CacheInfo.GridHit = gridHit

	r.Logger.Info("generated grid",
		"rows", grid.Rows(),
		"cols", grid.Cols(),
		"buildings", result.Stats.Buildings,
		"cached", gridHit,
		"duration", result.Stats.GenerateTime)

	// Stage 3: Export
	exportStart := time.Now()
	for _, format := range opts.Formats {
		data, err := exportGrid(grid, format)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", format, err)
		}
		result.Artifacts[format] = data
	}
	result.Stats.ExportTime = time.Since(exportStart)

	r.Logger.Info("exported outputs",
		"formats", opts.Formats,
		"duration", result.Stats.ExportTime)

	return result, nil
}

// ResolveConfig loads the configuration referenced by opts and returns it
// together with its content hash. Precedence: opts.Config, opts.ConfigPath,
// built-in defaults.
func (r *Runner) ResolveConfig(opts Options) (*config.Config, string, error) {
	cfg := opts.Config
	if cfg == nil {
		if opts.ConfigPath != "" {
			loaded, err := config.Load(opts.ConfigPath)
			if err != nil {
				return nil, "", err
			}
			cfg = loaded
		} else {
			cfg = config.Default()
		}
	}
	hash, err := cfg.Hash()
	if err != nil {
		return nil, "", fmt.Errorf("hash config: %w", err)
	}
	return cfg, hash, nil
}

// GenerateWithCacheInfo generates a grid with caching and returns cache hit info.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, cfg *config.Config, configHash string, opts Options) (city.Grid, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return city.Grid{}, false, err
	}

	observability.Pipeline().OnGenerateStart(ctx, opts.Rows, opts.Cols, opts.Seed)
	start := time.Now()

	cacheKey := r.Keyer.GridKey(configHash, opts.GridKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			grid, err := city.ReadGrid(bytes.NewReader(data))
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "grid")
				observability.Pipeline().OnGenerateComplete(ctx, opts.Rows, opts.Cols, true, time.Since(start), nil)
				return grid, true, nil // Cache hit
			}
			// Corrupt entry - fall through to regenerate
		}
	}
	observability.Cache().OnCacheMiss(ctx, "grid")

	heights, colors, err := cfg.Models()
	if err != nil {
		observability.Pipeline().OnGenerateComplete(ctx, opts.Rows, opts.Cols, false, time.Since(start), err)
		return city.Grid{}, false, err
	}
	gen := city.NewGenerator(heights, colors)
	grid, err := gen.Generate(opts.Rows, opts.Cols, markov.NewSource(opts.Seed))
	if err != nil {
		observability.Pipeline().OnGenerateComplete(ctx, opts.Rows, opts.Cols, false, time.Since(start), err)
		return city.Grid{}, false, err
	}

	// Cache the result
	if data, err := city.MarshalGrid(grid); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLGrid)
		observability.Cache().OnCacheSet(ctx, "grid", len(data))
	}

	observability.Pipeline().OnGenerateComplete(ctx, opts.Rows, opts.Cols, false, time.Since(start), nil)
	return grid, false, nil // Cache miss
}

// Generate is a convenience wrapper that resolves the config and discards
// the cache hit info.
func (r *Runner) Generate(ctx context.Context, opts Options) (city.Grid, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return city.Grid{}, err
	}
	cfg, hash, err := r.ResolveConfig(opts)
	if err != nil {
		return city.Grid{}, err
	}
	grid, _, err := r.GenerateWithCacheInfo(ctx, cfg, hash, opts)
	return grid, err
}

// RenderDiagram renders a chain diagram in the requested format with caching.
// Chain must be "heights" or "colors"; format must be "dot" or "svg".
func (r *Runner) RenderDiagram(ctx context.Context, opts Options, chain, format string, showPrior bool) ([]byte, error) {
	if err := ValidateChain(chain); err != nil {
		return nil, err
	}
	if err := ValidateDiagramFormat(format); err != nil {
		return nil, err
	}

	cfg, hash, err := r.ResolveConfig(opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	cacheKey := r.Keyer.DiagramKey(hash, cache.DiagramKeyOpts{
		Chain:     chain,
		Format:    format,
		ShowPrior: showPrior,
	})
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "diagram")
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "diagram")

	dot, err := chainDOT(cfg, chain, showPrior)
	if err != nil {
		observability.Pipeline().OnDiagramRender(ctx, chain, format, time.Since(start), err)
		return nil, err
	}

	var data []byte
	switch format {
	case DiagramDOT:
		data = []byte(dot)
	case DiagramSVG:
		data, err = diagram.RenderSVG(dot)
		if err != nil {
			observability.Pipeline().OnDiagramRender(ctx, chain, format, time.Since(start), err)
			return nil, fmt.Errorf("render svg: %w", err)
		}
	}

	_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLDiagram)
	observability.Cache().OnCacheSet(ctx, "diagram", len(data))
	observability.Pipeline().OnDiagramRender(ctx, chain, format, time.Since(start), nil)
	return data, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// chainDOT builds the DOT source for the named chain.
func chainDOT(cfg *config.Config, chain string, showPrior bool) (string, error) {
	switch chain {
	case ChainHeights:
		m, err := cfg.HeightModel()
		if err != nil {
			return "", err
		}
		return diagram.FromModel(m, diagram.Options{Name: ChainHeights, ShowPrior: showPrior}), nil
	case ChainColors:
		m, err := cfg.ColorModel()
		if err != nil {
			return "", err
		}
		return diagram.FromModel(m, diagram.Options{Name: ChainColors, ShowPrior: showPrior}), nil
	default:
		return "", fmt.Errorf("invalid chain: %q", chain)
	}
}

// exportGrid serializes a grid in the given format.
func exportGrid(g city.Grid, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return city.MarshalGrid(g)
	default:
		return nil, fmt.Errorf("invalid format: %q", format)
	}
}

// countBuildings counts cells with a positive height.
func countBuildings(g city.Grid) int {
	n := 0
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			if !g.At(row, col).Height.Empty() {
				n++
			}
		}
	}
	return n
}
