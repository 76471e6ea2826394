// Package config loads Markov chain definitions from TOML files.
//
// A chain file declares the height chain (integer states, transition rows,
// optional prior) and the color chain (a named palette plus transition rows
// keyed by palette name). [Default] reproduces the built-in city model, so
// every command works without a config file.
//
// Example:
//
//	tolerance = 1e-6
//
//	[heights]
//	states = [0, 1, 2, 3]
//	fallback = "first"
//
//	[heights.transitions]
//	0 = { 0 = 0.3, 1 = 0.2, 2 = 0.3, 3 = 0.2 }
//	1 = { 0 = 0.3, 1 = 0.2, 2 = 0.3, 3 = 0.2 }
//	2 = { 0 = 0.3, 1 = 0.2, 2 = 0.3, 3 = 0.2 }
//	3 = { 0 = 0.3, 1 = 0.2, 2 = 0.3, 3 = 0.2 }
//
//	[colors]
//	fallback = "uniform"
//	palette = [
//	    { name = "slate", r = 90, g = 105, b = 136 },
//	    { name = "brick", r = 178, g = 90, b = 74 },
//	]
//
//	[colors.transitions]
//	slate = { slate = 0.6, brick = 0.4 }
//	brick = { slate = 0.4, brick = 0.6 }
package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/lcsmith2/markovcity/pkg/city"
	apperrors "github.com/lcsmith2/markovcity/pkg/errors"
	"github.com/lcsmith2/markovcity/pkg/markov"
)

// Fallback policy names accepted in chain files.
const (
	FallbackUniform = "uniform"
	FallbackFirst   = "first"
)

// Config is a parsed chain file.
type Config struct {
	// Tolerance overrides the normalization check tolerance for both chains.
	// Zero means markov.DefaultTolerance.
	Tolerance float64     `toml:"tolerance"`
	Heights   HeightChain `toml:"heights"`
	Colors    ColorChain  `toml:"colors"`
}

// HeightChain declares the building-height chain. TOML keys are strings, so
// transition and prior rows are keyed by the decimal form of the state.
type HeightChain struct {
	States      []int                         `toml:"states"`
	Fallback    string                        `toml:"fallback"`
	Prior       map[string]float64            `toml:"prior"`
	Transitions map[string]map[string]float64 `toml:"transitions"`
}

// ColorChain declares the building-color chain over a named palette.
type ColorChain struct {
	Palette     []PaletteEntry                `toml:"palette"`
	Fallback    string                        `toml:"fallback"`
	Prior       map[string]float64            `toml:"prior"`
	Transitions map[string]map[string]float64 `toml:"transitions"`
}

// PaletteEntry is one named color in the palette.
type PaletteEntry struct {
	Name string `toml:"name"`
	R    uint8  `toml:"r"`
	G    uint8  `toml:"g"`
	B    uint8  `toml:"b"`
}

// Load reads and parses a chain file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "chain file %s", path)
		}
		return nil, err
	}
	return Parse(data)
}

// Parse parses chain file bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse chain file")
	}
	return &cfg, nil
}

// Default returns the built-in city model: the four-level height chain with
// uniform 0.3/0.2/0.3/0.2 rows starting from ground level, and a four-color
// palette where colors tend to cluster.
func Default() *Config {
	uniformRow := map[string]float64{"0": 0.3, "1": 0.2, "2": 0.3, "3": 0.2}
	return &Config{
		Heights: HeightChain{
			States:   []int{0, 1, 2, 3},
			Fallback: FallbackFirst,
			Transitions: map[string]map[string]float64{
				"0": uniformRow, "1": uniformRow, "2": uniformRow, "3": uniformRow,
			},
		},
		Colors: ColorChain{
			Palette: []PaletteEntry{
				{Name: "slate", R: 90, G: 105, B: 136},
				{Name: "brick", R: 178, G: 90, B: 74},
				{Name: "sand", R: 214, G: 186, B: 140},
				{Name: "moss", R: 110, G: 139, B: 97},
			},
			Fallback: FallbackUniform,
			Transitions: map[string]map[string]float64{
				"slate": {"slate": 0.55, "brick": 0.15, "sand": 0.15, "moss": 0.15},
				"brick": {"slate": 0.15, "brick": 0.55, "sand": 0.15, "moss": 0.15},
				"sand":  {"slate": 0.15, "brick": 0.15, "sand": 0.55, "moss": 0.15},
				"moss":  {"slate": 0.15, "brick": 0.15, "sand": 0.15, "moss": 0.55},
			},
		},
	}
}

// Models builds the validated height and color models from the config.
func (c *Config) Models() (*markov.Model[city.Height], *markov.Model[city.Color], error) {
	h, err := c.HeightModel()
	if err != nil {
		return nil, nil, err
	}
	col, err := c.ColorModel()
	if err != nil {
		return nil, nil, err
	}
	return h, col, nil
}

// HeightModel builds the validated height chain.
func (c *Config) HeightModel() (*markov.Model[city.Height], error) {
	opts, err := c.modelOptions(c.Heights.Fallback)
	if err != nil {
		return nil, err
	}

	if len(c.Heights.States) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidConfig, "heights.states is empty")
	}
	states := make([]city.Height, len(c.Heights.States))
	for i, s := range c.Heights.States {
		states[i] = city.Height(s)
	}

	transitions := make(map[city.Height]map[city.Height]float64, len(c.Heights.Transitions))
	for from, row := range c.Heights.Transitions {
		f, err := parseHeight(from)
		if err != nil {
			return nil, err
		}
		converted := make(map[city.Height]float64, len(row))
		for to, p := range row {
			t, err := parseHeight(to)
			if err != nil {
				return nil, err
			}
			converted[t] = p
		}
		transitions[f] = converted
	}

	var prior map[city.Height]float64
	if c.Heights.Prior != nil {
		prior = make(map[city.Height]float64, len(c.Heights.Prior))
		for s, p := range c.Heights.Prior {
			h, err := parseHeight(s)
			if err != nil {
				return nil, err
			}
			prior[h] = p
		}
	}

	m, err := markov.NewModel(states, transitions, prior, opts)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidChain, err, "height chain")
	}
	return m, nil
}

// ColorModel builds the validated color chain from the palette.
func (c *Config) ColorModel() (*markov.Model[city.Color], error) {
	opts, err := c.modelOptions(c.Colors.Fallback)
	if err != nil {
		return nil, err
	}

	if len(c.Colors.Palette) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidConfig, "colors.palette is empty")
	}
	states := make([]city.Color, len(c.Colors.Palette))
	byName := make(map[string]city.Color, len(c.Colors.Palette))
	for i, p := range c.Colors.Palette {
		if p.Name == "" {
			return nil, apperrors.New(apperrors.ErrCodeInvalidConfig, "palette entry %d has no name", i)
		}
		col := city.Color{Name: p.Name, R: p.R, G: p.G, B: p.B}
		if _, dup := byName[p.Name]; dup {
			return nil, apperrors.New(apperrors.ErrCodeInvalidConfig, "duplicate palette color %q", p.Name)
		}
		states[i] = col
		byName[p.Name] = col
	}

	lookup := func(name string) (city.Color, error) {
		col, ok := byName[name]
		if !ok {
			return city.Color{}, apperrors.New(apperrors.ErrCodeChainNotFound, "color %q is not in the palette", name)
		}
		return col, nil
	}

	transitions := make(map[city.Color]map[city.Color]float64, len(c.Colors.Transitions))
	for from, row := range c.Colors.Transitions {
		f, err := lookup(from)
		if err != nil {
			return nil, err
		}
		converted := make(map[city.Color]float64, len(row))
		for to, p := range row {
			t, err := lookup(to)
			if err != nil {
				return nil, err
			}
			converted[t] = p
		}
		transitions[f] = converted
	}

	var prior map[city.Color]float64
	if c.Colors.Prior != nil {
		prior = make(map[city.Color]float64, len(c.Colors.Prior))
		for name, p := range c.Colors.Prior {
			col, err := lookup(name)
			if err != nil {
				return nil, err
			}
			prior[col] = p
		}
	}

	m, err := markov.NewModel(states, transitions, prior, opts)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidChain, err, "color chain")
	}
	return m, nil
}

func (c *Config) modelOptions(fallback string) (*markov.ModelOptions, error) {
	opts := &markov.ModelOptions{Tolerance: c.Tolerance}
	switch fallback {
	case "", FallbackUniform:
		opts.Fallback = markov.FallbackUniform
	case FallbackFirst:
		opts.Fallback = markov.FallbackFirstState
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidConfig,
			"unknown fallback %q (must be %q or %q)", fallback, FallbackUniform, FallbackFirst)
	}
	return opts, nil
}

func parseHeight(s string) (city.Height, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperrors.New(apperrors.ErrCodeInvalidConfig, "height state %q is not an integer", s)
	}
	return city.Height(n), nil
}

// Hash returns a stable content hash of the config, used for cache keys.
func (c *Config) Hash() (string, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
