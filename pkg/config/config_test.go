package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lcsmith2/markovcity/pkg/city"
	apperrors "github.com/lcsmith2/markovcity/pkg/errors"
)

const sampleTOML = `
tolerance = 1e-6

[heights]
states = [0, 2]
fallback = "first"

[heights.prior]
2 = 1.0

[heights.transitions]
0 = { 0 = 0.5, 2 = 0.5 }
2 = { 0 = 0.25, 2 = 0.75 }

[colors]
fallback = "uniform"
palette = [
    { name = "slate", r = 90, g = 105, b = 136 },
    { name = "brick", r = 178, g = 90, b = 74 },
]

[colors.transitions]
slate = { slate = 0.6, brick = 0.4 }
brick = { slate = 0.4, brick = 0.6 }
`

func TestParseAndBuildModels(t *testing.T) {
	cfg, err := Parse([]byte(sampleTOML))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	heights, colors, err := cfg.Models()
	if err != nil {
		t.Fatalf("Models error: %v", err)
	}

	if got := heights.States(); len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("height states = %v, want [0 2]", got)
	}
	prior := heights.Prior()
	if prior[0] != 0 || prior[1] != 1 {
		t.Errorf("height prior = %v, want [0 1]", prior)
	}
	dist, err := heights.Next(2)
	if err != nil {
		t.Fatalf("Next error: %v", err)
	}
	if dist[0] != 0.25 || dist[1] != 0.75 {
		t.Errorf("Next(2) = %v, want [0.25 0.75]", dist)
	}

	slate := city.Color{Name: "slate", R: 90, G: 105, B: 136}
	if got := colors.States(); got[0] != slate {
		t.Errorf("first color = %+v, want slate", got[0])
	}
	for _, p := range colors.Prior() {
		if p != 0.5 {
			t.Errorf("uniform color prior entry = %g, want 0.5", p)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chains.toml")
	if err := os.WriteFile(path, []byte(sampleTOML), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if _, _, err := cfg.Models(); err != nil {
		t.Errorf("Models error: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("Load should fail")
	}
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("error code = %v, want FILE_NOT_FOUND", apperrors.GetCode(err))
	}
}

func TestDefaultBuilds(t *testing.T) {
	heights, colors, err := Default().Models()
	if err != nil {
		t.Fatalf("default config should build: %v", err)
	}
	if heights.StateCount() != 4 {
		t.Errorf("height states = %d, want 4", heights.StateCount())
	}
	if colors.StateCount() != 4 {
		t.Errorf("palette size = %d, want 4", colors.StateCount())
	}
	// The original model starts every walk at ground level.
	if p := heights.Prior(); p[0] != 1 {
		t.Errorf("default height prior = %v, want first-state", p)
	}
}

func TestConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
		code apperrors.Code
	}{
		{
			name: "not toml",
			toml: `{{{{`,
			code: apperrors.ErrCodeInvalidConfig,
		},
		{
			name: "unknown fallback",
			toml: `
[heights]
states = [0]
fallback = "sideways"
[heights.transitions]
0 = { 0 = 1.0 }
[colors]
palette = [{ name = "x", r = 0, g = 0, b = 0 }]
[colors.transitions]
x = { x = 1.0 }
`,
			code: apperrors.ErrCodeInvalidConfig,
		},
		{
			name: "non-integer height state",
			toml: `
[heights]
states = [0]
[heights.transitions]
tall = { tall = 1.0 }
[colors]
palette = [{ name = "x", r = 0, g = 0, b = 0 }]
[colors.transitions]
x = { x = 1.0 }
`,
			code: apperrors.ErrCodeInvalidConfig,
		},
		{
			name: "transition row not normalized",
			toml: `
[heights]
states = [0, 1]
[heights.transitions]
0 = { 0 = 0.5, 1 = 0.4 }
1 = { 0 = 0.5, 1 = 0.5 }
[colors]
palette = [{ name = "x", r = 0, g = 0, b = 0 }]
[colors.transitions]
x = { x = 1.0 }
`,
			code: apperrors.ErrCodeInvalidChain,
		},
		{
			name: "color outside palette",
			toml: `
[heights]
states = [0]
[heights.transitions]
0 = { 0 = 1.0 }
[colors]
palette = [{ name = "x", r = 0, g = 0, b = 0 }]
[colors.transitions]
y = { x = 1.0 }
`,
			code: apperrors.ErrCodeChainNotFound,
		},
		{
			name: "duplicate palette name",
			toml: `
[heights]
states = [0]
[heights.transitions]
0 = { 0 = 1.0 }
[colors]
palette = [
    { name = "x", r = 0, g = 0, b = 0 },
    { name = "x", r = 1, g = 1, b = 1 },
]
[colors.transitions]
x = { x = 1.0 }
`,
			code: apperrors.ErrCodeInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.toml))
			if err == nil {
				_, _, err = cfg.Models()
			}
			if err == nil {
				t.Fatal("expected an error")
			}
			if !apperrors.Is(err, tt.code) {
				t.Errorf("error code = %v, want %v (err: %v)", apperrors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestHashStable(t *testing.T) {
	a, err := Default().Hash()
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	b, err := Default().Hash()
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if a != b {
		t.Error("Hash should be stable across identical configs")
	}

	changed := Default()
	changed.Heights.States = []int{0, 1}
	changed.Heights.Transitions = map[string]map[string]float64{
		"0": {"0": 0.5, "1": 0.5},
		"1": {"0": 0.5, "1": 0.5},
	}
	c, err := changed.Hash()
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if c == a {
		t.Error("different configs should hash differently")
	}
}
