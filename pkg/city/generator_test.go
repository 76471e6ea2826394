package city_test

import (
	"reflect"
	"testing"

	"github.com/lcsmith2/markovcity/pkg/city"
	"github.com/lcsmith2/markovcity/pkg/markov"
)

// seqSource replays a fixed sequence of values, cycling when exhausted.
type seqSource struct {
	vals []float64
	i    int
}

func (s *seqSource) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

// failSource fails the test if the generator consumes any randomness.
type failSource struct {
	t *testing.T
}

func (s *failSource) Float64() float64 {
	s.t.Fatal("random source queried for a degenerate grid")
	return 0
}

var (
	gray = city.Color{Name: "gray", R: 128, G: 128, B: 128}
	teal = city.Color{Name: "teal", R: 0, G: 128, B: 128}
)

// singleColorModel is a one-state color chain so tests can focus on heights.
func singleColorModel(t *testing.T) *markov.Model[city.Color] {
	t.Helper()
	m, err := markov.NewModel(
		[]city.Color{gray},
		map[city.Color]map[city.Color]float64{gray: {gray: 1}},
		nil, nil,
	)
	if err != nil {
		t.Fatalf("color model: %v", err)
	}
	return m
}

func uniformHeightModel(t *testing.T) *markov.Model[city.Height] {
	t.Helper()
	m, err := markov.NewModel(
		[]city.Height{0, 1, 2, 3},
		map[city.Height]map[city.Height]float64{
			0: {0: 0.3, 1: 0.2, 2: 0.3, 3: 0.2},
			1: {0: 0.3, 1: 0.2, 2: 0.3, 3: 0.2},
			2: {0: 0.3, 1: 0.2, 2: 0.3, 3: 0.2},
			3: {0: 0.3, 1: 0.2, 2: 0.3, 3: 0.2},
		},
		map[city.Height]float64{0: 1},
		nil,
	)
	if err != nil {
		t.Fatalf("height model: %v", err)
	}
	return m
}

func TestGenerateShape(t *testing.T) {
	gen := city.NewGenerator(uniformHeightModel(t), singleColorModel(t))

	tests := []struct{ rows, cols int }{
		{1, 1}, {3, 4}, {5, 2}, {1, 7}, {6, 1},
	}
	for _, tt := range tests {
		grid, err := gen.Generate(tt.rows, tt.cols, markov.NewSource(1))
		if err != nil {
			t.Fatalf("Generate(%d,%d) error: %v", tt.rows, tt.cols, err)
		}
		if grid.Rows() != tt.rows || grid.Cols() != tt.cols {
			t.Errorf("Generate(%d,%d) shape = %dx%d", tt.rows, tt.cols, grid.Rows(), grid.Cols())
		}
		cells := grid.Cells()
		for r, row := range cells {
			if len(row) != tt.cols {
				t.Errorf("row %d has %d cells, want %d", r, len(row), tt.cols)
			}
		}
	}
}

func TestGenerateDegenerateConsumesNoDraws(t *testing.T) {
	gen := city.NewGenerator(uniformHeightModel(t), singleColorModel(t))

	for _, tt := range []struct{ rows, cols int }{{0, 0}, {0, 5}, {5, 0}} {
		grid, err := gen.Generate(tt.rows, tt.cols, &failSource{t: t})
		if err != nil {
			t.Fatalf("Generate(%d,%d) error: %v", tt.rows, tt.cols, err)
		}
		if !grid.Empty() {
			t.Errorf("Generate(%d,%d) should be empty", tt.rows, tt.cols)
		}
	}
}

func TestGenerateNegativeDimensions(t *testing.T) {
	gen := city.NewGenerator(uniformHeightModel(t), singleColorModel(t))

	if _, err := gen.Generate(-1, 3, &failSource{t: t}); err != city.ErrNegativeDimensions {
		t.Errorf("Generate(-1,3) error = %v, want ErrNegativeDimensions", err)
	}
	if _, err := gen.Generate(3, -1, &failSource{t: t}); err != city.ErrNegativeDimensions {
		t.Errorf("Generate(3,-1) error = %v, want ErrNegativeDimensions", err)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	hm, err := markov.NewModel(
		[]city.Height{0, 1, 2},
		map[city.Height]map[city.Height]float64{
			0: {0: 0.5, 1: 0.3, 2: 0.2},
			1: {0: 0.2, 1: 0.5, 2: 0.3},
			2: {0: 0.3, 1: 0.2, 2: 0.5},
		},
		nil, nil,
	)
	if err != nil {
		t.Fatalf("height model: %v", err)
	}
	cm, err := markov.NewModel(
		[]city.Color{gray, teal},
		map[city.Color]map[city.Color]float64{
			gray: {gray: 0.6, teal: 0.4},
			teal: {gray: 0.4, teal: 0.6},
		},
		nil, nil,
	)
	if err != nil {
		t.Fatalf("color model: %v", err)
	}
	gen := city.NewGenerator(hm, cm)

	a, err := gen.Generate(6, 9, markov.NewSource(99))
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	b, err := gen.Generate(6, 9, markov.NewSource(99))
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if !reflect.DeepEqual(a.Cells(), b.Cells()) {
		t.Error("identical sources should yield identical grids")
	}

	c, err := gen.Generate(6, 9, markov.NewSource(100))
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if reflect.DeepEqual(a.Cells(), c.Cells()) {
		t.Error("different seeds should yield different grids")
	}
}

func TestGenerateNoRowReset(t *testing.T) {
	// Deterministic 3-cycle 0→1→2→0 starting at 0. In row-major order a 2x2
	// grid is 1,2,0,1. If chain state were reset per row, the second row
	// would restart at 1.
	hm, err := markov.NewModel(
		[]city.Height{0, 1, 2},
		map[city.Height]map[city.Height]float64{
			0: {1: 1},
			1: {2: 1},
			2: {0: 1},
		},
		map[city.Height]float64{0: 1},
		nil,
	)
	if err != nil {
		t.Fatalf("height model: %v", err)
	}
	gen := city.NewGenerator(hm, singleColorModel(t))

	grid, err := gen.Generate(2, 2, markov.NewSource(5))
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	want := [][]city.Height{{1, 2}, {0, 1}}
	for r := range 2 {
		for c := range 2 {
			if got := grid.At(r, c).Height; got != want[r][c] {
				t.Errorf("cell (%d,%d) height = %d, want %d", r, c, got, want[r][c])
			}
		}
	}
	// The state fed into (1,0) is the state stored at (0,1).
	if grid.At(1, 0).Height != 0 {
		t.Error("row boundary reset the chain state")
	}
}

func TestGenerateDrawOrderHeightThenColor(t *testing.T) {
	// Both chains are uniform over two states, so each draw maps directly to
	// a state: < 0.5 selects the first, >= 0.5 the second. The scripted
	// sequence only produces the expected cell if draws go height, color,
	// height, color.
	hm, err := markov.NewModel(
		[]city.Height{1, 2},
		map[city.Height]map[city.Height]float64{
			1: {1: 0.5, 2: 0.5},
			2: {1: 0.5, 2: 0.5},
		},
		nil, nil,
	)
	if err != nil {
		t.Fatalf("height model: %v", err)
	}
	cm, err := markov.NewModel(
		[]city.Color{gray, teal},
		map[city.Color]map[city.Color]float64{
			gray: {gray: 0.5, teal: 0.5},
			teal: {gray: 0.5, teal: 0.5},
		},
		nil, nil,
	)
	if err != nil {
		t.Fatalf("color model: %v", err)
	}
	gen := city.NewGenerator(hm, cm)

	// init height → 1, init color → teal, cell height → 2, cell color → gray
	src := &seqSource{vals: []float64{0.0, 0.9, 0.9, 0.0}}
	grid, err := gen.Generate(1, 1, src)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	got := grid.At(0, 0)
	if got.Height != 2 || got.Color != gray {
		t.Errorf("cell = {%d %s}, want {2 gray}: draw order is not height-then-color", got.Height, got.Color)
	}
	if src.i != 4 {
		t.Errorf("consumed %d draws for a 1x1 grid, want 4", src.i)
	}
}

func TestGenerateAbsorbingChain(t *testing.T) {
	// Height 0 is absorbing with a prior pinned to it, so every cell must be
	// 0 regardless of the randomness consumed by the color chain.
	hm, err := markov.NewModel(
		[]city.Height{0, 1},
		map[city.Height]map[city.Height]float64{
			0: {0: 1.0, 1: 0.0},
			1: {0: 0.0, 1: 1.0},
		},
		map[city.Height]float64{0: 1.0, 1: 0.0},
		nil,
	)
	if err != nil {
		t.Fatalf("height model: %v", err)
	}
	gen := city.NewGenerator(hm, singleColorModel(t))

	for _, seed := range []uint64{1, 42, 7777} {
		grid, err := gen.Generate(4, 4, markov.NewSource(seed))
		if err != nil {
			t.Fatalf("Generate error: %v", err)
		}
		for r := range grid.Rows() {
			for c := range grid.Cols() {
				if h := grid.At(r, c).Height; h != 0 {
					t.Fatalf("seed %d: cell (%d,%d) height = %d, want 0", seed, r, c, h)
				}
			}
		}
	}
}
