package city_test

import (
	"fmt"

	"github.com/lcsmith2/markovcity/pkg/city"
	"github.com/lcsmith2/markovcity/pkg/markov"
)

func ExampleGenerator_Generate() {
	// A deterministic skyline: heights cycle 1→2→3→1 and there is a single
	// color, so the grid is fully determined by the chain structure.
	heights, _ := markov.NewModel(
		[]city.Height{1, 2, 3},
		map[city.Height]map[city.Height]float64{
			1: {2: 1},
			2: {3: 1},
			3: {1: 1},
		},
		map[city.Height]float64{1: 1},
		nil,
	)
	concrete := city.Color{Name: "concrete", R: 180, G: 180, B: 180}
	colors, _ := markov.NewModel(
		[]city.Color{concrete},
		map[city.Color]map[city.Color]float64{concrete: {concrete: 1}},
		nil,
		nil,
	)

	gen := city.NewGenerator(heights, colors)
	grid, _ := gen.Generate(2, 3, markov.NewSource(1))

	for r := range grid.Rows() {
		for c := range grid.Cols() {
			if c > 0 {
				fmt.Print(" ")
			}
			fmt.Print(grid.At(r, c).Height)
		}
		fmt.Println()
	}
	// Output:
	// 2 3 1
	// 2 3 1
}
