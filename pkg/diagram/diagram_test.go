package diagram

import (
	"strings"
	"testing"

	"github.com/lcsmith2/markovcity/pkg/markov"
)

func testModel(t *testing.T) *markov.Model[int] {
	t.Helper()
	m, err := markov.NewModel(
		[]int{0, 1},
		map[int]map[int]float64{
			0: {0: 0.75, 1: 0.25},
			1: {1: 1},
		},
		map[int]float64{0: 1},
		nil,
	)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func TestFromModel(t *testing.T) {
	dot := FromModel(testModel(t), Options{Name: "heights"})

	for _, want := range []string{
		`digraph "heights" {`,
		`"0" -> "0" [label="0.75"]`,
		`"0" -> "1" [label="0.25"]`,
		`"1" -> "1" [label="1"]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}

	// Zero-probability transitions are omitted.
	if strings.Contains(dot, `"1" -> "0"`) {
		t.Errorf("DOT should omit zero-probability edges:\n%s", dot)
	}
	if strings.Contains(dot, "__start__") {
		t.Errorf("DOT should omit the start marker without ShowPrior:\n%s", dot)
	}
}

func TestFromModelShowPrior(t *testing.T) {
	dot := FromModel(testModel(t), Options{Name: "heights", ShowPrior: true})

	if !strings.Contains(dot, `"__start__" -> "0" [label="1"`) {
		t.Errorf("DOT missing prior edge:\n%s", dot)
	}
	if strings.Contains(dot, `"__start__" -> "1"`) {
		t.Errorf("DOT should omit zero-probability prior edges:\n%s", dot)
	}
}

func TestFromModelDefaultName(t *testing.T) {
	dot := FromModel(testModel(t), Options{})
	if !strings.HasPrefix(dot, `digraph "chain" {`) {
		t.Errorf("unexpected header: %s", dot[:min(40, len(dot))])
	}
}
