// Package diagram renders Markov chains as Graphviz state diagrams.
//
// A chain becomes a digraph with one node per state and one labeled edge per
// non-zero transition probability. Prior probabilities are drawn as edges
// from a synthetic start marker. The DOT output can be rendered in-process
// to SVG via [RenderSVG].
package diagram

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/lcsmith2/markovcity/pkg/markov"
)

// Options configures diagram generation.
type Options struct {
	// Name is the graph title (e.g. "heights", "colors").
	Name string
	// ShowPrior adds a start marker with edges weighted by the prior.
	ShowPrior bool
}

// FromModel converts a chain to Graphviz DOT format. Edge labels carry the
// transition probability; zero-probability transitions are omitted. States
// render through their natural %v formatting, so the state order of the
// model determines node declaration order.
func FromModel[S comparable](m *markov.Model[S], opts Options) string {
	name := opts.Name
	if name == "" {
		name = "chain"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", name)
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	states := m.States()
	for _, s := range states {
		fmt.Fprintf(&buf, "  %q;\n", fmt.Sprintf("%v", s))
	}

	if opts.ShowPrior {
		buf.WriteString("\n  \"__start__\" [shape=point, label=\"\"];\n")
		for i, p := range m.Prior() {
			if p == 0 {
				continue
			}
			fmt.Fprintf(&buf, "  \"__start__\" -> %q [label=\"%.3g\", style=dashed];\n",
				fmt.Sprintf("%v", states[i]), p)
		}
	}

	buf.WriteString("\n")
	for _, from := range states {
		dist, err := m.Next(from)
		if err != nil {
			// States() only returns declared states, so Next cannot fail here.
			continue
		}
		for i, p := range dist {
			if p == 0 {
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q [label=\"%.3g\"];\n",
				fmt.Sprintf("%v", from), fmt.Sprintf("%v", states[i]), p)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz in-process.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
