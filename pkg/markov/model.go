package markov

import (
	"fmt"
	"math"
	"slices"
)

// DefaultTolerance is the maximum allowed deviation from 1.0 when checking
// that a transition row or prior vector is normalized.
const DefaultTolerance = 1e-6

// FallbackPolicy selects the prior distribution used when a model is built
// without an explicit prior vector.
type FallbackPolicy int

const (
	// FallbackUniform assigns equal probability to every state.
	FallbackUniform FallbackPolicy = iota
	// FallbackFirstState assigns probability 1 to the first declared state.
	FallbackFirstState
)

// ModelOptions configures model construction. The zero value (or nil) uses
// [DefaultTolerance] and [FallbackUniform].
type ModelOptions struct {
	// Tolerance is the normalization check tolerance. Zero means DefaultTolerance.
	Tolerance float64
	// Fallback is the prior policy applied when no prior vector is supplied.
	Fallback FallbackPolicy
}

// Model is an immutable first-order Markov chain over a closed set of states.
// The state order fixed at construction is used wherever a probability vector
// is aligned positionally to states, so sampling is reproducible.
//
// Models are read-only after construction and safe for concurrent use.
type Model[S comparable] struct {
	states []S
	index  map[S]int
	rows   [][]float64 // rows[i][j] = P(states[j] | states[i])
	prior  []float64   // aligned to states
	tol    float64
}

// NewModel builds a validated model from an ordered state sequence, a
// transition matrix, and an optional prior vector (nil applies the fallback
// policy from opts).
//
// The matrix must be square over the declared state set: every state owns
// exactly one row and every row's keys are drawn from the declared states.
// Missing entries within a known row or prior count as probability 0; unknown
// keys are rejected. Every row and the prior must be non-negative and sum to
// 1 within the tolerance. Construction either fully succeeds or returns a
// *ValidationError and no usable model.
func NewModel[S comparable](states []S, transitions map[S]map[S]float64, prior map[S]float64, opts *ModelOptions) (*Model[S], error) {
	if opts == nil {
		opts = &ModelOptions{}
	}
	tol := opts.Tolerance
	if tol == 0 {
		tol = DefaultTolerance
	}

	if len(states) == 0 {
		return nil, &ValidationError{Subject: "transitions", Detail: "state set is empty"}
	}

	index := make(map[S]int, len(states))
	for i, s := range states {
		if _, dup := index[s]; dup {
			return nil, &ValidationError{Subject: "transitions", Detail: fmt.Sprintf("duplicate state %v", s)}
		}
		index[s] = i
	}

	if len(transitions) != len(states) {
		return nil, &ValidationError{
			Subject: "transitions",
			Detail:  fmt.Sprintf("matrix has %d rows for %d states", len(transitions), len(states)),
		}
	}
	for s := range transitions {
		if _, ok := index[s]; !ok {
			return nil, &ValidationError{Subject: "transitions", Detail: fmt.Sprintf("row keyed by undeclared state %v", s)}
		}
	}

	rows := make([][]float64, len(states))
	for i, s := range states {
		row, err := alignVector(index, transitions[s], tol, "transitions", fmt.Sprintf("%v", s))
		if err != nil {
			return nil, err
		}
		rows[i] = row
	}

	var p []float64
	if prior != nil {
		aligned, err := alignVector(index, prior, tol, "prior", "")
		if err != nil {
			return nil, err
		}
		p = aligned
	} else {
		p = fallbackPrior(len(states), opts.Fallback)
	}

	return &Model[S]{
		states: slices.Clone(states),
		index:  index,
		rows:   rows,
		prior:  p,
		tol:    tol,
	}, nil
}

// alignVector converts a state-keyed probability map into a vector aligned to
// the declared state order, validating keys, signs, and normalization.
func alignVector[S comparable](index map[S]int, probs map[S]float64, tol float64, subject, row string) ([]float64, error) {
	out := make([]float64, len(index))
	sum := 0.0
	for s, p := range probs {
		i, ok := index[s]
		if !ok {
			return nil, &ValidationError{Subject: subject, Row: row, Detail: fmt.Sprintf("undeclared state %v", s)}
		}
		if p < 0 {
			return nil, &ValidationError{Subject: subject, Row: row, Detail: fmt.Sprintf("negative probability %g for state %v", p, s)}
		}
		out[i] = p
		sum += p
	}
	if dev := math.Abs(sum - 1); dev > tol {
		return nil, &ValidationError{
			Subject: subject,
			Row:     row,
			Detail:  fmt.Sprintf("probabilities sum to %g (deviation %g exceeds tolerance %g)", sum, dev, tol),
		}
	}
	return out, nil
}

func fallbackPrior(n int, policy FallbackPolicy) []float64 {
	p := make([]float64, n)
	switch policy {
	case FallbackFirstState:
		p[0] = 1
	default:
		for i := range p {
			p[i] = 1 / float64(n)
		}
	}
	return p
}

// States returns the fixed ordered state sequence. The order is stable across
// calls and matches the alignment of every vector the model returns.
func (m *Model[S]) States() []S { return slices.Clone(m.states) }

// StateCount returns the number of states in the chain.
func (m *Model[S]) StateCount() int { return len(m.states) }

// Tolerance returns the normalization tolerance the model was built with.
func (m *Model[S]) Tolerance() float64 { return m.tol }

// Contains reports whether s is one of the model's declared states.
func (m *Model[S]) Contains(s S) bool {
	_, ok := m.index[s]
	return ok
}

// Prior returns the initial-state distribution aligned to [Model.States]:
// the explicit prior if one was supplied, otherwise the resolved fallback.
func (m *Model[S]) Prior() []float64 { return slices.Clone(m.prior) }

// Next returns the successor distribution for the given state, aligned to
// [Model.States]. Returns a *UnknownStateError if current is not one of the
// model's states.
func (m *Model[S]) Next(current S) ([]float64, error) {
	i, ok := m.index[current]
	if !ok {
		return nil, &UnknownStateError{State: fmt.Sprintf("%v", current)}
	}
	return slices.Clone(m.rows[i]), nil
}

// Transition returns P(to | from) without copying a full row.
// Returns a *UnknownStateError if either state is undeclared.
func (m *Model[S]) Transition(from, to S) (float64, error) {
	i, ok := m.index[from]
	if !ok {
		return 0, &UnknownStateError{State: fmt.Sprintf("%v", from)}
	}
	j, ok := m.index[to]
	if !ok {
		return 0, &UnknownStateError{State: fmt.Sprintf("%v", to)}
	}
	return m.rows[i][j], nil
}
