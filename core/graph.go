package core

import (
	"fmt"
	"reflect"
)

// FactorGraph is a mutable, append-only collection of shared Factor
// references. Iteration order is the insertion order; it carries no
// semantic weight.
//
// A FactorGraph never owns its factors exclusively: Clone produces a
// graph sharing the same Factor values, and the incremental updater
// moves factors between graphs without copying them.
type FactorGraph struct {
	factors []Factor
}

// NewFactorGraph builds a graph over the given factors. Nil factors
// are rejected with ErrNilFactor.
func NewFactorGraph(factors ...Factor) (*FactorGraph, error) {
	g := &FactorGraph{}
	for _, f := range factors {
		if err := g.Add(f); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// Add appends one factor to the graph. Nil factors are rejected with
// ErrNilFactor, including a typed nil pointer wrapped in the Factor
// interface (which compares unequal to nil but panics on first use).
func (g *FactorGraph) Add(f Factor) error {
	if isNilFactor(f) {
		return fmt.Errorf("factor %d: %w", len(g.factors), ErrNilFactor)
	}
	g.factors = append(g.factors, f)

	return nil
}

// isNilFactor reports whether f is nil or a nil pointer in disguise.
func isNilFactor(f Factor) bool {
	if f == nil {
		return true
	}
	v := reflect.ValueOf(f)

	return v.Kind() == reflect.Pointer && v.IsNil()
}

// AddGraph appends every factor of other, sharing the references.
func (g *FactorGraph) AddGraph(other *FactorGraph) {
	if other == nil {
		return
	}
	g.factors = append(g.factors, other.factors...)
}

// Len returns the number of factors in the graph.
func (g *FactorGraph) Len() int { return len(g.factors) }

// Factor returns the i-th factor in insertion order.
func (g *FactorGraph) Factor(i int) Factor { return g.factors[i] }

// Factors returns a copy of the factor slice (the Factor values
// themselves are shared).
func (g *FactorGraph) Factors() []Factor {
	out := make([]Factor, len(g.factors))
	copy(out, g.factors)

	return out
}

// Keys returns the union of all factor key sets.
func (g *FactorGraph) Keys() KeySet {
	var keys KeySet
	for _, f := range g.factors {
		keys = keys.Union(f.Keys())
	}

	return keys
}

// Clone returns a new graph sharing the same Factor references.
func (g *FactorGraph) Clone() *FactorGraph {
	out := &FactorGraph{factors: make([]Factor, len(g.factors))}
	copy(out.factors, g.factors)

	return out
}
