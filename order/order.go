// Package order provides elimination-ordering strategies: the external
// collaborator that decides in which sequence variables are
// eliminated. Any valid permutation of the requested key set is
// correctness-preserving; the choice only shapes the resulting clique
// tree and its fill-in.
//
// Strategies:
//
//   - Natural   — requested keys in ascending key order (the sorted-keys
//     ordering classically used by incremental smoothers: older
//     variables eliminated first, recent ones near the root).
//   - Fixed     — an explicit caller-supplied sequence, restricted to the
//     requested keys. Keys outside the sequence are silently
//     excluded, since an ordering strictly defines elimination
//     scope.
//   - MinDegree — greedy minimum-degree heuristic over the factor-graph
//     adjacency, with deterministic key-order tie-breaking.
package order

import (
	"github.com/velatir/bayes/core"
)

// Strategy computes an elimination ordering over a requested key set.
// The factor graph supplies adjacency for heuristics that need it;
// structure-blind strategies ignore it.
type Strategy interface {
	ComputeOrdering(g *core.FactorGraph, keys core.KeySet) (core.Ordering, error)
}

// Natural orders the requested keys ascending. Deterministic and
// structure-blind.
type Natural struct{}

// ComputeOrdering implements Strategy.
//
// Complexity: O(n) (KeySets are already sorted).
func (Natural) ComputeOrdering(_ *core.FactorGraph, keys core.KeySet) (core.Ordering, error) {
	return core.Ordering(keys.Clone()), nil
}

// Fixed replays an explicit elimination sequence. Requested keys
// missing from the sequence are excluded from the result (they will
// simply not be eliminated), and sequence keys outside the request are
// skipped.
type Fixed core.Ordering

// ComputeOrdering implements Strategy.
//
// Complexity: O(s log n) for a sequence of length s.
func (f Fixed) ComputeOrdering(_ *core.FactorGraph, keys core.KeySet) (core.Ordering, error) {
	out := make(core.Ordering, 0, keys.Len())
	for _, k := range f {
		if keys.Contains(k) {
			out = append(out, k)
		}
	}

	return out, nil
}
