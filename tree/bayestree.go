package tree

import (
	"errors"
	"fmt"

	"github.com/velatir/bayes/core"
)

// Sentinel errors for Bayes-tree operations.
var (
	// ErrKeyNotInTree indicates a lookup for a key no clique holds as
	// a frontal variable.
	ErrKeyNotInTree = errors.New("tree: key not in tree")

	// ErrNoParent indicates a separator key owned no clique while a
	// conditional or orphan was being attached. This means a variable
	// was eliminated away incorrectly upstream; it is fatal and
	// non-retryable.
	ErrNoParent = errors.New("tree: no clique owns separator key")

	// ErrInvariantViolation indicates structural damage: duplicate
	// frontal ownership, a separator key missing from the parent, or a
	// cycle in the clique relation.
	ErrInvariantViolation = errors.New("tree: structural invariant violation")
)

// BayesTree is the clique tree produced by elimination: a forest of
// cliques (a single root in the common connected case) plus an index
// mapping every represented key to the clique holding it as a frontal
// variable.
//
// A BayesTree is a single logically-owned mutable value: concurrent
// use of one instance requires external synchronization, while
// independent instances share nothing.
type BayesTree struct {
	roots []*Clique
	index map[core.Key]*Clique
}

// New returns an empty Bayes tree.
func New() *BayesTree {
	return &BayesTree{index: make(map[core.Key]*Clique)}
}

// Build assembles a Bayes tree from an eliminated Bayes net. The net's
// conditionals are processed in reverse elimination order; ordering is
// the elimination ordering that produced the net and drives
// deterministic parent selection.
func Build(bn core.BayesNet, ordering core.Ordering) (*BayesTree, error) {
	t := New()
	if err := t.InsertNet(bn, ordering); err != nil {
		return nil, err
	}

	return t, nil
}

// CliqueFor returns the clique holding key as a frontal variable.
func (t *BayesTree) CliqueFor(key core.Key) (*Clique, error) {
	cl, ok := t.index[key]
	if !ok {
		return nil, fmt.Errorf("key %v: %w", key, ErrKeyNotInTree)
	}

	return cl, nil
}

// Roots returns a copy of the root clique slice.
func (t *BayesTree) Roots() []*Clique {
	out := make([]*Clique, len(t.roots))
	copy(out, t.roots)

	return out
}

// Keys returns every key currently represented as a frontal variable.
func (t *BayesTree) Keys() core.KeySet {
	keys := make([]core.Key, 0, len(t.index))
	for k := range t.index {
		keys = append(keys, k)
	}

	return core.NewKeySet(keys...)
}

// Size returns the number of cliques in the tree.
//
// Complexity: O(cliques) traversal.
func (t *BayesTree) Size() int {
	n := 0
	t.walk(func(*Clique) { n++ })

	return n
}

// Cliques returns every clique in deterministic root-first order.
func (t *BayesTree) Cliques() []*Clique {
	var out []*Clique
	t.walk(func(c *Clique) { out = append(out, c) })

	return out
}

// walk visits every clique pre-order, roots first.
func (t *BayesTree) walk(visit func(*Clique)) {
	var rec func(c *Clique)
	rec = func(c *Clique) {
		visit(c)
		for _, ch := range c.children {
			rec(ch)
		}
	}
	for _, r := range t.roots {
		rec(r)
	}
}

// BayesNet exports the tree's conditionals as a Bayes net in a valid
// elimination order: within each clique conditionals are emitted
// earliest-eliminated first, children strictly before their parents,
// roots last. Back-substituting the result in reverse solves the tree.
func (t *BayesTree) BayesNet() core.BayesNet {
	var net core.BayesNet
	var rec func(c *Clique)
	rec = func(c *Clique) {
		for _, ch := range c.children {
			rec(ch)
		}
		// Stored order is reverse elimination order; undo it.
		for i := len(c.conds) - 1; i >= 0; i-- {
			net = append(net, c.conds[i])
		}
	}
	for _, r := range t.roots {
		rec(r)
	}

	return net
}

// Clone returns a structural copy: fresh Clique nodes and index, with
// the immutable Conditional values shared. Mutating the original (e.g.
// through an incremental update) never affects the clone, so Clone is
// the snapshot callers take when they need all-or-nothing semantics
// beyond what Update already guarantees.
func (t *BayesTree) Clone() *BayesTree {
	nt := New()
	var rec func(c *Clique, parent *Clique) *Clique
	rec = func(c *Clique, parent *Clique) *Clique {
		nc := &Clique{
			conds:     append([]core.Conditional(nil), c.conds...),
			frontals:  c.frontals.Clone(),
			separator: c.separator.Clone(),
			parent:    parent,
		}
		for _, k := range nc.frontals {
			nt.index[k] = nc
		}
		for _, ch := range c.children {
			nc.children = append(nc.children, rec(ch, nc))
		}

		return nc
	}
	for _, r := range t.roots {
		nt.roots = append(nt.roots, rec(r, nil))
	}

	return nt
}
