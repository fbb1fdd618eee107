package tree

import (
	"fmt"

	"github.com/velatir/bayes/core"
)

// CheckInvariants verifies the structural invariants of the tree and
// returns a wrapped ErrInvariantViolation describing the first
// violation found:
//
//   - the clique relation is a forest reachable from the roots, with
//     consistent parent back-references and no repeated visits;
//   - roots have empty separators;
//   - every clique's cached frontal set matches its conditionals;
//   - every separator key of a clique appears among its parent's
//     frontal or separator keys (junction-tree property);
//   - every frontal key is owned by exactly one clique and the index
//     agrees.
//
// Intended for tests and debugging; production paths never violate
// these if mutations go through the exported operations.
func (t *BayesTree) CheckInvariants() error {
	seen := make(map[*Clique]bool)
	frontalCount := 0

	var rec func(c *Clique) error
	rec = func(c *Clique) error {
		if seen[c] {
			return fmt.Errorf("clique %v reached twice (cycle or shared child): %w", c, ErrInvariantViolation)
		}
		seen[c] = true

		if len(c.conds) == 0 {
			return fmt.Errorf("empty clique: %w", ErrInvariantViolation)
		}
		var fr core.KeySet
		for _, cond := range c.conds {
			fr = fr.Union(cond.Frontals())
		}
		if !fr.Equal(c.frontals) {
			return fmt.Errorf("clique %v frontal cache mismatch (%v): %w", c, fr, ErrInvariantViolation)
		}

		// Frontal ownership: the index must point every frontal key here.
		for _, k := range c.frontals {
			owner, ok := t.index[k]
			if !ok || owner != c {
				return fmt.Errorf("frontal key %v of %v not indexed to it: %w", k, c, ErrInvariantViolation)
			}
			frontalCount++
		}

		// Junction-tree property against the parent.
		if c.parent != nil {
			visible := c.parent.frontals.Union(c.parent.separator)
			for _, k := range c.separator {
				if !visible.Contains(k) {
					return fmt.Errorf("separator key %v of %v missing from parent %v: %w",
						k, c, c.parent, ErrInvariantViolation)
				}
			}
		}

		for _, ch := range c.children {
			if ch.parent != c {
				return fmt.Errorf("child %v of %v has inconsistent parent: %w", ch, c, ErrInvariantViolation)
			}
			if err := rec(ch); err != nil {
				return err
			}
		}

		return nil
	}

	for _, r := range t.roots {
		if r.parent != nil {
			return fmt.Errorf("root %v has a parent: %w", r, ErrInvariantViolation)
		}
		if r.separator.Len() != 0 {
			return fmt.Errorf("root %v has non-empty separator: %w", r, ErrInvariantViolation)
		}
		if err := rec(r); err != nil {
			return err
		}
	}

	// Every indexed key must have been visited as a frontal, so the
	// counts agree exactly when ownership is one-to-one.
	if frontalCount != len(t.index) {
		return fmt.Errorf("index holds %d keys but cliques own %d frontals: %w",
			len(t.index), frontalCount, ErrInvariantViolation)
	}

	return nil
}
