package tree

import (
	"fmt"

	"github.com/velatir/bayes/core"
)

// InsertNet assembles the net's conditionals into cliques and splices
// them into the tree, processing the net in reverse elimination order.
//
// Rule, per conditional c:
//   - If the current clique exists and c's separator equals the
//     separator of the conditional previously merged into it, c joins
//     that clique (multifrontal merge).
//   - Otherwise c starts a new clique. An empty separator makes it a
//     new root; a non-empty separator attaches it under the clique
//     owning the separator key with the lowest elimination index,
//     which, by the running-intersection property, holds the whole
//     separator among its frontal and separator keys. The lookup goes
//     through the tree's shared index, so parents may be newly created
//     cliques or untouched pre-existing ones.
//
// ordering must be the elimination ordering that produced bn; it
// supplies the index positions for parent selection.
//
// Complexity: O(|bn| · s) with s the maximum separator size.
func (t *BayesTree) InsertNet(bn core.BayesNet, ordering core.Ordering) error {
	pos := ordering.Index()
	var current *Clique
	var prevSep core.KeySet
	for i := len(bn) - 1; i >= 0; i-- {
		c := bn[i]
		// Guard frontal ownership before any linking so a rejected
		// insert cannot leave a half-spliced clique behind.
		for _, k := range c.Frontals() {
			if owner, taken := t.index[k]; taken {
				return fmt.Errorf("frontal key %v already owned by %v: %w", k, owner, ErrInvariantViolation)
			}
		}
		sep := c.Separator()
		if current != nil && prevSep.Equal(sep) {
			current.merge(c)
		} else {
			cl := newClique(c)
			if sep.Len() == 0 {
				t.roots = append(t.roots, cl)
			} else {
				parent, err := t.parentFor(sep, pos)
				if err != nil {
					return err
				}
				cl.parent = parent
				parent.children = append(parent.children, cl)
			}
			current = cl
		}
		prevSep = sep
		for _, k := range c.Frontals() {
			t.index[k] = current
		}
	}

	return nil
}

// FindParent resolves the clique a subtree with the given separator
// must hang under: the owner of the separator key with the lowest
// position in ordering (keys absent from the ordering rank last).
// Used for orphan reattachment during incremental updates.
func (t *BayesTree) FindParent(separator core.KeySet, ordering core.Ordering) (*Clique, error) {
	return t.parentFor(separator, ordering.Index())
}

// parentFor picks the separator key with the minimum elimination index
// and returns its owning clique. Separator keys outside the position
// map rank after all indexed ones; ties break by ascending key, since
// KeySets iterate sorted.
func (t *BayesTree) parentFor(separator core.KeySet, pos map[core.Key]int) (*Clique, error) {
	if separator.Len() == 0 {
		return nil, fmt.Errorf("empty separator: %w", ErrNoParent)
	}
	best := separator[0]
	bestPos, bestIndexed := pos[best]
	for _, k := range separator[1:] {
		p, indexed := pos[k]
		if indexed && (!bestIndexed || p < bestPos) {
			best, bestPos, bestIndexed = k, p, true
		}
	}
	parent, ok := t.index[best]
	if !ok {
		return nil, fmt.Errorf("separator key %v: %w", best, ErrNoParent)
	}

	return parent, nil
}

// Reattach hangs a detached orphan subtree under parent. The orphan's
// internal structure and index entries are untouched; only the
// parent/child link is created.
func (t *BayesTree) Reattach(parent, orphan *Clique) error {
	if parent == nil || orphan == nil {
		return fmt.Errorf("nil clique in reattach: %w", ErrInvariantViolation)
	}
	if orphan.parent != nil {
		return fmt.Errorf("orphan %v still attached: %w", orphan, ErrInvariantViolation)
	}
	orphan.parent = parent
	parent.children = append(parent.children, orphan)

	return nil
}
