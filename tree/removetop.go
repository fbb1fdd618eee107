package tree

import "github.com/velatir/bayes/core"

// MarkTop computes, without mutating the tree, the contaminated top:
// for every key owned by a clique, every clique on the path from that
// owner to its root is marked removed. Children of removed cliques
// that are not themselves removed are reported as orphans.
//
// Keys with no frontal owner (brand-new variables) are structural
// no-ops, not errors.
//
// Both result slices are deterministic: removal follows the sorted key
// set and parent walks, orphans follow the removal order and child
// insertion order.
func (t *BayesTree) MarkTop(keys core.KeySet) (removed, orphans []*Clique) {
	marked := make(map[*Clique]bool)
	for _, k := range keys {
		cl, ok := t.index[k]
		if !ok {
			continue // new variable, nothing to dissolve
		}
		for cl != nil && !marked[cl] {
			marked[cl] = true
			removed = append(removed, cl)
			cl = cl.parent
		}
	}
	for _, cl := range removed {
		for _, ch := range cl.children {
			if !marked[ch] {
				orphans = append(orphans, ch)
			}
		}
	}

	return removed, orphans
}

// Excise detaches a previously marked top from the tree: removed
// cliques leave the root list and the frontal index, orphans are
// unhooked from their dissolved parents (their own structure and index
// entries stay untouched), and the removed cliques' conditionals are
// returned as a Bayes net ready to be converted back into factors.
//
// removed and orphans must come from MarkTop on this tree with no
// interleaved mutation.
func (t *BayesTree) Excise(removed, orphans []*Clique) core.BayesNet {
	if len(removed) == 0 {
		return nil
	}
	marked := make(map[*Clique]bool, len(removed))
	for _, cl := range removed {
		marked[cl] = true
	}

	// Drop index entries of dissolved cliques.
	for _, cl := range removed {
		for _, k := range cl.frontals {
			delete(t.index, k)
		}
	}

	// Removal always walks to a root, so removed cliques form whole
	// top subtrees; surviving roots are simply the unmarked ones.
	kept := t.roots[:0:0]
	for _, r := range t.roots {
		if !marked[r] {
			kept = append(kept, r)
		}
	}
	t.roots = kept

	// Orphans float until reattachment.
	for _, o := range orphans {
		o.parent = nil
	}

	var net core.BayesNet
	for _, cl := range removed {
		net = append(net, cl.conds...)
	}

	return net
}

// RemoveTop dissolves the contaminated top above keys in one step:
// MarkTop followed by Excise. It returns the reconstruction Bayes net
// and the detached orphan subtrees awaiting reattachment.
func (t *BayesTree) RemoveTop(keys core.KeySet) (core.BayesNet, []*Clique) {
	removed, orphans := t.MarkTop(keys)

	return t.Excise(removed, orphans), orphans
}
