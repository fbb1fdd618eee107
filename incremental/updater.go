// Package incremental implements in-place re-inference on a Bayes
// tree: when new factors arrive, only the contaminated top of the tree
// is dissolved and re-eliminated, while unaffected subtrees are
// detached as orphans and reattached unchanged.
//
// One Update call stages its work so the tree is never left
// half-mutated: contamination marking, reconstruction, ordering,
// elimination, and orphan-target resolution all happen before the
// first mutation. Any failure up to that point returns the tree
// exactly as it was.
//
// Errors:
//
//	ErrAttachment  - an orphan's separator cannot be matched to any
//	                 clique after re-elimination; fatal, non-retryable,
//	                 and detected before the tree is touched.
//	ErrNilStrategy - the updater has no ordering strategy.
package incremental

import (
	"errors"
	"fmt"

	"github.com/velatir/bayes/core"
	"github.com/velatir/bayes/eliminate"
	"github.com/velatir/bayes/order"
	"github.com/velatir/bayes/tree"
)

// Sentinel errors for incremental updates.
var (
	// ErrAttachment indicates an orphan subtree's separator key was
	// eliminated away incorrectly, leaving the orphan nowhere to hang.
	// This signals a defect in the ordering or elimination collaborator
	// and aborts the update before any mutation.
	ErrAttachment = errors.New("incremental: orphan separator has no attachment point")

	// ErrNilStrategy indicates the updater was built without an
	// ordering strategy.
	ErrNilStrategy = errors.New("incremental: nil ordering strategy")

	// ErrNilTree indicates Update was called on a nil tree.
	ErrNilTree = errors.New("incremental: nil bayes tree")
)

// Updater performs incremental updates on Bayes trees. The ordering
// strategy decides how the reduced graph is re-eliminated; elimination
// options (e.g. the isolated-variable policy) are forwarded to every
// internal elimination pass.
type Updater struct {
	strategy order.Strategy
	elimOpts []eliminate.Option
}

// New builds an Updater around the given ordering strategy.
func New(strategy order.Strategy, elimOpts ...eliminate.Option) *Updater {
	return &Updater{strategy: strategy, elimOpts: elimOpts}
}

// Update folds newFactors into t, mutating it in place and returning
// it. The call requires exclusive access to t for its duration.
//
// Steps:
//  1. Contamination: the keys referenced by newFactors.
//  2. MarkTop: every clique on the path from a contaminated key's
//     owner to its root is slated for removal; their non-removed
//     children become orphans. (Read-only.)
//  3. Reduced graph: the removed cliques' conditionals converted back
//     to factors, plus newFactors.
//  4. Ordering over the reduced graph's keys, from the strategy.
//  5. Eliminate the reduced graph into a Bayes-net fragment.
//  6. Verify every orphan separator key will have an owner afterwards;
//     ErrAttachment otherwise. This is the last fallible step before
//     mutation, so a failed Update leaves t untouched.
//  7. Excise the removed top, insert the fragment through the shared
//     index, reattach the orphans.
//
// New keys introduced only by newFactors need no special casing: they
// own no clique yet, so marking skips them and elimination gives them
// fresh cliques attached wherever their first separator dependency
// resolves (or as new roots when they have none).
func (u *Updater) Update(t *tree.BayesTree, newFactors *core.FactorGraph) (*tree.BayesTree, error) {
	if t == nil {
		return nil, ErrNilTree
	}
	if u.strategy == nil {
		return nil, ErrNilStrategy
	}
	if newFactors == nil {
		return nil, core.ErrNilGraph
	}

	// 1-2. Contamination and top marking (no mutation yet).
	contaminated := newFactors.Keys()
	removed, orphans := t.MarkTop(contaminated)

	// 3. Reduced graph: reconstruction factors plus the new factors.
	reduced := &core.FactorGraph{}
	for _, cl := range removed {
		for _, cond := range cl.Conditionals() {
			if err := reduced.Add(cond.AsFactor()); err != nil {
				return nil, fmt.Errorf("incremental: reconstructing %v: %w", cl, err)
			}
		}
	}
	reduced.AddGraph(newFactors)

	// 4. Ordering over the reduced key set.
	ordering, err := u.strategy.ComputeOrdering(reduced, reduced.Keys())
	if err != nil {
		return nil, fmt.Errorf("incremental: ordering: %w", err)
	}

	// 5. Re-eliminate.
	fragment, err := eliminate.Run(reduced, ordering, u.elimOpts...)
	if err != nil {
		return nil, fmt.Errorf("incremental: %w", err)
	}

	// 6. Resolve orphan attachment feasibility before touching t.
	// After excision the owners of a separator key are either fragment
	// frontals (everything the ordering covers becomes one) or cliques
	// that were never removed.
	willRemain := t.Keys()
	for _, cl := range removed {
		willRemain = willRemain.Difference(cl.Frontals())
	}
	dangling := fragment.Keys().Difference(fragment.Frontals()).Difference(willRemain)
	if dangling.Len() > 0 {
		return nil, fmt.Errorf("fragment separator keys %v have no owner: %w", dangling, ErrAttachment)
	}
	for _, o := range orphans {
		for _, k := range o.Separator() {
			if !ordering.Contains(k) && !willRemain.Contains(k) {
				return nil, fmt.Errorf("orphan %v separator key %v: %w", o, k, ErrAttachment)
			}
		}
	}

	// 7. Mutate: excise, insert the fragment, reattach orphans.
	t.Excise(removed, orphans)
	if err := t.InsertNet(fragment, ordering); err != nil {
		return nil, fmt.Errorf("incremental: insert: %w", err)
	}
	for _, o := range orphans {
		parent, err := t.FindParent(o.Separator(), ordering)
		if err != nil {
			return nil, fmt.Errorf("incremental: reattaching %v: %w", o, err)
		}
		if err := t.Reattach(parent, o); err != nil {
			return nil, fmt.Errorf("incremental: reattaching %v: %w", o, err)
		}
	}

	return t, nil
}
