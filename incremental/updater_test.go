package incremental_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velatir/bayes/core"
	"github.com/velatir/bayes/eliminate"
	"github.com/velatir/bayes/incremental"
	"github.com/velatir/bayes/order"
	"github.com/velatir/bayes/symbolic"
	"github.com/velatir/bayes/tree"
)

// buildTree eliminates the graph under the given ordering and
// assembles the Bayes tree.
func buildTree(t *testing.T, g *core.FactorGraph, ord core.Ordering) *tree.BayesTree {
	t.Helper()
	bn, err := eliminate.Run(g, ord)
	require.NoError(t, err)
	bt, err := tree.Build(bn, ord)
	require.NoError(t, err)
	require.NoError(t, bt.CheckInvariants())

	return bt
}

func chainGraph(t *testing.T, from, to int) *core.FactorGraph {
	t.Helper()
	g := &core.FactorGraph{}
	for i := from; i < to; i++ {
		require.NoError(t, g.Add(symbolic.NewFactor(core.Key(i), core.Key(i+1))))
	}

	return g
}

func graphOf(t *testing.T, factors ...core.Factor) *core.FactorGraph {
	t.Helper()
	g, err := core.NewFactorGraph(factors...)
	require.NoError(t, err)

	return g
}

func TestUpdate_NilArguments(t *testing.T) {
	u := incremental.New(order.Natural{})
	_, err := u.Update(nil, &core.FactorGraph{})
	assert.ErrorIs(t, err, incremental.ErrNilTree)

	bt := buildTree(t, chainGraph(t, 1, 3), core.Ordering{1, 2, 3})
	_, err = u.Update(bt, nil)
	assert.ErrorIs(t, err, core.ErrNilGraph)

	_, err = incremental.New(nil).Update(bt, &core.FactorGraph{})
	assert.ErrorIs(t, err, incremental.ErrNilStrategy)
}

// Extend the {1,2,3} chain with f(3,4). The clique
// of key 1 is not contaminated and must survive untouched; key 4's
// clique hangs below key 3.
func TestUpdate_ExtendChain(t *testing.T) {
	bt := buildTree(t, chainGraph(t, 1, 3), core.Ordering{1, 2, 3})
	c1Before, err := bt.CliqueFor(1)
	require.NoError(t, err)
	c2Before, err := bt.CliqueFor(2)
	require.NoError(t, err)

	u := incremental.New(order.Fixed{4, 3})
	_, err = u.Update(bt, graphOf(t, symbolic.NewFactor(3, 4)))
	require.NoError(t, err)
	require.NoError(t, bt.CheckInvariants())

	// Clique of 1 is physically the same node.
	c1After, err := bt.CliqueFor(1)
	require.NoError(t, err)
	assert.Same(t, c1Before, c1After)

	// Key 2's clique held 3 only in its separator, so it was detached
	// as an orphan and reattached unchanged, not re-eliminated.
	c2After, err := bt.CliqueFor(2)
	require.NoError(t, err)
	assert.Same(t, c2Before, c2After)
	assert.Equal(t, core.KeySet{3}, c2After.Separator())

	// Key 4 was eliminated before 3, so its separator includes 3.
	c4, err := bt.CliqueFor(4)
	require.NoError(t, err)
	assert.True(t, c4.Separator().Contains(3))

	assert.Equal(t, core.KeySet{1, 2, 3, 4}, bt.Keys())
}

// Orphan conservation: cliques present before, minus removed, plus
// newly created, equals the cliques present after; nothing duplicated
// or dropped.
func TestUpdate_OrphanConservation(t *testing.T) {
	bt := buildTree(t, chainGraph(t, 1, 5), core.Ordering{1, 2, 3, 4, 5})

	before := bt.Cliques()
	removed, orphans := bt.MarkTop(core.NewKeySet(5, 6))
	require.NotEmpty(t, removed)
	require.NotEmpty(t, orphans)

	u := incremental.New(order.Natural{})
	_, err := u.Update(bt, graphOf(t, symbolic.NewFactor(5, 6)))
	require.NoError(t, err)
	require.NoError(t, bt.CheckInvariants())

	after := make(map[*tree.Clique]bool)
	for _, c := range bt.Cliques() {
		assert.False(t, after[c], "clique %v appears twice", c)
		after[c] = true
	}
	removedSet := make(map[*tree.Clique]bool)
	for _, c := range removed {
		removedSet[c] = true
	}
	for _, c := range before {
		if removedSet[c] {
			assert.False(t, after[c], "removed clique %v still present", c)
		} else {
			assert.True(t, after[c], "surviving clique %v dropped", c)
		}
	}
}

// Batch elimination of G1 ∪ G2 and incremental update of Build(G1)
// with G2 cover the same variables and both satisfy every invariant.
func TestUpdate_BatchIncrementalEquivalence(t *testing.T) {
	full := chainGraph(t, 1, 6)
	batch := buildTree(t, full, core.Ordering{1, 2, 3, 4, 5, 6})

	partial := buildTree(t, chainGraph(t, 1, 3), core.Ordering{1, 2, 3})
	u := incremental.New(order.Natural{})
	_, err := u.Update(partial, chainGraph(t, 3, 6))
	require.NoError(t, err)

	require.NoError(t, batch.CheckInvariants())
	require.NoError(t, partial.CheckInvariants())
	assert.Equal(t, batch.Keys(), partial.Keys())
}

// Factors over brand-new, disconnected variables grow a fresh root.
func TestUpdate_DisconnectedFactorsBecomeNewRoot(t *testing.T) {
	bt := buildTree(t, chainGraph(t, 1, 3), core.Ordering{1, 2, 3})

	u := incremental.New(order.Natural{})
	_, err := u.Update(bt, graphOf(t, symbolic.NewFactor(10, 11)))
	require.NoError(t, err)
	require.NoError(t, bt.CheckInvariants())

	assert.Len(t, bt.Roots(), 2)
	c10, err := bt.CliqueFor(10)
	require.NoError(t, err)
	// The new component's root owns 11; 10 hangs below it.
	assert.True(t, c10.Separator().Contains(11))
}

// An ordering strategy that drops a key an orphan depends on must
// abort with ErrAttachment before the tree is touched.
func TestUpdate_AttachmentErrorLeavesTreeUntouched(t *testing.T) {
	bt := buildTree(t, chainGraph(t, 1, 3), core.Ordering{1, 2, 3})

	// Fixed{4} never eliminates key 3, yet the orphan [2|3] needs it.
	u := incremental.New(order.Fixed{4})
	_, err := u.Update(bt, graphOf(t, symbolic.NewFactor(3, 4)))
	require.ErrorIs(t, err, incremental.ErrAttachment)

	// The failed update is a no-op.
	assert.Equal(t, 3, bt.Size())
	assert.Equal(t, core.KeySet{1, 2, 3}, bt.Keys())
	require.NoError(t, bt.CheckInvariants())
	c3, err := bt.CliqueFor(3)
	require.NoError(t, err)
	assert.Equal(t, core.KeySet{3}, c3.Frontals())
}

// Growing a chain one factor at a time keeps the tree valid at every
// step and never re-eliminates the stable prefix.
func TestUpdate_SequentialGrowth(t *testing.T) {
	bt := buildTree(t, chainGraph(t, 1, 2), core.Ordering{1, 2})
	u := incremental.New(order.Natural{})

	for i := 2; i < 10; i++ {
		_, err := u.Update(bt, graphOf(t, symbolic.NewFactor(core.Key(i), core.Key(i+1))))
		require.NoError(t, err, "step %d", i)
		require.NoError(t, bt.CheckInvariants(), "step %d", i)
	}
	assert.Equal(t, core.KeySet{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, bt.Keys())

	// The clique of key 1 must have stabilized long ago.
	c1, err := bt.CliqueFor(1)
	require.NoError(t, err)
	assert.Equal(t, core.KeySet{2}, c1.Separator())
}

// A unary factor on a brand-new variable grows a single-clique root.
// Elimination options (here the permissive isolated policy) are
// forwarded to the internal elimination pass.
func TestUpdate_UnaryFactorOnNewVariable(t *testing.T) {
	bt := buildTree(t, chainGraph(t, 1, 3), core.Ordering{1, 2, 3})

	lonely := symbolic.NewFactor(7)
	u := incremental.New(order.Natural{}, eliminate.WithIsolated(symbolic.Trivial))
	_, err := u.Update(bt, graphOf(t, lonely))
	require.NoError(t, err)
	require.NoError(t, bt.CheckInvariants())

	c7, err := bt.CliqueFor(7)
	require.NoError(t, err)
	assert.Equal(t, 0, c7.Separator().Len())
}
