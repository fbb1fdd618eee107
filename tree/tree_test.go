package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velatir/bayes/core"
	"github.com/velatir/bayes/eliminate"
	"github.com/velatir/bayes/symbolic"
	"github.com/velatir/bayes/tree"
)

// buildChainTree eliminates f(1,2), f(2,3), …, f(n-1,n) under the
// natural ordering and assembles the Bayes tree.
func buildChainTree(t *testing.T, n int) *tree.BayesTree {
	t.Helper()
	g := &core.FactorGraph{}
	ord := make(core.Ordering, 0, n)
	for i := 1; i < n; i++ {
		require.NoError(t, g.Add(symbolic.NewFactor(core.Key(i), core.Key(i+1))))
	}
	for i := 1; i <= n; i++ {
		ord = append(ord, core.Key(i))
	}
	bn, err := eliminate.Run(g, ord)
	require.NoError(t, err)
	bt, err := tree.Build(bn, ord)
	require.NoError(t, err)

	return bt
}

// The chain scenario: three cliques in a line, root frontal 3.
func TestBuild_ChainProducesLinearTree(t *testing.T) {
	bt := buildChainTree(t, 3)

	assert.Equal(t, 3, bt.Size())
	require.Len(t, bt.Roots(), 1)
	root := bt.Roots()[0]
	assert.Equal(t, core.KeySet{3}, root.Frontals())
	assert.Equal(t, 0, root.Separator().Len())

	c2, err := bt.CliqueFor(2)
	require.NoError(t, err)
	assert.Same(t, root, c2.Parent())
	assert.Equal(t, core.KeySet{3}, c2.Separator())

	c1, err := bt.CliqueFor(1)
	require.NoError(t, err)
	assert.Same(t, c2, c1.Parent())
	assert.Equal(t, core.KeySet{2}, c1.Separator())
	assert.Empty(t, c1.Children())

	require.NoError(t, bt.CheckInvariants())
}

// Two conditionals with identical separators merge into one
// multifrontal clique.
func TestBuild_MultifrontalMerge(t *testing.T) {
	g, err := core.NewFactorGraph(symbolic.NewFactor(1, 3), symbolic.NewFactor(2, 3))
	require.NoError(t, err)
	ord := core.Ordering{1, 2, 3}
	bn, err := eliminate.Run(g, ord)
	require.NoError(t, err)

	bt, err := tree.Build(bn, ord)
	require.NoError(t, err)

	assert.Equal(t, 2, bt.Size())
	merged, err := bt.CliqueFor(1)
	require.NoError(t, err)
	assert.Equal(t, core.KeySet{1, 2}, merged.Frontals())
	assert.Equal(t, core.KeySet{3}, merged.Separator())
	assert.Len(t, merged.Conditionals(), 2)

	owner2, err := bt.CliqueFor(2)
	require.NoError(t, err)
	assert.Same(t, merged, owner2)

	require.NoError(t, bt.CheckInvariants())
}

func TestCliqueFor_UnknownKey(t *testing.T) {
	bt := buildChainTree(t, 3)
	_, err := bt.CliqueFor(42)
	assert.ErrorIs(t, err, tree.ErrKeyNotInTree)
}

func TestBayesTree_Keys(t *testing.T) {
	bt := buildChainTree(t, 4)
	assert.Equal(t, core.KeySet{1, 2, 3, 4}, bt.Keys())
}

// BayesNet must export a valid elimination order: every separator key
// of a conditional appears as a frontal later in the net (or never).
func TestBayesNet_ExportIsValidEliminationOrder(t *testing.T) {
	bt := buildChainTree(t, 5)
	bn := bt.BayesNet()
	require.Len(t, bn, 5)

	seen := core.KeySet{}
	for i := len(bn) - 1; i >= 0; i-- {
		// Walking from the back, all separator keys must already be seen.
		for _, k := range bn[i].Separator() {
			assert.True(t, seen.Contains(k), "separator %v of conditional %d not yet eliminated-above", k, i)
		}
		seen = seen.Union(bn[i].Frontals())
	}
}

func TestRemoveTop_DissolvesPathToRoot(t *testing.T) {
	bt := buildChainTree(t, 3)
	c1, err := bt.CliqueFor(1)
	require.NoError(t, err)

	// Contaminating key 2 removes the cliques of 2 and 3; clique 1
	// becomes an orphan.
	bn, orphans := bt.RemoveTop(core.NewKeySet(2))
	require.Len(t, bn, 2)
	require.Len(t, orphans, 1)
	assert.Same(t, c1, orphans[0])
	assert.Nil(t, orphans[0].Parent())

	// Dissolved keys left the index; the orphan's entries survive.
	_, err = bt.CliqueFor(2)
	assert.ErrorIs(t, err, tree.ErrKeyNotInTree)
	_, err = bt.CliqueFor(3)
	assert.ErrorIs(t, err, tree.ErrKeyNotInTree)
	got, err := bt.CliqueFor(1)
	require.NoError(t, err)
	assert.Same(t, c1, got)

	assert.Empty(t, bt.Roots())
}

func TestRemoveTop_UnknownKeysAreNoOps(t *testing.T) {
	bt := buildChainTree(t, 3)
	bn, orphans := bt.RemoveTop(core.NewKeySet(42))
	assert.Empty(t, bn)
	assert.Empty(t, orphans)
	assert.Equal(t, 3, bt.Size())
	require.NoError(t, bt.CheckInvariants())
}

func TestMarkTop_IsReadOnly(t *testing.T) {
	bt := buildChainTree(t, 4)
	removed, orphans := bt.MarkTop(core.NewKeySet(3))
	assert.Len(t, removed, 2) // cliques of 3 and 4
	assert.Len(t, orphans, 1) // clique of 2

	assert.Equal(t, 4, bt.Size())
	require.NoError(t, bt.CheckInvariants())
}

func TestClone_IsIndependent(t *testing.T) {
	bt := buildChainTree(t, 3)
	snapshot := bt.Clone()
	require.NoError(t, snapshot.CheckInvariants())
	assert.Equal(t, bt.Size(), snapshot.Size())

	// Mutating the original leaves the snapshot intact.
	bt.RemoveTop(core.NewKeySet(3))
	assert.Equal(t, 3, snapshot.Size())
	require.NoError(t, snapshot.CheckInvariants())

	c3, err := snapshot.CliqueFor(3)
	require.NoError(t, err)
	assert.Equal(t, core.KeySet{3}, c3.Frontals())
}

func TestInsertNet_DuplicateFrontalRejected(t *testing.T) {
	bt := buildChainTree(t, 3)

	f := symbolic.NewFactor(3)
	cond, _, err := f.CombineEliminate(nil, 3)
	require.NoError(t, err)

	err = bt.InsertNet(core.BayesNet{cond}, core.Ordering{3})
	assert.ErrorIs(t, err, tree.ErrInvariantViolation)
}

func TestFindParent_PrefersEarliestEliminatedKey(t *testing.T) {
	bt := buildChainTree(t, 3)
	// Under ordering [1,2,3] key 2 was eliminated before 3, so a
	// separator {2,3} resolves to the clique owning 2.
	parent, err := bt.FindParent(core.NewKeySet(2, 3), core.Ordering{1, 2, 3})
	require.NoError(t, err)
	c2, err := bt.CliqueFor(2)
	require.NoError(t, err)
	assert.Same(t, c2, parent)
}

func TestFindParent_EmptySeparator(t *testing.T) {
	bt := buildChainTree(t, 3)
	_, err := bt.FindParent(nil, core.Ordering{1, 2, 3})
	assert.ErrorIs(t, err, tree.ErrNoParent)
}
