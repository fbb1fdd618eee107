package tree

import (
	"strings"

	"github.com/velatir/bayes/core"
)

// Clique is one node of a Bayes tree. It aggregates one or more
// conditionals sharing a common separator; its frontal variables are
// the union of the conditionals' frontals.
//
// Conditionals are stored in reverse elimination order (the order the
// tree is assembled in): the first stored conditional belongs to the
// last-eliminated variable of the clique.
//
// The parent pointer is a non-owning back-reference; the tree owns
// cliques top-down through the children slices.
type Clique struct {
	conds     []core.Conditional
	frontals  core.KeySet
	separator core.KeySet
	parent    *Clique
	children  []*Clique
}

// newClique starts a clique holding a single conditional.
func newClique(c core.Conditional) *Clique {
	return &Clique{
		conds:     []core.Conditional{c},
		frontals:  c.Frontals().Clone(),
		separator: c.Separator().Clone(),
	}
}

// merge appends a conditional whose separator equals the clique's
// separator, widening the frontal set (multifrontal merge).
func (c *Clique) merge(cond core.Conditional) {
	c.conds = append(c.conds, cond)
	c.frontals = c.frontals.Union(cond.Frontals())
}

// Frontals returns the union of the contained conditionals' frontal
// keys.
func (c *Clique) Frontals() core.KeySet { return c.frontals.Clone() }

// Separator returns the clique's separator: the keys its frontals
// depend on, all of which appear in the parent clique.
func (c *Clique) Separator() core.KeySet { return c.separator.Clone() }

// Parent returns the parent clique, or nil for a root.
func (c *Clique) Parent() *Clique { return c.parent }

// Children returns a copy of the child slice.
func (c *Clique) Children() []*Clique {
	out := make([]*Clique, len(c.children))
	copy(out, c.children)

	return out
}

// Conditionals returns a copy of the contained conditionals, in
// reverse elimination order (last-eliminated first).
func (c *Clique) Conditionals() []core.Conditional {
	out := make([]core.Conditional, len(c.conds))
	copy(out, c.conds)

	return out
}

// String renders the clique as "[x1 x2 | x3]" for diagnostics.
func (c *Clique) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, k := range c.frontals {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k.String())
	}
	if c.separator.Len() > 0 {
		b.WriteString(" | ")
		for i, k := range c.separator {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(k.String())
		}
	}
	b.WriteByte(']')

	return b.String()
}
