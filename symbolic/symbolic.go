// Package symbolic provides the structure-only Factor and Conditional
// kinds: factors that carry a key set and nothing else. They realize
// the collaborator contract of core with pure set arithmetic, which is
// exactly what the elimination, clique-tree and incremental-update
// algorithms need to be exercised and tested without any numerics.
//
// Eliminating symbolic factors on a target variable produces a
// symbolic Conditional (frontal = target, separator = remaining
// connected keys) plus a symbolic residual factor over the separator.
//
// Errors:
//
//	ErrTargetNotReferenced    - eliminate called on a factor set that does
//	                            not mention the target key.
//	core.ErrFactorKindMismatch - a non-symbolic factor was mixed in.
package symbolic

import (
	"errors"
	"fmt"

	"github.com/velatir/bayes/core"
)

// ErrTargetNotReferenced indicates CombineEliminate was invoked with a
// target key none of the combined factors reference.
var ErrTargetNotReferenced = errors.New("symbolic: target key not referenced by factors")

// Factor is a structure-only factor: a set of keys with no numeric
// content. Immutable after construction.
type Factor struct {
	keys core.KeySet
}

// NewFactor builds a symbolic factor over the given keys.
func NewFactor(keys ...core.Key) *Factor {
	return &Factor{keys: core.NewKeySet(keys...)}
}

// newFactorFromSet wraps an already-normalized KeySet without copying.
func newFactorFromSet(keys core.KeySet) *Factor {
	return &Factor{keys: keys}
}

// Keys returns the factor's key set.
func (f *Factor) Keys() core.KeySet { return f.keys.Clone() }

// String renders the factor as "f{x1 x2}" for diagnostics.
func (f *Factor) String() string { return "f" + f.keys.String() }

// CombineEliminate implements core.Factor. It unions the key sets of
// the receiver and others, removes target as the frontal variable, and
// returns the symbolic conditional plus a residual factor over the
// separator (nil when the separator is empty).
//
// Complexity: O(n·m) over n factors with m keys each.
func (f *Factor) CombineEliminate(others []core.Factor, target core.Key) (core.Conditional, core.Factor, error) {
	union := f.keys.Clone()
	for i, o := range others {
		sf, ok := o.(*Factor)
		if !ok {
			return nil, nil, fmt.Errorf("combining factor %d (%T): %w", i, o, core.ErrFactorKindMismatch)
		}
		union = union.Union(sf.keys)
	}
	if !union.Contains(target) {
		return nil, nil, fmt.Errorf("target %v over %v: %w", target, union, ErrTargetNotReferenced)
	}

	sep := union.Without(target)
	cond := &Conditional{frontal: target, separator: sep}
	if sep.Len() == 0 {
		return cond, nil, nil
	}

	return cond, newFactorFromSet(sep), nil
}

// Conditional is the structure-only result of eliminating one
// variable: P(frontal | separator) with no numeric content.
type Conditional struct {
	frontal   core.Key
	separator core.KeySet
}

// Trivial returns the separator-free conditional for an isolated
// variable. It backs the opt-in isolated-variable elimination policy.
func Trivial(k core.Key) core.Conditional {
	return &Conditional{frontal: k}
}

// Frontals returns the single frontal key as a set.
func (c *Conditional) Frontals() core.KeySet { return core.KeySet{c.frontal} }

// Separator returns the separator key set.
func (c *Conditional) Separator() core.KeySet { return c.separator.Clone() }

// AsFactor converts the conditional back into a symbolic factor over
// frontal ∪ separator.
func (c *Conditional) AsFactor() core.Factor {
	return newFactorFromSet(c.separator.Union(core.KeySet{c.frontal}))
}

// String renders the conditional as "P(x2 | {x3})".
func (c *Conditional) String() string {
	return fmt.Sprintf("P(%v | %v)", c.frontal, c.separator)
}
