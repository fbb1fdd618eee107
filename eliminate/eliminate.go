// Package eliminate implements sequential variable elimination: it
// consumes a factor graph and an elimination ordering and produces a
// Bayes net with one conditional per ordering entry.
//
// The engine is purely structural. All elimination arithmetic is
// delegated to the Factor collaborator's CombineEliminate operation;
// the engine only collects the factors touching each variable, removes
// them from the working graph, and reinserts the residual factor.
//
// Keys absent from the ordering are never eliminated: they survive
// into separators but never become frontal variables.
//
// Errors:
//
//	ErrUnconnectedVariable - an ordering entry is referenced by no factor
//	                         (default policy; see WithIsolated).
//	core.ErrNilGraph       - nil factor graph.
//	core.ErrDuplicateKey   - the ordering repeats a key.
package eliminate

import (
	"errors"
	"fmt"

	"github.com/velatir/bayes/core"
)

// ErrUnconnectedVariable indicates an ordering entry had no factor
// referencing it during elimination. Under the default policy this is
// fatal to the whole Run call; see WithIsolated for the opt-in
// alternative.
var ErrUnconnectedVariable = errors.New("eliminate: unconnected variable in ordering")

// Options configures one elimination pass.
type Options struct {
	// Isolated, when non-nil, enables the permissive isolated-variable
	// policy: an ordering entry with no referencing factor yields the
	// trivial separator-free conditional Isolated(key) instead of
	// ErrUnconnectedVariable. symbolic.Trivial is the canonical choice.
	Isolated func(core.Key) core.Conditional
}

// Option configures Options.
type Option func(*Options)

// WithIsolated installs fn as the trivial-conditional constructor for
// isolated variables, switching the unconnected-variable policy from
// reject to allow.
func WithIsolated(fn func(core.Key) core.Conditional) Option {
	return func(o *Options) { o.Isolated = fn }
}

// DefaultOptions returns the default configuration: isolated variables
// are rejected with ErrUnconnectedVariable.
func DefaultOptions() Options { return Options{} }

// Run eliminates the graph's variables in ordering order and returns
// the resulting Bayes net, one conditional per ordering entry.
//
// Steps, per ordering key k:
//  1. Collect every working-graph factor whose key set contains k.
//  2. If none exist, apply the isolated-variable policy (reject by
//     default, trivial conditional with WithIsolated).
//  3. Delegate to CombineEliminate on the collected factors, producing
//     a conditional (frontal {k}) and a residual factor over the
//     separator.
//  4. Drop the collected factors from the working graph; reinsert the
//     residual (when non-nil).
//  5. Append the conditional to the output net.
//
// The input graph is never mutated; the engine works on a shallow copy
// of its factor references.
//
// Complexity: O(|ordering| · |factors|) structural work plus whatever
// the collaborator's elimination arithmetic costs.
func Run(g *core.FactorGraph, ordering core.Ordering, opts ...Option) (core.BayesNet, error) {
	if g == nil {
		return nil, core.ErrNilGraph
	}
	if err := ordering.Validate(); err != nil {
		return nil, fmt.Errorf("eliminate: %w", err)
	}
	opt := DefaultOptions()
	for _, apply := range opts {
		apply(&opt)
	}

	working := g.Factors()
	net := make(core.BayesNet, 0, len(ordering))
	for _, k := range ordering {
		// 1. Split the working set into factors touching k and the rest.
		var collected []core.Factor
		rest := working[:0:0]
		for _, f := range working {
			if f.Keys().Contains(k) {
				collected = append(collected, f)
			} else {
				rest = append(rest, f)
			}
		}

		// 2. Isolated-variable policy.
		if len(collected) == 0 {
			if opt.Isolated == nil {
				return nil, fmt.Errorf("key %v: %w", k, ErrUnconnectedVariable)
			}
			net = append(net, opt.Isolated(k))
			continue
		}

		// 3. Delegate the actual elimination arithmetic.
		cond, residual, err := collected[0].CombineEliminate(collected[1:], k)
		if err != nil {
			return nil, fmt.Errorf("eliminating %v: %w", k, err)
		}

		// 4. Replace the collected factors with the residual.
		working = rest
		if residual != nil {
			working = append(working, residual)
		}

		// 5. Record the conditional in elimination order.
		net = append(net, cond)
	}

	return net, nil
}
