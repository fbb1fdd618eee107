package core

// Factor is the measurement/constraint collaborator. The structural
// algorithms in this module never inspect a factor's mathematical
// content; they only read its key set and delegate elimination.
//
// Factors are immutable once created and may be shared: the same
// Factor value can be referenced by several FactorGraphs at once
// (reconstruction during an incremental update relies on this).
type Factor interface {
	// Keys returns the set of variables the factor constrains.
	Keys() KeySet

	// CombineEliminate combines the receiver with others (every factor
	// must reference target) and eliminates target, producing a
	// Conditional with frontal {target} and a residual Factor over the
	// separator. The residual is nil when the separator is empty.
	//
	// Implementations must return ErrFactorKindMismatch (wrapped) when
	// handed a factor of a foreign concrete kind.
	CombineEliminate(others []Factor, target Key) (Conditional, Factor, error)
}

// Conditional is the result of eliminating one variable: logically
// P(frontal | separator). Conditionals are immutable; cliques and
// Bayes nets share them freely.
type Conditional interface {
	// Frontals returns the eliminated variable(s). Elimination always
	// produces a single frontal; multi-frontal groupings arise at the
	// clique level, not here.
	Frontals() KeySet

	// Separator returns the variables the frontal depends on.
	Separator() KeySet

	// AsFactor converts the conditional back into a factor over
	// frontal ∪ separator. Used when a clique is dissolved so its
	// information can be re-eliminated.
	AsFactor() Factor
}
