// Package gaussian provides a dense linear-Gaussian realization of the
// Factor collaborator contract: JacobianFactor holds rows of a least-
// squares system A·x = b over scalar variables, and elimination is a
// QR factorization of the stacked, column-ordered system (gonum).
//
// Eliminating a target variable from a set of Jacobian factors yields
// a Conditional r·x_f + Σ sᵢ·x_sᵢ = d (the first row of R) and a
// residual JacobianFactor over the separator (the remaining rows).
// Converting a Conditional back to a factor is exact, so dissolving
// and re-eliminating cliques during incremental updates loses no
// information.
//
// SolveNet back-substitutes an all-Gaussian Bayes net into the unique
// least-squares solution, which is how batch and incremental results
// are compared numerically.
//
// Variables are scalar (one dimension per key); vector-valued
// variables belong to the calling estimation pipeline, which can map
// each component to its own key.
//
// Errors:
//
//	ErrShape               - inconsistent matrix/vector dimensions.
//	ErrTargetNotReferenced - eliminate on factors that do not mention the target.
//	ErrSingular            - the target column has no usable pivot.
//	ErrMissingValue        - back-substitution lacks a separator value.
//	ErrNotGaussian         - SolveNet met a non-Gaussian conditional.
package gaussian
