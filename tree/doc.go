// Package tree implements the Bayes tree: the clique tree obtained by
// assembling an eliminated Bayes net in reverse elimination order,
// together with the index from every variable to the clique holding it
// as a frontal.
//
// What:
//
//   - Clique: one tree node aggregating one or more conditionals that
//     share a separator, with a non-owning parent back-reference and
//     exclusively owned children.
//   - BayesTree: the forest of cliques plus the frontal-key index.
//   - Build: batch clique construction from a Bayes net. Merge rule: a
//     conditional joins the current clique exactly when its separator
//     equals the separator of the previously merged conditional.
//   - MarkTop / Excise / RemoveTop: the contamination machinery used by
//     incremental updates. They dissolve the cliques above a key set
//     back into a Bayes net and detach unaffected subtrees as orphans.
//   - CheckInvariants: structural assertions (single frontal owner,
//     junction-tree separator property, acyclicity) for tests and
//     debugging.
//
// Why:
//
//   - The Bayes tree makes marginal retrieval per variable a walk from
//     one clique toward the root, and it supports incremental
//     re-elimination: new measurements only dissolve the top of the
//     tree, never the whole graph.
//
// Invariants (hold after every exported mutation):
//
//   - Every key appears as a frontal variable in exactly one clique.
//   - Every separator key of a clique appears as a frontal or separator
//     key of its parent (junction-tree property).
//   - The parent/child relation is a forest: no cycles, one parent per
//     non-root clique, roots have empty separators.
//
// Parent back-references are plain non-owning pointers: the tree owns
// cliques strictly top-down through child slices, and Go's garbage
// collector makes the cycle harmless.
//
// Errors:
//
//	ErrKeyNotInTree        - CliqueFor on a key with no frontal owner.
//	ErrNoParent            - a separator key owns no clique during insert.
//	ErrInvariantViolation  - CheckInvariants found structural damage, or
//	                         an insert would create a duplicate frontal.
package tree
