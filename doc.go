// Package bayes is a library for probabilistic inference over factor
// graphs by symbolic elimination into a clique tree (a Bayes tree),
// and for *incremental* re-inference: folding new
// measurements into a previously computed tree without re-eliminating
// the whole graph.
//
// What's inside:
//
//	core/        — Keys, KeySets, Orderings, the Factor/Conditional
//	               collaborator contracts, FactorGraph and BayesNet
//	order/       — elimination-ordering strategies (Natural, Fixed,
//	               MinDegree)
//	eliminate/   — sequential variable elimination: graph + ordering → net
//	tree/        — Clique and BayesTree structure, batch construction,
//	               contamination removal, invariant checking
//	incremental/ — the online updater: dissolve the contaminated top,
//	               re-eliminate, reattach orphan subtrees
//	symbolic/    — structure-only factors (pure key-set arithmetic)
//	gaussian/    — dense linear-Gaussian factors on gonum, with QR
//	               elimination and back-substitution
//
// The structural algorithms never touch a factor's mathematical
// content: they depend only on key sets and the delegated
// combine-and-eliminate operation, so discrete, hybrid, or geometric
// factor kinds plug in behind the same two interfaces.
//
// Batch path:
//
//	graph + ordering → eliminate.Run → BayesNet → tree.Build → BayesTree
//
// Incremental path:
//
//	new factors + BayesTree → incremental.Updater.Update → updated BayesTree
//
// Everything is single-threaded and synchronous; independent BayesTree
// values may be worked on concurrently without coordination.
package bayes
