package order

import (
	"container/heap"

	"github.com/velatir/bayes/core"
)

// MinDegree is the greedy minimum-degree ordering heuristic: it
// repeatedly eliminates the variable with the fewest neighbors in the
// (progressively filled-in) adjacency induced by the factor graph,
// breaking ties by ascending key. Isolated keys have degree zero and
// are eliminated first.
type MinDegree struct{}

// ComputeOrdering implements Strategy.
//
// Steps:
//  1. Build the mutual-adjacency map restricted to the requested keys:
//     two keys are adjacent when some factor references both.
//  2. Push every key onto a (degree, key) min-heap.
//  3. Pop the minimum; skip stale entries (lazy deletion). Eliminating
//     a key connects its remaining neighbors pairwise (fill-in) and
//     re-pushes their updated degrees.
//  4. Repeat until all requested keys are ordered.
//
// Complexity: O(V·D² + E log V) with D the maximum induced degree.
func (MinDegree) ComputeOrdering(g *core.FactorGraph, keys core.KeySet) (core.Ordering, error) {
	if g == nil {
		return nil, core.ErrNilGraph
	}

	// 1. Adjacency restricted to the requested keys.
	adj := make(map[core.Key]map[core.Key]struct{}, keys.Len())
	for _, k := range keys {
		adj[k] = make(map[core.Key]struct{})
	}
	for i := 0; i < g.Len(); i++ {
		fk := g.Factor(i).Keys()
		for _, a := range fk {
			if _, in := adj[a]; !in {
				continue
			}
			for _, b := range fk {
				if a == b {
					continue
				}
				if _, in := adj[b]; in {
					adj[a][b] = struct{}{}
				}
			}
		}
	}

	// 2. Seed the heap with every key's initial degree. Iterating the
	// sorted KeySet keeps heap layout deterministic.
	pq := make(degreePQ, 0, keys.Len())
	for _, k := range keys {
		pq = append(pq, degreeEntry{key: k, degree: len(adj[k])})
	}
	heap.Init(&pq)

	// 3/4. Greedy elimination with lazy deletion.
	out := make(core.Ordering, 0, keys.Len())
	eliminated := make(map[core.Key]struct{}, keys.Len())
	for pq.Len() > 0 {
		e := heap.Pop(&pq).(degreeEntry)
		if _, done := eliminated[e.key]; done {
			continue // stale duplicate
		}
		if e.degree != len(adj[e.key]) {
			continue // stale degree; a fresher entry is still queued
		}
		eliminated[e.key] = struct{}{}
		out = append(out, e.key)

		// Connect the remaining neighbors pairwise (fill-in), detach
		// the eliminated key, and refresh affected degrees.
		neighbors := make([]core.Key, 0, len(adj[e.key]))
		for n := range adj[e.key] {
			if _, done := eliminated[n]; !done {
				neighbors = append(neighbors, n)
			}
		}
		for _, n := range neighbors {
			delete(adj[n], e.key)
			for _, m := range neighbors {
				if n != m {
					adj[n][m] = struct{}{}
				}
			}
		}
		for _, n := range neighbors {
			heap.Push(&pq, degreeEntry{key: n, degree: len(adj[n])})
		}
	}

	return out, nil
}

// degreeEntry pairs a key with the degree it had when pushed.
type degreeEntry struct {
	key    core.Key
	degree int
}

// degreePQ implements heap.Interface as a (degree, key) min-heap.
type degreePQ []degreeEntry

// Len returns the number of queued entries. Complexity: O(1).
func (pq degreePQ) Len() int { return len(pq) }

// Less orders by degree, then ascending key for determinism.
func (pq degreePQ) Less(i, j int) bool {
	if pq[i].degree != pq[j].degree {
		return pq[i].degree < pq[j].degree
	}

	return pq[i].key < pq[j].key
}

// Swap exchanges two entries.
func (pq degreePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push appends an entry (called by container/heap).
func (pq *degreePQ) Push(x interface{}) { *pq = append(*pq, x.(degreeEntry)) }

// Pop removes and returns the last entry (called by container/heap).
func (pq *degreePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	e := old[n-1]
	*pq = old[:n-1]

	return e
}
