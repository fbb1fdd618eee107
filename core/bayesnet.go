package core

// BayesNet is a sequence of Conditionals in elimination order: the
// first entry belongs to the first-eliminated variable. Traversing the
// net in reverse yields the order in which a clique tree is assembled
// (last-eliminated variable closest to the root).
type BayesNet []Conditional

// Keys returns the union of all frontal and separator keys in the net.
func (bn BayesNet) Keys() KeySet {
	var keys KeySet
	for _, c := range bn {
		keys = keys.Union(c.Frontals()).Union(c.Separator())
	}

	return keys
}

// Frontals returns the union of all frontal keys in the net, i.e. the
// variables the producing elimination pass actually eliminated.
func (bn BayesNet) Frontals() KeySet {
	var keys KeySet
	for _, c := range bn {
		keys = keys.Union(c.Frontals())
	}

	return keys
}
