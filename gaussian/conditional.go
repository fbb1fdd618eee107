package gaussian

import (
	"fmt"

	"github.com/velatir/bayes/core"
)

// Conditional is the Gaussian conditional r·x_f + Σ sᵢ·x_sᵢ = d
// produced by eliminating one scalar variable. Immutable.
type Conditional struct {
	frontal core.Key
	sepCols core.Ordering // separator keys, aligned with s
	r       float64
	s       []float64
	d       float64
}

// Frontals implements core.Conditional.
func (c *Conditional) Frontals() core.KeySet { return core.KeySet{c.frontal} }

// Separator implements core.Conditional.
func (c *Conditional) Separator() core.KeySet { return core.NewKeySet(c.sepCols...) }

// AsFactor implements core.Conditional: the conditional row becomes a
// single-row Jacobian factor over [frontal | separator]. The
// conversion is exact, so dissolving a clique and re-eliminating it
// reproduces the same information.
func (c *Conditional) AsFactor() core.Factor {
	cols := make([]core.Key, 0, 1+len(c.sepCols))
	cols = append(cols, c.frontal)
	cols = append(cols, c.sepCols...)
	row := make([]float64, 0, len(cols))
	row = append(row, c.r)
	row = append(row, c.s...)
	f, _ := NewFactor(cols, [][]float64{row}, []float64{c.d})

	return f
}

// Solve back-substitutes the frontal value given already-solved
// separator values.
func (c *Conditional) Solve(values map[core.Key]float64) (float64, error) {
	acc := c.d
	for i, k := range c.sepCols {
		v, ok := values[k]
		if !ok {
			return 0, fmt.Errorf("separator key %v: %w", k, ErrMissingValue)
		}
		acc -= c.s[i] * v
	}

	return acc / c.r, nil
}

// String renders the conditional as "P(x1 | {x2})".
func (c *Conditional) String() string {
	return fmt.Sprintf("P(%v | %v)", c.frontal, core.KeySet(c.sepCols))
}

// SolveNet back-substitutes an all-Gaussian Bayes net, walking it in
// reverse elimination order, and returns the value of every frontal
// variable. Feeding it tree.BayesTree.BayesNet() solves a whole tree.
func SolveNet(bn core.BayesNet) (map[core.Key]float64, error) {
	values := make(map[core.Key]float64, len(bn))
	for i := len(bn) - 1; i >= 0; i-- {
		gc, ok := bn[i].(*Conditional)
		if !ok {
			return nil, fmt.Errorf("conditional %d (%T): %w", i, bn[i], ErrNotGaussian)
		}
		v, err := gc.Solve(values)
		if err != nil {
			return nil, fmt.Errorf("solving %v: %w", gc.frontal, err)
		}
		values[gc.frontal] = v
	}

	return values, nil
}
