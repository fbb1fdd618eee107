package gaussian

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/velatir/bayes/core"
)

// Sentinel errors for Gaussian factors and elimination.
var (
	// ErrShape indicates inconsistent dimensions in a factor definition.
	ErrShape = errors.New("gaussian: inconsistent shape")

	// ErrTargetNotReferenced indicates elimination was requested on a
	// variable none of the combined factors reference.
	ErrTargetNotReferenced = errors.New("gaussian: target key not referenced by factors")

	// ErrSingular indicates the target column vanished under QR, so no
	// conditional can be formed (underdetermined system).
	ErrSingular = errors.New("gaussian: singular pivot while eliminating")

	// ErrMissingValue indicates back-substitution needed a separator
	// value that was not yet solved.
	ErrMissingValue = errors.New("gaussian: missing separator value")

	// ErrNotGaussian indicates a conditional of a foreign kind inside
	// an all-Gaussian operation.
	ErrNotGaussian = errors.New("gaussian: conditional is not gaussian")
)

// pivotEps is the smallest magnitude accepted as a QR pivot.
const pivotEps = 1e-12

// JacobianFactor is a dense least-squares block: rows of A·x = b over
// the scalar variables named by cols. Immutable after construction.
type JacobianFactor struct {
	cols core.Ordering // column keys, in column order
	a    *mat.Dense    // m×len(cols)
	b    *mat.VecDense // m
}

// NewFactor builds a Jacobian factor. rows holds the matrix A row by
// row with one coefficient per column key; rhs is b.
func NewFactor(cols []core.Key, rows [][]float64, rhs []float64) (*JacobianFactor, error) {
	n := len(cols)
	m := len(rows)
	if n == 0 || m == 0 || len(rhs) != m {
		return nil, fmt.Errorf("cols=%d rows=%d rhs=%d: %w", n, m, len(rhs), ErrShape)
	}
	if core.NewKeySet(cols...).Len() != n {
		return nil, fmt.Errorf("repeated column key: %w", ErrShape)
	}
	data := make([]float64, 0, m*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("row %d has %d coefficients, want %d: %w", i, len(row), n, ErrShape)
		}
		data = append(data, row...)
	}

	return &JacobianFactor{
		cols: append(core.Ordering(nil), cols...),
		a:    mat.NewDense(m, n, data),
		b:    mat.NewVecDense(m, append([]float64(nil), rhs...)),
	}, nil
}

// NewUnary builds the single-row prior factor a·x = rhs on one key.
func NewUnary(k core.Key, a, rhs float64) (*JacobianFactor, error) {
	return NewFactor([]core.Key{k}, [][]float64{{a}}, []float64{rhs})
}

// NewBinary builds the single-row factor a1·x1 + a2·x2 = rhs, the shape
// of an odometry or loop-closure constraint between two variables.
// k1 and k2 must differ; repeating a key is ErrShape.
func NewBinary(k1, k2 core.Key, a1, a2, rhs float64) (*JacobianFactor, error) {
	return NewFactor([]core.Key{k1, k2}, [][]float64{{a1, a2}}, []float64{rhs})
}

// Keys implements core.Factor.
func (f *JacobianFactor) Keys() core.KeySet { return core.NewKeySet(f.cols...) }

// Rows returns the number of rows in the factor.
func (f *JacobianFactor) Rows() int { m, _ := f.a.Dims(); return m }

// CombineEliminate implements core.Factor: it stacks the receiver and
// others into one augmented system ordered [target | separator | b],
// QR-factorizes it, and splits R into the conditional on target (first
// row) and the residual factor over the separator (remaining rows).
//
// Complexity: O(m·n²) for the stacked m×n system.
func (f *JacobianFactor) CombineEliminate(others []core.Factor, target core.Key) (core.Conditional, core.Factor, error) {
	factors := make([]*JacobianFactor, 0, len(others)+1)
	factors = append(factors, f)
	union := f.Keys()
	for i, o := range others {
		jf, ok := o.(*JacobianFactor)
		if !ok {
			return nil, nil, fmt.Errorf("combining factor %d (%T): %w", i, o, core.ErrFactorKindMismatch)
		}
		factors = append(factors, jf)
		union = union.Union(jf.Keys())
	}
	if !union.Contains(target) {
		return nil, nil, fmt.Errorf("target %v over %v: %w", target, union, ErrTargetNotReferenced)
	}

	// Column layout: target first, then the separator in key order,
	// then the right-hand side as the augmented last column.
	sep := union.Without(target)
	n := 1 + sep.Len()
	colOf := make(map[core.Key]int, n)
	colOf[target] = 0
	for i, k := range sep {
		colOf[k] = 1 + i
	}

	totalRows := 0
	for _, jf := range factors {
		totalRows += jf.Rows()
	}
	// gonum QR needs at least as many rows as columns; zero rows add
	// no information and keep the factorization well defined.
	paddedRows := totalRows
	if paddedRows < n+1 {
		paddedRows = n + 1
	}
	aug := mat.NewDense(paddedRows, n+1, nil)
	r := 0
	for _, jf := range factors {
		m, _ := jf.a.Dims()
		for i := 0; i < m; i++ {
			for j, k := range jf.cols {
				aug.Set(r, colOf[k], jf.a.At(i, j))
			}
			aug.Set(r, n, jf.b.AtVec(i))
			r++
		}
	}

	var qr mat.QR
	qr.Factorize(aug)
	var rm mat.Dense
	qr.RTo(&rm)

	pivot := rm.At(0, 0)
	if math.Abs(pivot) < pivotEps {
		return nil, nil, fmt.Errorf("target %v: %w", target, ErrSingular)
	}
	s := make([]float64, sep.Len())
	for i := range s {
		s[i] = rm.At(0, 1+i)
	}
	cond := &Conditional{
		frontal: target,
		sepCols: core.Ordering(sep.Clone()),
		r:       pivot,
		s:       s,
		d:       rm.At(0, n),
	}
	if sep.Len() == 0 {
		return cond, nil, nil
	}

	// Residual rows: R[1:n, 1:n] with the augmented column as rhs.
	// Rows the factorization zeroed out (row padding, rank collapse)
	// carry no information and are dropped.
	resRows := make([][]float64, 0, sep.Len())
	resRHS := make([]float64, 0, sep.Len())
	for i := 0; i < sep.Len(); i++ {
		row := make([]float64, sep.Len())
		zero := true
		for j := 0; j < sep.Len(); j++ {
			row[j] = rm.At(1+i, 1+j)
			if math.Abs(row[j]) >= pivotEps {
				zero = false
			}
		}
		rhs := rm.At(1+i, n)
		if zero && math.Abs(rhs) < pivotEps {
			continue
		}
		resRows = append(resRows, row)
		resRHS = append(resRHS, rhs)
	}
	if len(resRows) == 0 {
		return cond, nil, nil
	}
	residual, err := NewFactor([]core.Key(sep), resRows, resRHS)
	if err != nil {
		return nil, nil, fmt.Errorf("residual over %v: %w", sep, err)
	}

	return cond, residual, nil
}
