package model

import (
	"errors"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ErrNoConvergence is returned when the eigen decomposition fails.
var ErrNoConvergence = errors.New("eigen decomposition did not converge")

// Diagonalize returns the eigenvalues of h in ascending order together with
// the matching eigenvectors.
func Diagonalize(h mat.Symmetric) ([]float64, []*mat.VecDense, error) {
	var es mat.EigenSym
	if ok := es.Factorize(h, true); !ok {
		return nil, nil, ErrNoConvergence
	}
	values := es.Values(nil)
	var vectors mat.Dense
	es.VectorsTo(&vectors)

	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return values[order[i]] < values[order[j]] })

	e := make([]float64, len(values))
	v := make([]*mat.VecDense, len(values))
	for i, k := range order {
		e[i] = values[k]
		v[i] = mat.VecDenseCopyOf(vectors.ColView(k))
	}
	return e, v, nil
}

// Integral returns ⟨left|op|right⟩.
func Integral(left mat.Vector, op mat.Matrix, right mat.Vector) float64 {
	return mat.Inner(left, op, right)
}

// NAC returns the nonadiabatic coupling ⟨si|dH|sj⟩/(ej−ei).
func NAC(dh mat.Matrix, si, sj mat.Vector, ei, ej float64) float64 {
	return Integral(si, dh, sj) / (ej - ei)
}

// NACMatrix builds the antisymmetric coupling matrix: entry (i, j) for j < i
// is NAC(dh, v[i], v[j], e[i], e[j]) and (j, i) is its negation.
func NACMatrix(dh mat.Matrix, v []*mat.VecDense, e []float64) *mat.Dense {
	n := len(v)
	nac := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			d := NAC(dh, v[i], v[j], e[i], e[j])
			nac.Set(i, j, d)
			nac.Set(j, i, -d)
		}
	}
	return nac
}

// CorrectSign flips now in place when any of its components has the
// opposite sign of the same component in ref, keeping eigenvector phases
// continuous between neighbouring grid points.
func CorrectSign(ref, now *mat.VecDense) {
	for i := 0; i < ref.Len(); i++ {
		if ref.AtVec(i)*now.AtVec(i) < 0 {
			now.ScaleVec(-1, now)
			return
		}
	}
}
