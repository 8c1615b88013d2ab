// SPDX-License-Identifier: MIT

package bnb

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// simplexTol is the pivot tolerance handed to lp.Simplex.
const simplexTol = 1e-10

// relaxation bounds a node by its LP relaxation:
//
//	min −c·x  s.t.  G·x ≤ h,  lo ≤ x ≤ hi
//
// G holds the normalised rows (dense, built once); the box is appended
// per node as ±x rows, which also keeps every column non-zero for
// lp.Convert.
type relaxation struct {
	g    []float64 // row-major m×n
	h    []float64
	m, n int
	negC []float64
}

func newRelaxation(s *search) *relaxation {
	r := &relaxation{n: s.n, negC: make([]float64, s.n)}
	for v, c := range s.c {
		r.negC[v] = -c
	}
	for _, row := range s.rows {
		if len(row.idx) == 0 {
			continue
		}
		dense := make([]float64, s.n)
		for t, v := range row.idx {
			dense[v] += row.coef[t]
		}
		r.g = append(r.g, dense...)
		r.h = append(r.h, row.rhs)
		r.m++
	}

	return r
}

// bound returns the LP optimum of the current box in maximise orientation.
// ok is false when there is no incumbent to compare against or the
// simplex did not reach an optimum; the caller then keeps the node.
func (r *relaxation) bound(s *search) (float64, bool) {
	if !s.found {
		return 0, false
	}
	var (
		rows = r.m + 2*r.n
		data = make([]float64, rows*r.n)
		h    = make([]float64, rows)
	)
	copy(data, r.g)
	copy(h, r.h)
	for v := 0; v < r.n; v++ {
		up, dn := r.m+2*v, r.m+2*v+1
		data[up*r.n+v] = 1
		data[dn*r.n+v] = -1
		h[up] = s.hi[v]
		h[dn] = -s.lo[v]
	}

	cNew, aNew, bNew := lp.Convert(r.negC, mat.NewDense(rows, r.n, data), h, nil, nil)
	optF, _, err := lp.Simplex(cNew, aNew, bNew, simplexTol, nil)
	if err != nil {
		return 0, false
	}

	return -optF, true
}
