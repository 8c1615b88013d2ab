// SPDX-License-Identifier: MIT

// Package descriptor - ILP synthesis for cluster descriptors.
//
// Synthesize turns a Problem and mode Params into an immutable ilp.Model
// plus the variable arenas the decoder reads back.
//
// Rationale (succinct):
//  1. Params are validated before the first variable exists, so a bad
//     mode/parameter mix never reaches the builder.
//  2. Arenas: y is flattened as j*K+k, z and q by item; VarIDs follow
//     that order, which keeps LP dumps and engine branching stable.
//  3. Scores use the precomputed item→cluster lookup, so each item row
//     touches only its own cluster's y column block.
//  4. Modes A and B link z to the integer score q with the big-M pair
//     q ≤ N·z and N·z ≤ q + N − 1 (M = N, the largest possible score).
//  5. Mode C drops q and keeps only score ≥ z; the maximised objective
//     pushes z up only where a descriptor tag justifies it.
//
// Complexity:
//   - Variables: N·K + n (+ n for q in A, B).
//   - Constraints: N + 3n + 1 (A), N + 3n + 1 (B), N + n + K + 1 (C).
//   - Nonzeros and time: O(N·K + nnz(B)) where nnz(B) counts item tags.

package descriptor

import (
	"strconv"

	"github.com/katalvlaran/tagcover/ilp"
)

// Formulation is a synthesized model together with the variable arenas
// needed to read a solution back.
type Formulation struct {
	Model   *ilp.Model
	Problem *Problem
	Params  Params

	n, tags, k int
	y          []ilp.VarID // tag j, cluster k at j*K+k
	z          []ilp.VarID
	q          []ilp.VarID // nil in mode C
}

// Y returns the variable y[j][k] (tag j in cluster k's descriptor).
func (f *Formulation) Y(j, k int) ilp.VarID { return f.y[j*f.k+k] }

// Z returns the variable z[i] (item i covered).
func (f *Formulation) Z(i int) ilp.VarID { return f.z[i] }

// Q returns q[i] (matching descriptor tags of item i); ok is false in mode C.
func (f *Formulation) Q(i int) (ilp.VarID, bool) {
	if f.q == nil {
		return 0, false
	}

	return f.q[i], true
}

// HasQ reports whether the formulation carries the q arena (modes A, B).
func (f *Formulation) HasQ() bool { return f.q != nil }

// Synthesize validates params and builds the ILP for prob.
//
// Variables, in VarID order: y_j,k (N·K binaries), z_i (n binaries) and,
// in modes A and B, q_i (n non-negative integers).
//
// Constraints:
//
//	excl_j      Σ_k y[j][k] ≤ 1                    all modes
//	score_i     q[i] − Σ_j B[i][j]·y[j][k(i)] = 0  A, B
//	link_up_i   q[i] − N·z[i] ≤ 0                  A, B
//	link_dn_i   N·z[i] − q[i] ≤ N − 1              A, B
//	budget      Σ y ≤ B (N when B = 0)             A
//	hit_i       Σ_j B[i][j]·y[j][k(i)] − z[i] ≥ 0  C
//	cap_k       Σ_j y[j][k] ≤ α (N when α = 0)     C
//	cover       Σ z ≥ η                            B, C
//
// Objective: maximise Σz in modes A and C, minimise Σy in mode B.
func Synthesize(prob *Problem, params Params) (*Formulation, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := prob.validate(); err != nil {
		return nil, err
	}

	var (
		n    = prob.Items()
		nt   = prob.NumTags()
		k    = prob.Clusters()
		of   = prob.Partition.Assignment()
		mat  = prob.Matrix
		bigM = float64(nt)
		b    = ilp.NewBuilder("descriptor_" + params.Mode.String())
		f    = &Formulation{Problem: prob, Params: params, n: n, tags: nt, k: k}
		i, j int
		c    int
	)

	f.y = make([]ilp.VarID, nt*k)
	for j = 0; j < nt; j++ {
		for c = 0; c < k; c++ {
			f.y[j*k+c] = b.AddBinary("y_" + strconv.Itoa(j) + "," + strconv.Itoa(c))
		}
	}
	f.z = make([]ilp.VarID, n)
	for i = 0; i < n; i++ {
		f.z[i] = b.AddBinary("z_" + strconv.Itoa(i))
	}
	if params.Mode != ClusterCappedMaxCoverage {
		f.q = make([]ilp.VarID, n)
		for i = 0; i < n; i++ {
			f.q[i] = b.AddNonNegInteger("q_" + strconv.Itoa(i))
		}
	}

	// Tag exclusivity.
	for j = 0; j < nt; j++ {
		e := make(ilp.Expr, k)
		for c = 0; c < k; c++ {
			e[c] = ilp.Term{Var: f.Y(j, c), Coef: 1}
		}
		b.AddConstraint("excl_"+strconv.Itoa(j), e, ilp.LessEq, 1)
	}

	// score(i) = Σ_j B[i][j]·y[j][k(i)], restricted to the item's own cluster.
	score := func(i int, sign float64, e ilp.Expr) ilp.Expr {
		for j := 0; j < nt; j++ {
			if mat.Has(i, j) {
				e = append(e, ilp.Term{Var: f.Y(j, of[i]), Coef: sign})
			}
		}
		return e
	}

	if f.q != nil {
		for i = 0; i < n; i++ {
			id := strconv.Itoa(i)
			b.AddConstraint("score_"+id, score(i, -1, ilp.Expr{{Var: f.q[i], Coef: 1}}), ilp.Equal, 0)
			b.AddConstraint("link_up_"+id, ilp.Expr{{Var: f.q[i], Coef: 1}, {Var: f.z[i], Coef: -bigM}}, ilp.LessEq, 0)
			b.AddConstraint("link_dn_"+id, ilp.Expr{{Var: f.z[i], Coef: bigM}, {Var: f.q[i], Coef: -1}}, ilp.LessEq, bigM-1)
		}
	} else {
		for i = 0; i < n; i++ {
			e := score(i, 1, make(ilp.Expr, 0, nt+1))
			e = append(e, ilp.Term{Var: f.z[i], Coef: -1})
			b.AddConstraint("hit_"+strconv.Itoa(i), e, ilp.GreaterEq, 0)
		}
	}

	allY := ilp.Sum(f.y...)
	allZ := ilp.Sum(f.z...)
	switch params.Mode {
	case BudgetedMaxCoverage:
		b.AddConstraint("budget", allY, ilp.LessEq, float64(orAll(params.Budget, nt)))
		b.SetObjective(ilp.Maximize, allZ)
	case MinTagsForCoverage:
		b.AddConstraint("cover", allZ, ilp.GreaterEq, float64(params.Threshold))
		b.SetObjective(ilp.Minimize, allY)
	case ClusterCappedMaxCoverage:
		capacity := float64(orAll(params.ClusterCap, nt))
		for c = 0; c < k; c++ {
			e := make(ilp.Expr, nt)
			for j = 0; j < nt; j++ {
				e[j] = ilp.Term{Var: f.Y(j, c), Coef: 1}
			}
			b.AddConstraint("cap_"+strconv.Itoa(c), e, ilp.LessEq, capacity)
		}
		b.AddConstraint("cover", allZ, ilp.GreaterEq, float64(params.Threshold))
		b.SetObjective(ilp.Maximize, allZ)
	}

	m, err := b.Build()
	if err != nil {
		return nil, err
	}
	f.Model = m

	return f, nil
}

// orAll maps the "0 means unconstrained" convention onto N.
func orAll(v, all int) int {
	if v == 0 {
		return all
	}

	return v
}
