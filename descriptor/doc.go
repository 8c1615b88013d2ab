// Package descriptor formulates and decodes the cluster-aware descriptor
// selection problem.
//
// Given n items partitioned into K clusters and N binary tags, a
// descriptor is a tag subset chosen for one cluster; an item is covered
// when its tag vector shares at least one tag with its own cluster's
// descriptor. A tag may be used by at most one descriptor.
//
// Three modes are supported (see Mode):
//
//	A  BudgetedMaxCoverage       max Σz   s.t. Σy ≤ B (N when B = 0)
//	B  MinTagsForCoverage        min Σy   s.t. Σz ≥ η
//	C  ClusterCappedMaxCoverage  max Σz   s.t. Σ_j y[j][k] ≤ α ∀k, Σz ≥ η
//
// Pipeline:
//
//	prob, _ := descriptor.NewProblem(matrix, tags, partition)
//	form, _ := descriptor.Synthesize(prob, params)   // immutable *ilp.Model
//	sol, _  := engine.Solve(ctx, form.Model)          // any ilp.Solver
//	res, _  := descriptor.Decode(form, sol)
//
// or simply descriptor.Solve(ctx, engine, prob, params).
//
// Modes A and B link coverage with the exact big-M pair
//
//	q[i] − N·z[i] ≤ 0          (z = 0 ⇒ q = 0)
//	N·z[i] − q[i] ≤ N − 1      (q ≥ 1 ⇒ z = 1)
//
// where q[i] counts the descriptor tags matching item i. Mode C omits q and
// only requires Σ_j B[i][j]·y[j][k(i)] ≥ z[i]: a covered flag needs a
// matching tag, but an uncovered flag is not forced to 1. The maximising
// objective makes every justified z[i] equal 1 at the optimum, so reported
// hits agree with Result.Recount there; under a time limit they may not.
//
// Synthesis and decoding are pure and synchronous. The package never logs.
package descriptor
