// Package ilp describes integer linear programs and the contract of the
// engines that solve them.
//
// A Model is built once through a Builder and is immutable afterwards:
//
//	b := ilp.NewBuilder("example")
//	x := b.AddBinary("x")
//	y := b.AddBinary("y")
//	b.AddConstraint("pick_one", ilp.Sum(x, y), ilp.LessEq, 1)
//	b.SetObjective(ilp.Maximize, ilp.Expr{{Var: x, Coef: 2}, {Var: y, Coef: 3}})
//	m, err := b.Build()
//
// Builder methods never fail individually; the first problem (unknown
// variable, NaN coefficient, duplicate name, …) is remembered and returned
// by Build, so synthesis code stays linear.
//
// Engines implement Solver. An engine reports the outcome of a completed
// search through Solution.Status (Optimal, Infeasible, Unbounded, TimedOut)
// and reserves the error return for engine failures. Callers must keep the
// two apart: "no solution exists" is a legitimate answer, not a crash.
//
// WriteLP serialises a model in CPLEX LP text format for inspection with
// external tools; it is a diagnostic side channel only.
package ilp
