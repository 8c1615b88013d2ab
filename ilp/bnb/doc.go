// Package bnb is a small exact branch-and-bound engine for pure integer
// linear programs. It implements ilp.Solver and is meant for the model
// sizes a descriptor-selection run produces on modest datasets; it is a
// self-contained reference engine, not a replacement for a commercial MIP
// solver.
//
// Search outline:
//  1. Every constraint is normalised to Σ a·x ≤ b rows (≥ is negated, = is
//     split in two).
//  2. Interval bound propagation runs to a fixpoint after each branching
//     decision: for each row, minActivity = Σ min(a·lo, a·hi); a row with
//     minActivity > b prunes the node, otherwise every variable's bound is
//     tightened by the row's slack and rounded to the integer lattice.
//     Variables still unbounded after the root propagation are rejected
//     with ErrUnboundedDomain.
//  3. Bounds: the objective bound is Σ max(c·lo, c·hi). With
//     Options.Relaxation the LP relaxation of the node (gonum simplex) is
//     solved as well and the tighter bound wins. When every objective
//     coefficient is integral the bound is floored before comparing.
//  4. Branching is deterministic: first unfixed variable in VarID order;
//     the value preferred by the objective is explored first (ties take
//     the upper value). General integers are split at the midpoint.
//  5. Soft limits: TimeLimit, MaxNodes and the context deadline are
//     checked every 1024 nodes (MaxNodes on every node) and reported as
//     ilp.TimedOut. Context cancellation is returned as an error.
//
// The incumbent is re-verified with Model.Check before an Optimal answer
// is returned.
package bnb
