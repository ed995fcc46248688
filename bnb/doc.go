// Package bnb implements a generic Branch-and-Bound engine for (mixed) integer
// linear programs on top of a pluggable LP-relaxation Oracle.
//
// The engine never solves LPs itself. Each search node is a list of one-variable
// bounds layered over the immutable root formulation (lp.Effective); the oracle
// turns that into an lp.Relaxation and the engine decides what to do with it.
//
// Per node, in this order:
//
//  1. Infeasibility: the relaxation is INFEASIBLE, NO_SOLUTION_FOUND, or OPTIMAL
//     without an objective ⇒ prune.
//  2. Optimality: every integer variable is within ε of an integer and the bound
//     strictly improves the incumbent ⇒ the node becomes the incumbent; prune.
//  3. Bound: the bound does not strictly improve the incumbent ⇒ prune.
//  4. Otherwise branch on the variable chosen by the BranchingStrategy:
//     x ≤ floor(v) and x ≥ ceil(v), two children, each with its own copy of the
//     parent's bounds plus one new bound.
//
// The bound of a node is its relaxation objective, tightened to ceil(obj−ε)
// (minimize) or floor(obj+ε) (maximize) when every integral point has an
// integral objective (lp.Formulation.IntegralObjective).
//
// An UNBOUNDED relaxation aborts the search with ErrUnbounded: no finite bound
// exists to prune against, so neither optimality nor infeasibility can be proven.
//
// Frontiers:
//
//	– DepthFirst: LIFO; the "up" child (x ≥ ceil) is explored first.
//	– BestBound:  most favorable inherited key first; the node's own relaxation
//	              is solved when it is selected.
//
// Branching strategies:
//
//	– ClosestToHalf:    fractional part closest to 0.5 (default).
//	– FirstFractional:  first fractional integer variable in variable order.
//	– RandomFractional: uniform choice from a seeded stream.
//
// The proven optimum objective does not depend on the strategy or frontier;
// only the explored tree and, on ties, the returned solution do.
//
// Errors (sentinel):
//
//	– ErrConfiguration family (ErrBadEpsilon, ErrNilOracle, ...) from New,
//	  ErrSenseMismatch and ErrBadBranchVariable from Solve.
//	– ErrOracleFailure: matched by *OracleError; fatal, never retried.
//	– ErrSearchTimedOut: context cancelled or TimeLimit expired.
//	– ErrUnbounded: an unbounded relaxation was met.
//
// Example usage:
//
//	eng, err := bnb.New(lp.Maximize, simplex.New(),
//	    bnb.WithFrontier(bnb.BestBound),
//	    bnb.WithEpsilon(1e-6),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := eng.Solve(ctx, f)
package bnb
