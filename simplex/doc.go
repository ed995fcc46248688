// Package simplex provides a relaxation oracle for the branch-and-bound engine.
//
// The oracle receives an lp.Effective (shared base formulation + delta bounds),
// drops integrality and presolves: lower bounds are shifted away, fixed
// variables substituted, duplicate rows merged and unconstrained columns
// settled at the bound their cost prefers. What remains is the program
//
//	minimize    cᵀy
//	subject to  A·y (≤ | =) b,  0 ≤ y ≤ u
//
// solved by a dense two-phase tableau (gonum mat + floats) under Bland's rule.
// Should the tableau reach its pivot cap, gonum's Simplex
// (gonum.org/v1/gonum/optimize/convex/lp) is tried on the same program.
//
// Outcomes:
//
//	– optimum              → lp.Optimal with objective and values
//	– no feasible point    → lp.Infeasible
//	– improving ray        → lp.Unbounded
//	– ctx done             → ctx.Err()
//	– every method failed  → returned error (a broken relaxation call)
//
// Solver is stateless between calls: the same effective formulation always
// yields the same result.
package simplex
