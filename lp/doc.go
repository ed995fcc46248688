// Package lp defines the data model shared by the branch-and-bound engine and
// its relaxation oracles.
//
// A Formulation is a (mixed) integer linear program
//
//	minimize | maximize   Σ c_j·x_j
//	subject to            Σ a_ij·x_j  (≤ | ≥ | =)  b_i
//	                      0 ≤ x_j ≤ u_j,  x_j ∈ ℤ for integer j
//
// built once by its owner and then never mutated.
//
// Search nodes do not copy formulations. A node is an Effective value: the shared
// base plus an ordered list of one-variable Bound deltas (x ≤ v or x ≥ v) collected
// on the path from the root. Any oracle able to solve "base plus bounds" can serve
// the engine.
//
// Relaxation is what an oracle reports back: a Status, an optional objective and
// the relaxed variable values aligned with Formulation.Vars.
//
// Errors (sentinel):
//
//	– ErrEmptyFormulation  nil formulation or no variables.
//	– ErrDuplicateVariable two variables with one name.
//	– ErrUnknownVariable   a term, bound or objective refers to a missing variable.
//	– ErrBadCoefficient    NaN/Inf coefficient or right-hand side.
//	– ErrBadBound          negative or NaN variable upper bound.
//	– ErrBadSense          sense other than Minimize/Maximize.
//	– ErrBadRelation       relation other than LessEq/GreaterEq/Equal.
package lp
