// Package bnbmilp is an exact solver playground for (mixed) integer linear
// programs: a generic Branch-and-Bound engine over pluggable LP relaxations.
//
// 🚀 What is bnbmilp?
//
//	A small, pure-Go toolkit that brings together:
//		• Formulations: variables, linear constraints, objective sense (lp)
//		• Branch-and-Bound: pruning policy, branching strategies, frontiers (bnb)
//		• LP relaxation oracle on gonum's simplex (simplex)
//		• Problem encoders: graph colouring, test cover, 0/1 knapsack (model)
//		• A CLI: bnbsolve {coloring|testcover|knapsack} FILE
//
// ✨ Guarantees
//
//   - Proven optimum or proven infeasibility, never a silent partial answer:
//     a time limit or cancellation surfaces as bnb.ErrSearchTimedOut.
//   - Same optimal objective for every branching strategy and frontier.
//   - Nodes are deltas over one immutable formulation; siblings never alias.
//
// Layout:
//
//	lp/         Formulation, Variable, Constraint, Bound, Effective, Relaxation
//	bnb/        Engine, Oracle, BranchingStrategy, Frontier, Options, Step
//	simplex/    bnb.Oracle backed by gonum optimize/convex/lp
//	model/      encoders and instance parsers
//	cmd/        bnbsolve entry point
//
// Quick example (0/1 knapsack, W=50):
//
//	value  60  100  120
//	weight 10   20   30   ⇒  optimum 220 = items {1, 2}
//
//	go install github.com/katalvlaran/bnbmilp/cmd/bnbsolve@latest
package bnbmilp
