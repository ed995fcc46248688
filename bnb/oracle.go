package bnb

import (
	"context"

	"github.com/katalvlaran/bnbmilp/lp"
)

//go:generate mockgen -destination=bnbmock/mock_oracle.go -package=bnbmock github.com/katalvlaran/bnbmilp/bnb Oracle,BranchingStrategy

// Oracle solves the LP relaxation of an effective formulation.
//
// Contract:
//   - Pure: the same effective formulation yields the same relaxation.
//   - Feasibility outcomes (infeasible, unbounded, no solution) are reported via
//     lp.Relaxation.Status, not as errors.
//   - A returned error means the relaxation call itself is broken; the engine
//     aborts the whole search and never retries.
//   - Values of an optimal relaxation are aligned with e.Base.Vars.
type Oracle interface {
	Solve(ctx context.Context, e lp.Effective) (lp.Relaxation, error)
}

// OracleFunc adapts a plain function to the Oracle interface.
type OracleFunc func(ctx context.Context, e lp.Effective) (lp.Relaxation, error)

// Solve calls fn(ctx, e).
func (fn OracleFunc) Solve(ctx context.Context, e lp.Effective) (lp.Relaxation, error) {
	return fn(ctx, e)
}
