package bnb

import (
	"math"

	"github.com/katalvlaran/bnbmilp/lp"
)

// policy holds the per-search pruning parameters.
type policy struct {
	sense   lp.Sense
	eps     float64
	rounded bool // objective is integral on integral points
}

// integral reports whether x is within eps of an integer.
func integral(x, eps float64) bool {
	return math.Abs(x-math.Round(x)) < eps
}

// fractional returns the integer variables of f whose value in x fails the
// integrality test, in variable order. Continuous variables are never listed.
func (p policy) fractional(f *lp.Formulation, x []float64) []int {
	var out []int
	for j, v := range f.Vars {
		if v.Integer && !integral(x[j], p.eps) {
			out = append(out, j)
		}
	}

	return out
}

// bound turns a relaxation objective into the node's bound. When the objective
// is integral on integral points it is tightened by rounding toward the
// pessimistic side, with ε slack so that 4.9999999 still counts as 5.
func (p policy) bound(obj float64) float64 {
	b := obj
	switch {
	case !p.rounded:
	case p.sense == lp.Maximize:
		b = math.Floor(obj + p.eps)
	default:
		b = math.Ceil(obj - p.eps)
	}
	if b == 0 {
		return 0 // no negative zero
	}

	return b
}

// decide applies the pruning rules in order: infeasibility, optimality, bound.
// It returns the decision and the node bound (zero for PrunedInfeasible).
// The caller must have handled lp.Unbounded already.
func (p policy) decide(r lp.Relaxation, candidates []int, incumbent float64) (Decision, float64) {
	if !r.Solved() {
		return PrunedInfeasible, 0
	}

	b := p.bound(r.Objective)
	switch {
	case len(candidates) == 0 && p.sense.Better(b, incumbent):
		return PrunedOptimal, b
	case !p.sense.Better(b, incumbent):
		return PrunedBound, b
	default:
		return Branched, b
	}
}
