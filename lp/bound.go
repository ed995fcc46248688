package lp

import (
	"fmt"
	"math"
)

// Bound is a one-variable delta constraint added by branching:
// x[Var] ≤ Value when Upper is true, x[Var] ≥ Value otherwise.
type Bound struct {
	Var   int
	Upper bool
	Value float64
}

// AtMost returns the bound x[v] ≤ value.
func AtMost(v int, value float64) Bound { return Bound{Var: v, Upper: true, Value: value} }

// AtLeast returns the bound x[v] ≥ value.
func AtLeast(v int, value float64) Bound { return Bound{Var: v, Value: value} }

// Admits reports whether x satisfies the bound.
func (b Bound) Admits(x float64) bool {
	if b.Upper {
		return x <= b.Value
	}

	return x >= b.Value
}

// Split returns the branching pair for variable v at fractional value x:
// x[v] ≤ floor(x) and x[v] ≥ ceil(x). Every integer satisfies exactly one of them.
func Split(v int, x float64) (down, up Bound) {
	return AtMost(v, math.Floor(x)), AtLeast(v, math.Ceil(x))
}

// String implements fmt.Stringer, e.g. "x3 <= 1".
func (b Bound) String() string {
	op := ">="
	if b.Upper {
		op = "<="
	}

	return fmt.Sprintf("x%d %s %g", b.Var, op, b.Value)
}

// Effective is a base formulation plus an ordered list of delta bounds.
// It is the shape every relaxation oracle consumes; Base is shared and never
// modified, Bounds belongs to a single search node.
type Effective struct {
	Base   *Formulation
	Bounds []Bound
}

// Tightened returns the per-variable domain [lo[i], hi[i]] implied by the base
// variable bounds and every delta bound. An empty domain (lo > hi) is possible.
func (e Effective) Tightened() (lo, hi []float64) {
	n := len(e.Base.Vars)
	lo = make([]float64, n)
	hi = make([]float64, n)
	for i, v := range e.Base.Vars {
		hi[i] = v.Upper
	}
	for _, b := range e.Bounds {
		if b.Var < 0 || b.Var >= n {
			continue
		}
		if b.Upper {
			hi[b.Var] = math.Min(hi[b.Var], b.Value)
		} else {
			lo[b.Var] = math.Max(lo[b.Var], b.Value)
		}
	}

	return lo, hi
}

// Validate checks that every delta bound refers to a variable of the base.
func (e Effective) Validate() error {
	if e.Base == nil {
		return ErrEmptyFormulation
	}
	for _, b := range e.Bounds {
		if b.Var < 0 || b.Var >= len(e.Base.Vars) {
			return fmt.Errorf("%w: bound on index %d", ErrUnknownVariable, b.Var)
		}
		if !finite(b.Value) {
			return fmt.Errorf("%w: bound on index %d", ErrBadCoefficient, b.Var)
		}
	}

	return nil
}
