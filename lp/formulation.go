package lp

import (
	"fmt"
	"math"
)

// Variable is a non-negative decision variable.
//
// Upper is +Inf when the variable has no upper bound. Integer marks the variable
// for the integrality test of the search; continuous variables are never branched on.
type Variable struct {
	Name    string
	Integer bool
	Upper   float64
}

// Binary returns an integer variable with domain {0, 1}.
func Binary(name string) Variable { return Variable{Name: name, Integer: true, Upper: 1} }

// Int returns an unbounded non-negative integer variable.
func Int(name string) Variable { return Variable{Name: name, Integer: true, Upper: math.Inf(1)} }

// Continuous returns an unbounded non-negative continuous variable.
func Continuous(name string) Variable { return Variable{Name: name, Upper: math.Inf(1)} }

// Term is one coefficient·variable product of a linear expression.
type Term struct {
	Var  int
	Coef float64
}

// T is shorthand for Term{Var: v, Coef: c}.
func T(v int, c float64) Term { return Term{Var: v, Coef: c} }

// Constraint is Σ Terms (Rel) RHS.
type Constraint struct {
	Name  string
	Terms []Term
	Rel   Relation
	RHS   float64
}

// Formulation is a (mixed) integer linear program over non-negative variables.
//
// A formulation is built once by its owner and then treated as immutable: the
// search never writes to it, it only layers Bound deltas on top (see Effective).
type Formulation struct {
	Sense       Sense
	Vars        []Variable
	Objective   []float64
	Constraints []Constraint

	index map[string]int
}

// NewFormulation returns an empty formulation with the given sense.
func NewFormulation(sense Sense) *Formulation {
	return &Formulation{Sense: sense, index: make(map[string]int)}
}

// AddVar appends v and returns its index. The objective coefficient starts at 0.
func (f *Formulation) AddVar(v Variable) int {
	if f.index == nil {
		f.reindex()
	}
	f.Vars = append(f.Vars, v)
	f.Objective = append(f.Objective, 0)
	idx := len(f.Vars) - 1
	if _, dup := f.index[v.Name]; !dup {
		f.index[v.Name] = idx
	}

	return idx
}

// SetObjective sets the objective coefficient of each term's variable.
// Coefficients of variables not mentioned are left unchanged.
func (f *Formulation) SetObjective(terms ...Term) {
	for _, t := range terms {
		if t.Var >= 0 && t.Var < len(f.Objective) {
			f.Objective[t.Var] = t.Coef
		}
	}
}

// AddConstraint appends a constraint and returns its index.
func (f *Formulation) AddConstraint(name string, rel Relation, rhs float64, terms ...Term) int {
	cp := make([]Term, len(terms))
	copy(cp, terms)
	f.Constraints = append(f.Constraints, Constraint{Name: name, Terms: cp, Rel: rel, RHS: rhs})

	return len(f.Constraints) - 1
}

// Index returns the index of the variable called name.
func (f *Formulation) Index(name string) (int, bool) {
	if f.index == nil || len(f.index) != len(f.Vars) {
		f.reindex()
	}
	i, ok := f.index[name]

	return i, ok
}

// NumVars returns the number of variables.
func (f *Formulation) NumVars() int { return len(f.Vars) }

func (f *Formulation) reindex() {
	f.index = make(map[string]int, len(f.Vars))
	for i, v := range f.Vars {
		if _, dup := f.index[v.Name]; !dup {
			f.index[v.Name] = i
		}
	}
}

// Validate checks the structural invariants of f.
//
// Errors: ErrEmptyFormulation, ErrBadSense, ErrDuplicateVariable, ErrBadBound,
// ErrUnknownVariable, ErrBadCoefficient, ErrBadRelation (wrapped with the
// offending variable or constraint name).
func (f *Formulation) Validate() error {
	if f == nil || len(f.Vars) == 0 {
		return ErrEmptyFormulation
	}
	if !f.Sense.Valid() {
		return ErrBadSense
	}
	if len(f.Objective) != len(f.Vars) {
		return fmt.Errorf("%w: objective has %d coefficients for %d variables",
			ErrUnknownVariable, len(f.Objective), len(f.Vars))
	}

	seen := make(map[string]struct{}, len(f.Vars))
	for i, v := range f.Vars {
		if _, dup := seen[v.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateVariable, v.Name)
		}
		seen[v.Name] = struct{}{}
		if math.IsNaN(v.Upper) || v.Upper < 0 {
			return fmt.Errorf("%w: %q", ErrBadBound, v.Name)
		}
		if !finite(f.Objective[i]) {
			return fmt.Errorf("%w: objective of %q", ErrBadCoefficient, v.Name)
		}
	}

	for _, c := range f.Constraints {
		if c.Rel != LessEq && c.Rel != GreaterEq && c.Rel != Equal {
			return fmt.Errorf("%w: constraint %q", ErrBadRelation, c.Name)
		}
		if !finite(c.RHS) {
			return fmt.Errorf("%w: rhs of constraint %q", ErrBadCoefficient, c.Name)
		}
		for _, t := range c.Terms {
			if t.Var < 0 || t.Var >= len(f.Vars) {
				return fmt.Errorf("%w: index %d in constraint %q", ErrUnknownVariable, t.Var, c.Name)
			}
			if !finite(t.Coef) {
				return fmt.Errorf("%w: constraint %q", ErrBadCoefficient, c.Name)
			}
		}
	}

	return nil
}

// IntegralObjective reports whether every integral point has an integral objective:
// each non-zero objective coefficient is integral and sits on an integer variable.
// Only then may a relaxation objective be rounded into a bound.
func (f *Formulation) IntegralObjective() bool {
	for i, c := range f.Objective {
		if c == 0 {
			continue
		}
		if !f.Vars[i].Integer || c != math.Trunc(c) {
			return false
		}
	}

	return true
}

// Evaluate returns the objective value at x. x must be aligned with Vars.
func (f *Formulation) Evaluate(x []float64) float64 {
	var z float64
	for i, c := range f.Objective {
		if i < len(x) {
			z += c * x[i]
		}
	}

	return z
}

// Feasible reports whether x satisfies every constraint, variable bound and
// integrality requirement of f within tol.
func (f *Formulation) Feasible(x []float64, tol float64) bool {
	if len(x) != len(f.Vars) {
		return false
	}
	for i, v := range f.Vars {
		if x[i] < -tol || x[i] > v.Upper+tol {
			return false
		}
		if v.Integer && math.Abs(x[i]-math.Round(x[i])) > tol {
			return false
		}
	}
	for _, c := range f.Constraints {
		lhs := c.LHS(x)
		switch c.Rel {
		case LessEq:
			if lhs > c.RHS+tol {
				return false
			}
		case GreaterEq:
			if lhs < c.RHS-tol {
				return false
			}
		case Equal:
			if math.Abs(lhs-c.RHS) > tol {
				return false
			}
		}
	}

	return true
}

// LHS evaluates the left-hand side of c at x.
func (c Constraint) LHS(x []float64) float64 {
	var s float64
	for _, t := range c.Terms {
		s += t.Coef * x[t.Var]
	}

	return s
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
