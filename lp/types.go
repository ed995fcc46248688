package lp

import (
	"errors"
	"math"
)

// Sentinel errors returned by formulation validation.
var (
	// ErrEmptyFormulation indicates a nil formulation or one without variables.
	ErrEmptyFormulation = errors.New("lp: formulation has no variables")

	// ErrDuplicateVariable indicates two variables share the same name.
	ErrDuplicateVariable = errors.New("lp: duplicate variable name")

	// ErrUnknownVariable indicates a term, bound or objective entry that refers
	// to a variable index outside the formulation.
	ErrUnknownVariable = errors.New("lp: unknown variable")

	// ErrBadCoefficient indicates a NaN or infinite coefficient or right-hand side.
	ErrBadCoefficient = errors.New("lp: coefficient must be finite")

	// ErrBadBound indicates a variable upper bound that is negative or NaN.
	ErrBadBound = errors.New("lp: variable upper bound must be >= 0")

	// ErrBadSense indicates a Sense other than Minimize or Maximize.
	ErrBadSense = errors.New("lp: unknown objective sense")

	// ErrBadRelation indicates a Relation other than LessEq, GreaterEq or Equal.
	ErrBadRelation = errors.New("lp: unknown constraint relation")
)

// Sense is the optimization direction of a formulation.
type Sense int

const (
	// Minimize asks for the smallest objective value.
	Minimize Sense = iota
	// Maximize asks for the largest objective value.
	Maximize
)

// String implements fmt.Stringer.
func (s Sense) String() string {
	switch s {
	case Minimize:
		return "minimize"
	case Maximize:
		return "maximize"
	default:
		return "unknown"
	}
}

// Valid reports whether s is Minimize or Maximize.
func (s Sense) Valid() bool { return s == Minimize || s == Maximize }

// Sentinel returns the objective value of "no solution yet":
// +Inf for Minimize and -Inf for Maximize.
func (s Sense) Sentinel() float64 {
	if s == Maximize {
		return math.Inf(-1)
	}

	return math.Inf(1)
}

// Better reports whether a is strictly better than b under s.
func (s Sense) Better(a, b float64) bool {
	if s == Maximize {
		return a > b
	}

	return a < b
}

// Relation is the comparison operator of a linear constraint.
type Relation int

const (
	// LessEq is Σ a·x ≤ rhs.
	LessEq Relation = iota
	// GreaterEq is Σ a·x ≥ rhs.
	GreaterEq
	// Equal is Σ a·x = rhs.
	Equal
)

// String implements fmt.Stringer.
func (r Relation) String() string {
	switch r {
	case LessEq:
		return "<="
	case GreaterEq:
		return ">="
	case Equal:
		return "=="
	default:
		return "?"
	}
}

// Status classifies the outcome of one relaxation solve.
type Status int

const (
	// Optimal means the relaxation was solved to optimality.
	Optimal Status = iota
	// Infeasible means the relaxation has no feasible point.
	Infeasible
	// Unbounded means the relaxation objective is unbounded in the optimizing direction.
	Unbounded
	// NoSolutionFound means the oracle stopped without a feasible point or a proof
	// of infeasibility.
	NoSolutionFound
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Optimal:
		return "OPTIMAL"
	case Infeasible:
		return "INFEASIBLE"
	case Unbounded:
		return "UNBOUNDED"
	case NoSolutionFound:
		return "NO_SOLUTION_FOUND"
	default:
		return "UNKNOWN"
	}
}

// Relaxation is the answer of a relaxation oracle for one effective formulation.
//
// Objective is meaningful only when HasObjective is true. Values is aligned with
// the Vars slice of the base formulation.
type Relaxation struct {
	Status       Status
	Objective    float64
	HasObjective bool
	Values       []float64
}

// Solved reports whether r carries a usable optimum (OPTIMAL with an objective).
func (r Relaxation) Solved() bool { return r.Status == Optimal && r.HasObjective }
