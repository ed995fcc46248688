package bnb

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/bnbmilp/lp"
)

// Sentinel errors returned by the engine.
var (
	// ErrConfiguration is matched by every configuration error below.
	ErrConfiguration = errors.New("bnb: invalid configuration")

	// ErrBadEpsilon indicates an integrality tolerance ε ≤ 0 (or NaN/Inf).
	ErrBadEpsilon = fmt.Errorf("%w: epsilon must be a positive finite number", ErrConfiguration)

	// ErrNilOracle indicates that no relaxation oracle was supplied.
	ErrNilOracle = fmt.Errorf("%w: relaxation oracle is nil", ErrConfiguration)

	// ErrNilStrategy indicates that no branching strategy was supplied.
	ErrNilStrategy = fmt.Errorf("%w: branching strategy is nil", ErrConfiguration)

	// ErrNilFrontier indicates that no frontier constructor was supplied.
	ErrNilFrontier = fmt.Errorf("%w: frontier constructor is nil", ErrConfiguration)

	// ErrBadSense indicates an engine sense other than lp.Minimize / lp.Maximize.
	ErrBadSense = fmt.Errorf("%w: unknown sense", ErrConfiguration)

	// ErrBadTimeLimit indicates a negative time limit.
	ErrBadTimeLimit = fmt.Errorf("%w: time limit must be non-negative", ErrConfiguration)

	// ErrSenseMismatch indicates a formulation whose declared sense differs from
	// the sense the engine was built for.
	ErrSenseMismatch = fmt.Errorf("%w: formulation sense differs from engine sense", ErrConfiguration)

	// ErrBadBranchVariable indicates that the branching strategy picked a variable
	// that is not one of the node's fractional integer variables.
	ErrBadBranchVariable = fmt.Errorf("%w: branching strategy returned a non-candidate variable", ErrConfiguration)

	// ErrOracleFailure is matched by every OracleError.
	ErrOracleFailure = errors.New("bnb: relaxation oracle failed")

	// ErrSearchTimedOut indicates that the search was abandoned because its
	// context was cancelled or its time limit expired. The partial incumbent is
	// discarded; this is never reported as infeasibility.
	ErrSearchTimedOut = errors.New("bnb: search abandoned before completion")

	// ErrUnbounded indicates a relaxation with an unbounded objective: no finite
	// bound exists, so neither optimality nor infeasibility can be proven.
	ErrUnbounded = errors.New("bnb: relaxation is unbounded")
)

// OracleError wraps a failure of the relaxation oracle on a specific node.
// It matches ErrOracleFailure with errors.Is and unwraps to the oracle's error.
type OracleError struct {
	NodeID int
	Depth  int
	Err    error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("bnb: relaxation oracle failed on node %d (depth %d): %v", e.NodeID, e.Depth, e.Err)
}

// Unwrap returns the oracle's error.
func (e *OracleError) Unwrap() error { return e.Err }

// Is reports whether target is ErrOracleFailure.
func (e *OracleError) Is(target error) bool { return target == ErrOracleFailure }

// Status is the outcome of a completed search.
type Status int

const (
	// OptimalFound means an integral solution was found and proven optimal.
	OptimalFound Status = iota
	// Infeasible means the search completed without any integral solution.
	Infeasible
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case OptimalFound:
		return "OPTIMAL_FOUND"
	case Infeasible:
		return "INFEASIBLE"
	default:
		return "UNKNOWN"
	}
}

// Decision records what the pruning policy did with a solved node.
type Decision int

const (
	// PrunedInfeasible: no usable relaxation optimum (infeasible, no solution, or no objective).
	PrunedInfeasible Decision = iota
	// PrunedOptimal: integral and strictly better than the incumbent; incumbent replaced.
	PrunedOptimal
	// PrunedBound: the node's bound cannot strictly improve the incumbent.
	PrunedBound
	// Branched: the node survived every check and produced two children.
	Branched
)

// String implements fmt.Stringer.
func (d Decision) String() string {
	switch d {
	case PrunedInfeasible:
		return "pruned-infeasible"
	case PrunedOptimal:
		return "pruned-optimal"
	case PrunedBound:
		return "pruned-bound"
	case Branched:
		return "branched"
	default:
		return "unknown"
	}
}

// Step is the trace record of one consumed node, delivered to Options.OnStep.
//
// ParentID is -1 for the root. Added is the delta bound that created the node
// (zero value for the root). ParentBound is the bound of the parent; the root
// gets the optimistic infinity (+Inf for maximize, -Inf for minimize).
// NodeBound is meaningful unless Decision is PrunedInfeasible. BranchVar is -1
// unless Decision is Branched. Incumbent is the incumbent objective after the
// decision was applied.
type Step struct {
	NodeID      int
	ParentID    int
	Depth       int
	Added       lp.Bound
	Relaxation  lp.Relaxation
	ParentBound float64
	NodeBound   float64
	Incumbent   float64
	Decision    Decision
	BranchVar   int
}

// Stats summarizes the work done by one Solve call.
type Stats struct {
	Nodes            int // nodes consumed
	OracleCalls      int // relaxation solves
	Branched         int
	PrunedInfeasible int
	PrunedOptimal    int
	PrunedBound      int
	MaxDepth         int
	MaxFrontier      int
	Elapsed          time.Duration
}

// Result is the outcome of a completed search.
//
// For Infeasible, Values is empty and Objective is the sense's sentinel
// (+Inf for minimize, -Inf for maximize). Integer variables hold exact integers.
type Result struct {
	Status    Status
	Objective float64
	Values    map[string]float64
	Stats     Stats
}

// Int returns the value of an integer variable as int64.
func (r Result) Int(name string) (int64, bool) {
	v, ok := r.Values[name]
	if !ok {
		return 0, false
	}

	return int64(math.Round(v)), true
}
