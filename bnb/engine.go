package bnb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/katalvlaran/bnbmilp/lp"
)

// Engine runs Branch-and-Bound searches of one optimization sense against one
// relaxation oracle. An Engine holds no per-search state; each Solve call owns
// its frontier, incumbent and statistics.
type Engine struct {
	sense  lp.Sense
	oracle Oracle
	opts   Options
}

// New validates the configuration and returns an Engine.
//
// Errors: ErrBadSense, ErrNilOracle, ErrBadEpsilon, ErrNilStrategy,
// ErrNilFrontier, ErrBadTimeLimit (all match ErrConfiguration).
func New(sense lp.Sense, oracle Oracle, opts ...Option) (*Engine, error) {
	if !sense.Valid() {
		return nil, ErrBadSense
	}
	if oracle == nil {
		return nil, ErrNilOracle
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	return &Engine{sense: sense, oracle: oracle, opts: o}, nil
}

// Sense returns the optimization direction the engine was built for.
func (e *Engine) Sense() lp.Sense { return e.sense }

// Options returns a copy of the engine's effective options.
func (e *Engine) Options() Options { return e.opts }

// search holds the state of one Solve call.
type search struct {
	eng      *Engine
	f        *lp.Formulation
	pol      policy
	frontier Frontier
	log      *slog.Logger
	nextID   int

	// incumbent
	bestObj float64
	bestX   []float64
	found   bool

	stats Stats
}

// Solve explores the search tree of f and returns the proven optimum, or
// Status Infeasible when no integral solution exists.
//
// Errors:
//   - formulation validation errors from package lp;
//   - ErrSenseMismatch if f.Sense differs from the engine's sense;
//   - ErrUnbounded if a relaxation reports an unbounded objective;
//   - *OracleError (matches ErrOracleFailure) if the oracle fails;
//   - ErrBadBranchVariable if the strategy returns a non-candidate;
//   - ErrSearchTimedOut (joined with the context error) on cancellation or
//     when Options.TimeLimit expires. No partial incumbent is returned.
func (e *Engine) Solve(ctx context.Context, f *lp.Formulation) (Result, error) {
	if err := f.Validate(); err != nil {
		return Result{}, err
	}
	if f.Sense != e.sense {
		return Result{}, fmt.Errorf("%w: engine %s, formulation %s", ErrSenseMismatch, e.sense, f.Sense)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if e.opts.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.TimeLimit)
		defer cancel()
	}

	s := &search{
		eng:      e,
		f:        f,
		pol:      policy{sense: e.sense, eps: e.opts.Epsilon, rounded: f.IntegralObjective()},
		frontier: e.opts.Frontier(e.sense),
		log:      e.opts.Logger,
		bestObj:  e.sense.Sentinel(),
	}

	start := time.Now()
	err := s.run(ctx)
	s.stats.Elapsed = time.Since(start)
	if err != nil {
		s.log.Warn("search aborted",
			slog.String("error", err.Error()),
			slog.Int("nodes", s.stats.Nodes),
		)
		return Result{}, err
	}

	res := s.result()
	s.log.Info("search finished",
		slog.String("status", res.Status.String()),
		slog.Float64("objective", res.Objective),
		slog.Int("nodes", s.stats.Nodes),
		slog.Int("oracle_calls", s.stats.OracleCalls),
		slog.Duration("elapsed", s.stats.Elapsed),
	)

	return res, nil
}

// run is the main loop: pop, solve, decide, branch.
func (s *search) run(ctx context.Context) error {
	s.push(newRoot(s.eng.sense))
	for {
		if err := ctx.Err(); err != nil {
			return errors.Join(ErrSearchTimedOut, err)
		}
		n, ok := s.frontier.Pop()
		if !ok {
			return nil
		}
		if err := s.visit(ctx, n); err != nil {
			return err
		}
	}
}

// visit consumes one node.
func (s *search) visit(ctx context.Context, n *Node) error {
	s.stats.Nodes++
	if n.Depth > s.stats.MaxDepth {
		s.stats.MaxDepth = n.Depth
	}

	r, err := s.solve(ctx, n)
	if err != nil {
		return err
	}
	if r.Status == lp.Unbounded {
		return fmt.Errorf("%w (node %d, depth %d)", ErrUnbounded, n.ID, n.Depth)
	}

	var candidates []int
	if r.Solved() {
		candidates = s.pol.fractional(s.f, r.Values)
	}
	d, b := s.pol.decide(r, candidates, s.bestObj)

	step := Step{
		NodeID:      n.ID,
		ParentID:    n.ParentID,
		Depth:       n.Depth,
		Added:       n.Added(),
		Relaxation:  r,
		ParentBound: n.Key,
		NodeBound:   b,
		Decision:    d,
		BranchVar:   -1,
	}

	switch d {
	case PrunedInfeasible:
		s.stats.PrunedInfeasible++
	case PrunedOptimal:
		s.stats.PrunedOptimal++
		s.bestObj = b
		s.bestX = append(s.bestX[:0], r.Values...)
		s.found = true
		s.log.Debug("incumbent improved",
			slog.Int("node", n.ID),
			slog.Float64("objective", b),
		)
	case PrunedBound:
		s.stats.PrunedBound++
	case Branched:
		v := s.eng.opts.Branching.Select(r.Values, candidates)
		if !contains(candidates, v) {
			return fmt.Errorf("%w: got %d at node %d", ErrBadBranchVariable, v, n.ID)
		}
		s.stats.Branched++
		step.BranchVar = v
		down, up := lp.Split(v, r.Values[v])
		s.push(n.child(s.id(), down, b))
		s.push(n.child(s.id(), up, b))
	}
	step.Incumbent = s.bestObj

	s.log.Debug("node",
		slog.Int("node", n.ID),
		slog.Int("depth", n.Depth),
		slog.String("status", r.Status.String()),
		slog.Float64("objective", r.Objective),
		slog.Float64("bound", b),
		slog.String("decision", d.String()),
		slog.Int("var", step.BranchVar),
	)
	if s.eng.opts.OnStep != nil {
		s.eng.opts.OnStep(step)
	}

	return nil
}

// solve calls the oracle on n and validates the answer's shape.
func (s *search) solve(ctx context.Context, n *Node) (lp.Relaxation, error) {
	s.stats.OracleCalls++
	r, err := s.eng.oracle.Solve(ctx, n.Effective(s.f))
	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return lp.Relaxation{}, errors.Join(ErrSearchTimedOut, cerr)
		}
		return lp.Relaxation{}, &OracleError{NodeID: n.ID, Depth: n.Depth, Err: err}
	}
	if r.Solved() {
		if len(r.Values) != s.f.NumVars() {
			return lp.Relaxation{}, &OracleError{NodeID: n.ID, Depth: n.Depth,
				Err: fmt.Errorf("relaxation has %d values, formulation has %d variables", len(r.Values), s.f.NumVars())}
		}
		if math.IsNaN(r.Objective) || math.IsInf(r.Objective, 0) {
			return lp.Relaxation{}, &OracleError{NodeID: n.ID, Depth: n.Depth,
				Err: fmt.Errorf("relaxation objective %v is not finite", r.Objective)}
		}
	}
	n.result = &r

	return r, nil
}

func (s *search) push(n *Node) {
	s.frontier.Push(n)
	if l := s.frontier.Len(); l > s.stats.MaxFrontier {
		s.stats.MaxFrontier = l
	}
}

func (s *search) id() int {
	s.nextID++
	return s.nextID
}

// result materializes the incumbent. Integer variables are snapped to the
// nearest integer; continuous variables keep their relaxed value.
func (s *search) result() Result {
	if !s.found {
		return Result{
			Status:    Infeasible,
			Objective: s.eng.sense.Sentinel(),
			Values:    map[string]float64{},
			Stats:     s.stats,
		}
	}
	vals := make(map[string]float64, len(s.f.Vars))
	for j, v := range s.f.Vars {
		x := s.bestX[j]
		if v.Integer {
			x = math.Round(x)
		}
		vals[v.Name] = x
	}

	return Result{Status: OptimalFound, Objective: s.bestObj, Values: vals, Stats: s.stats}
}

func contains(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}

	return false
}
