package simplex

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/bnbmilp/lp"
)

// ErrTooManyEqualities is returned by the gonum fallback when the equality rows
// outnumber the columns; gonum's Simplex requires a wide matrix.
var ErrTooManyEqualities = errors.New("simplex: more equality rows than columns")

// DefaultTolerance is the pivot and reduced-cost tolerance of the tableau.
const DefaultTolerance = 1e-9

// Solver solves LP relaxations of effective formulations. The zero value is
// ready to use. A Solver holds no per-call state and may be shared.
type Solver struct {
	tol       float64
	maxPivots int
	methods   []method
}

// method solves a standard program; a non-nil error hands over to the next one.
type method func(s *Solver, ctx context.Context, std standard) ([]float64, lp.Status, error)

var defaultMethods = []method{(*Solver).bland, (*Solver).gonum}

// Option configures a Solver.
type Option func(*Solver)

// WithTolerance sets the pivot and reduced-cost tolerance of the tableau.
// Non-positive values are ignored.
func WithTolerance(tol float64) Option {
	return func(s *Solver) {
		if tol > 0 {
			s.tol = tol
		}
	}
}

// WithMaxPivots caps the pivots of one tableau solve before the gonum
// fallback takes over. Zero or negative selects a cap from the problem size.
func WithMaxPivots(n int) Option {
	return func(s *Solver) {
		if n > 0 {
			s.maxPivots = n
		}
	}
}

// New returns a Solver configured by opts.
func New(opts ...Option) *Solver {
	s := &Solver{tol: DefaultTolerance}
	for _, o := range opts {
		o(s)
	}

	return s
}

func (s *Solver) tolerance() float64 {
	if s.tol <= 0 {
		return DefaultTolerance
	}

	return s.tol
}

// Solve solves the LP relaxation of e (integrality dropped).
//
// Steps:
//  1. Presolve: collapse delta bounds into domains, shift lower bounds,
//     substitute fixed variables, merge duplicate rows and settle columns
//     that no row constrains. Many nodes end here.
//  2. Run the two-phase tableau with Bland's rule, checking ctx every pivot.
//  3. If the tableau hits its pivot cap, retry on gonum's Simplex. The call
//     runs on its own goroutine so a cancelled ctx returns at once.
//
// ctx.Err() is returned as soon as ctx is done; any other failure of every
// method is returned as one joined error.
func (s *Solver) Solve(ctx context.Context, e lp.Effective) (lp.Relaxation, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return lp.Relaxation{}, err
	}
	if err := e.Base.Validate(); err != nil {
		return lp.Relaxation{}, err
	}
	if err := e.Validate(); err != nil {
		return lp.Relaxation{}, err
	}

	p, st, done := presolve(e, s.tolerance())
	if done {
		return lp.Relaxation{Status: st}, nil
	}
	if len(p.cols) == 0 {
		return relaxation(p.f, p.point(nil)), nil
	}

	std := p.standard()
	methods := s.methods
	if len(methods) == 0 {
		methods = defaultMethods
	}
	var errs []error
	for _, m := range methods {
		y, st, err := m(s, ctx, std)
		if err == nil {
			if st != lp.Optimal {
				return lp.Relaxation{Status: st}, nil
			}
			return relaxation(p.f, p.point(y)), nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return lp.Relaxation{}, ctxErr
		}
		errs = append(errs, err)
	}

	return lp.Relaxation{}, fmt.Errorf("simplex: %w", errors.Join(errs...))
}

func (s *Solver) bland(ctx context.Context, std standard) ([]float64, lp.Status, error) {
	return newTableau(std, s.tolerance(), s.maxPivots).solve(ctx, std.c)
}

// relaxation packages an optimal point; the objective is recomputed on the
// original coefficients so the sign convention of the sense is preserved.
func relaxation(f *lp.Formulation, x []float64) lp.Relaxation {
	return lp.Relaxation{
		Status:       lp.Optimal,
		Objective:    f.Evaluate(x),
		HasObjective: true,
		Values:       x,
	}
}
