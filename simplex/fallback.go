package simplex

import (
	"context"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	convexlp "gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/katalvlaran/bnbmilp/lp"
)

// gonum solves std with gonum's Simplex after adding one slack column per ≤
// row and flipping rows so that b ≥ 0.
//
// gonum has no cancellation hook, so the call runs on its own goroutine and
// a done ctx returns ctx.Err() immediately. The abandoned goroutine finishes
// on its own and its result is dropped.
func (s *Solver) gonum(ctx context.Context, std standard) ([]float64, lp.Status, error) {
	m, n := std.a.Dims()
	slacks := 0
	for _, eq := range std.eq {
		if !eq {
			slacks++
		}
	}
	width := n + slacks
	if m > width {
		return nil, 0, fmt.Errorf("%w: %d rows, %d columns", ErrTooManyEqualities, m, width)
	}

	a := mat.NewDense(m, width, nil)
	b := make([]float64, m)
	c := make([]float64, width)
	copy(c, std.c)
	slack := n
	for i := 0; i < m; i++ {
		sign := 1.0
		if std.b[i] < 0 {
			sign = -1
		}
		for j := 0; j < n; j++ {
			a.Set(i, j, sign*std.a.At(i, j))
		}
		if !std.eq[i] {
			a.Set(i, slack, sign)
			slack++
		}
		b[i] = sign * std.b[i]
	}

	type outcome struct {
		x   []float64
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("gonum simplex panicked: %v", r)}
			}
		}()
		_, x, err := convexlp.Simplex(c, a, b, 0, nil)
		done <- outcome{x: x, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, 0, ctx.Err()
	case o := <-done:
		switch {
		case errors.Is(o.err, convexlp.ErrInfeasible):
			return nil, lp.Infeasible, nil
		case errors.Is(o.err, convexlp.ErrUnbounded):
			return nil, lp.Unbounded, nil
		case o.err != nil:
			return nil, 0, o.err
		}
		return o.x[:n], lp.Optimal, nil
	}
}
