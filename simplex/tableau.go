package simplex

import (
	"context"
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/bnbmilp/lp"
)

var (
	errUnbounded  = errors.New("simplex: unbounded direction")
	errPivotLimit = errors.New("simplex: pivot limit reached")
)

// tableau is a dense two-phase simplex tableau for a standard program. Rows
// hold B⁻¹·[A | I | R | b]: structural columns first, then one slack per ≤
// row, then one artificial per row that starts without a feasible slack.
type tableau struct {
	t     *mat.Dense // m × (width+1); the last column is the basic solution
	z     []float64  // reduced costs; z[width] is −objective
	basis []int
	basic []bool

	m, n  int // rows, structural columns
	arts  int // index of the first artificial column
	width int

	tol   float64
	feas  float64 // phase-one residual accepted as feasible
	limit int
	steps int
}

func newTableau(s standard, tol float64, limit int) *tableau {
	m, n := s.a.Dims()
	slacks, arts := 0, 0
	for i := 0; i < m; i++ {
		if !s.eq[i] {
			slacks++
		}
		if s.eq[i] || s.b[i] < 0 {
			arts++
		}
	}
	width := n + slacks + arts
	if limit <= 0 {
		limit = 100*(m+width) + 1000
	}
	t := &tableau{
		t:     mat.NewDense(m, width+1, nil),
		z:     make([]float64, width+1),
		basis: make([]int, m),
		basic: make([]bool, width),
		m:     m,
		n:     n,
		arts:  n + slacks,
		width: width,
		tol:   tol,
		feas:  1e-7 * (1 + floats.Norm(s.b, math.Inf(1))),
		limit: limit,
	}

	sl, ar := n, n+slacks
	for i := 0; i < m; i++ {
		r := t.t.RawRowView(i)
		mat.Row(r[:n], i, s.a)
		r[width] = s.b[i]
		if !s.eq[i] {
			r[sl] = 1
			t.basis[i] = sl
			sl++
		}
		if s.b[i] < 0 {
			floats.Scale(-1, r)
		}
		if s.eq[i] || s.b[i] < 0 {
			r[ar] = 1
			t.basis[i] = ar
			ar++
		}
		t.basic[t.basis[i]] = true
	}

	return t
}

// solve minimizes c over the tableau and returns the structural values.
func (t *tableau) solve(ctx context.Context, c []float64) ([]float64, lp.Status, error) {
	if t.arts < t.width {
		for j := t.arts; j < t.width; j++ {
			t.z[j] = 1
		}
		for i, b := range t.basis {
			if b >= t.arts {
				floats.AddScaled(t.z, -1, t.t.RawRowView(i))
			}
		}
		if err := t.optimize(ctx, t.width); err != nil {
			return nil, 0, err
		}
		if -t.z[t.width] > t.feas {
			return nil, lp.Infeasible, nil
		}
		t.evict()
	}

	for j := range t.z {
		t.z[j] = 0
	}
	copy(t.z, c)
	for i, b := range t.basis {
		if b < t.n && c[b] != 0 {
			floats.AddScaled(t.z, -c[b], t.t.RawRowView(i))
		}
	}
	switch err := t.optimize(ctx, t.arts); {
	case errors.Is(err, errUnbounded):
		return nil, lp.Unbounded, nil
	case err != nil:
		return nil, 0, err
	}

	y := make([]float64, t.n)
	for i, b := range t.basis {
		if b < t.n {
			y[b] = math.Max(0, t.t.At(i, t.width))
		}
	}

	return y, lp.Optimal, nil
}

// optimize pivots with Bland's rule until no column below allowed has a
// negative reduced cost. The smallest improving column enters; ratio ties
// leave by the smallest basic index.
func (t *tableau) optimize(ctx context.Context, allowed int) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		e := -1
		for j := 0; j < allowed; j++ {
			if !t.basic[j] && t.z[j] < -t.tol {
				e = j
				break
			}
		}
		if e < 0 {
			return nil
		}

		r := -1
		var best float64
		for i := 0; i < t.m; i++ {
			a := t.t.At(i, e)
			if a <= t.tol {
				continue
			}
			ratio := math.Max(0, t.t.At(i, t.width)) / a
			switch {
			case r < 0, ratio < best-t.tol:
				r, best = i, ratio
			case ratio <= best+t.tol && t.basis[i] < t.basis[r]:
				r, best = i, math.Min(best, ratio)
			}
		}
		if r < 0 {
			return errUnbounded
		}
		if t.steps >= t.limit {
			return errPivotLimit
		}
		t.pivot(r, e)
	}
}

// evict drives artificial columns out of the basis after phase one. A row
// whose remaining coefficients are all negligible is redundant and cleared.
func (t *tableau) evict() {
	for i := 0; i < t.m; i++ {
		if t.basis[i] < t.arts {
			continue
		}
		r := t.t.RawRowView(i)
		r[t.width] = 0
		e := -1
		for j := 0; j < t.arts; j++ {
			if !t.basic[j] && math.Abs(r[j]) > t.tol {
				e = j
				break
			}
		}
		if e >= 0 {
			t.pivot(i, e)
			continue
		}
		for j := range r {
			r[j] = 0
		}
	}
}

func (t *tableau) pivot(r, e int) {
	pr := t.t.RawRowView(r)
	floats.Scale(1/pr[e], pr)
	pr[e] = 1
	for i := 0; i < t.m; i++ {
		if i == r {
			continue
		}
		row := t.t.RawRowView(i)
		f := row[e]
		if f == 0 {
			continue
		}
		floats.AddScaled(row, -f, pr)
		row[e] = 0
		if rhs := row[t.width]; rhs < 0 && rhs > -t.feas {
			row[t.width] = 0
		}
	}
	if f := t.z[e]; f != 0 {
		floats.AddScaled(t.z, -f, pr)
		t.z[e] = 0
	}
	t.basic[t.basis[r]] = false
	t.basis[r] = e
	t.basic[e] = true
	t.steps++
}
