package simplex

import (
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/bnbmilp/lp"
)

// row is Σ coef·y ≤ rhs (or = rhs when eq) over the columns of a problem.
type row struct {
	coef []float64
	rhs  float64
	eq   bool
}

// problem is an effective formulation after presolve. Every kept variable j
// is shifted to y = x[j] − lo[j] so that y ≥ 0 and y ≤ upper; fixed and
// unused variables are removed and their values recorded in x.
type problem struct {
	f     *lp.Formulation
	x     []float64 // final values of removed variables, lo of kept ones
	lo    []float64
	hi    []float64
	cols  []int     // original index of each kept column
	cost  []float64 // minimization cost per kept column
	upper []float64 // per kept column, +Inf when unbounded above
	rows  []row
}

// presolve reduces e to a problem over the columns the simplex still has to
// decide. When the outcome is already known it returns the status and done.
//
//   - empty domains are INFEASIBLE
//   - lower bounds are shifted into right-hand sides
//   - fixed variables (lo == hi) are substituted
//   - rows left without coefficients are checked and dropped
//   - duplicate rows are merged
//   - columns that appear in no row go to the bound their cost prefers
func presolve(e lp.Effective, tol float64) (p *problem, st lp.Status, done bool) {
	f := e.Base
	n := len(f.Vars)
	lo, hi := e.Tightened()
	for j := 0; j < n; j++ {
		if lo[j] > hi[j] {
			return nil, lp.Infeasible, true
		}
	}

	p = &problem{f: f, x: make([]float64, n), lo: lo, hi: hi}
	copy(p.x, lo)

	cost := make([]float64, n)
	copy(cost, f.Objective)
	if f.Sense == lp.Maximize {
		floats.Scale(-1, cost)
	}

	free := make([]bool, n)
	for j := 0; j < n; j++ {
		free[j] = hi[j] > lo[j]
	}

	rows := make([]row, 0, len(f.Constraints))
	for _, c := range f.Constraints {
		r := row{coef: make([]float64, n), rhs: c.RHS, eq: c.Rel == lp.Equal}
		for _, t := range c.Terms {
			r.coef[t.Var] += t.Coef
		}
		if c.Rel == lp.GreaterEq {
			floats.Scale(-1, r.coef)
			r.rhs = -r.rhs
		}
		for j, a := range r.coef {
			if a == 0 {
				continue
			}
			r.rhs -= a * lo[j]
			if !free[j] {
				r.coef[j] = 0
			}
		}
		if !nonZero(r.coef) {
			if (r.eq && math.Abs(r.rhs) > tol) || (!r.eq && r.rhs < -tol) {
				return nil, lp.Infeasible, true
			}
			continue
		}
		rows = append(rows, r)
	}

	rows, ok := dedupe(rows, tol)
	if !ok {
		return nil, lp.Infeasible, true
	}

	used := make([]bool, n)
	for _, r := range rows {
		for j, a := range r.coef {
			if a != 0 {
				used[j] = true
			}
		}
	}
	for j := 0; j < n; j++ {
		if !free[j] || used[j] {
			continue
		}
		free[j] = false
		if cost[j] >= 0 {
			continue
		}
		if math.IsInf(hi[j], 1) {
			return nil, lp.Unbounded, true
		}
		p.x[j] = hi[j]
	}

	for j := 0; j < n; j++ {
		if !free[j] {
			continue
		}
		p.cols = append(p.cols, j)
		p.cost = append(p.cost, cost[j])
		p.upper = append(p.upper, hi[j]-lo[j])
	}
	for _, r := range rows {
		coef := make([]float64, len(p.cols))
		for k, j := range p.cols {
			coef[k] = r.coef[j]
		}
		p.rows = append(p.rows, row{coef: coef, rhs: r.rhs, eq: r.eq})
	}

	return p, lp.Optimal, false
}

// dedupe scales each row so its first coefficient has magnitude one and keeps
// a single row per coefficient pattern: the tightest ≤ row, or one = row.
// It reports false when two equalities with the same pattern disagree.
func dedupe(rows []row, tol float64) ([]row, bool) {
	seen := make(map[string]int, len(rows))
	out := rows[:0]
	for _, r := range rows {
		var lead float64
		for _, a := range r.coef {
			if a != 0 {
				lead = math.Abs(a)
				break
			}
		}
		floats.Scale(1/lead, r.coef)
		r.rhs /= lead

		k := key(r)
		i, dup := seen[k]
		if !dup {
			seen[k] = len(out)
			out = append(out, r)
			continue
		}
		if r.eq {
			if math.Abs(out[i].rhs-r.rhs) > tol {
				return nil, false
			}
			continue
		}
		out[i].rhs = math.Min(out[i].rhs, r.rhs)
	}

	return out, true
}

func key(r row) string {
	var b strings.Builder
	if r.eq {
		b.WriteByte('=')
	}
	for _, a := range r.coef {
		b.WriteString(strconv.FormatFloat(a, 'g', -1, 64))
		b.WriteByte(',')
	}

	return b.String()
}

// standard is min cᵀy subject to A·y (≤ | =) b, y ≥ 0. Finite column upper
// bounds are appended as ≤ rows.
type standard struct {
	c  []float64
	a  *mat.Dense
	b  []float64
	eq []bool
}

func (p *problem) standard() standard {
	n := len(p.cols)
	m := len(p.rows)
	for _, u := range p.upper {
		if !math.IsInf(u, 1) {
			m++
		}
	}
	s := standard{
		c:  append([]float64(nil), p.cost...),
		a:  mat.NewDense(m, n, nil),
		b:  make([]float64, m),
		eq: make([]bool, m),
	}
	i := 0
	for _, r := range p.rows {
		s.a.SetRow(i, r.coef)
		s.b[i] = r.rhs
		s.eq[i] = r.eq
		i++
	}
	for k, u := range p.upper {
		if math.IsInf(u, 1) {
			continue
		}
		s.a.Set(i, k, 1)
		s.b[i] = u
		i++
	}

	return s
}

// point maps a solution y of the kept columns back to the original variables,
// clamped into their domains.
func (p *problem) point(y []float64) []float64 {
	x := make([]float64, len(p.x))
	copy(x, p.x)
	for k, j := range p.cols {
		v := p.lo[j] + y[k]
		x[j] = math.Max(p.lo[j], math.Min(p.hi[j], v))
	}

	return x
}

func nonZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return true
		}
	}

	return false
}
