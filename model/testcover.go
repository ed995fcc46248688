package model

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"slices"
	"sort"

	"github.com/juju/errors"

	"github.com/katalvlaran/bnbmilp/bnb"
	"github.com/katalvlaran/bnbmilp/lp"
)

// TestCover asks for a smallest set H ⊆ {0..N-1} with |H| ≤ K that hits every
// subset (a hitting set). An infeasible result means no such H exists.
type TestCover struct {
	N       int
	K       int
	Subsets [][]int
}

// ParseTestCover reads "n m k" followed by m lines of element indices.
func ParseTestCover(r io.Reader) (TestCover, error) {
	lr := newLineReader(r)
	head, err := lr.ints("test cover header", 3)
	if err != nil {
		return TestCover{}, errors.Annotate(err, "parse test cover")
	}
	tc := TestCover{N: head[0], K: head[2]}
	m := head[1]
	if tc.N <= 0 || m < 0 || tc.K < 0 {
		return TestCover{}, errors.NotValidf("test cover header n=%d m=%d k=%d", tc.N, m, tc.K)
	}

	tc.Subsets = make([][]int, 0, m)
	for i := 0; i < m; i++ {
		s, err := lr.ints("subset", -1)
		if err != nil {
			return TestCover{}, errors.Annotatef(err, "parse subset %d", i)
		}
		for _, e := range s {
			if e < 0 || e >= tc.N {
				return TestCover{}, errors.NotValidf("subset %d element %d outside 0..%d", i, e, tc.N-1)
			}
		}
		tc.Subsets = append(tc.Subsets, s)
	}
	if err = lr.done(); err != nil {
		return TestCover{}, errors.Annotate(err, "parse test cover")
	}

	return tc, nil
}

func hName(i int) string { return fmt.Sprintf("h_%d", i) }

// Formulation returns
//
//	minimize  Σ h_i
//	Σ h_i ≤ K
//	Σ_{i∈S} h_i ≥ 1   for every subset S
//
// with binary h. A subset listing an element twice counts it once.
func (tc TestCover) Formulation() *lp.Formulation {
	f := lp.NewFormulation(lp.Minimize)
	all := make([]lp.Term, tc.N)
	for i := 0; i < tc.N; i++ {
		all[i] = lp.T(f.AddVar(lp.Binary(hName(i))), 1)
	}
	f.SetObjective(all...)
	f.AddConstraint("size", lp.LessEq, float64(tc.K), all...)

	for j, s := range tc.Subsets {
		seen := make(map[int]bool, len(s))
		row := make([]lp.Term, 0, len(s))
		for _, e := range s {
			if !seen[e] {
				seen[e] = true
				row = append(row, lp.T(e, 1))
			}
		}
		f.AddConstraint(fmt.Sprintf("hit_%d", j), lp.GreaterEq, 1, row...)
	}

	return f
}

// Chosen returns the sorted elements of H from a solved result.
func (tc TestCover) Chosen(res bnb.Result) ([]int, error) {
	if res.Status != bnb.OptimalFound {
		return nil, errors.NotFoundf("test cover in %s result", res.Status)
	}
	var h []int
	for i := 0; i < tc.N; i++ {
		if res.Values[hName(i)] == 1 {
			h = append(h, i)
		}
	}
	sort.Ints(h)

	return h, nil
}

// Hits reports whether h intersects every subset.
func (tc TestCover) Hits(h []int) bool {
	in := make(map[int]bool, len(h))
	for _, e := range h {
		in[e] = true
	}
	for _, s := range tc.Subsets {
		hit := false
		for _, e := range s {
			if in[e] {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}

	return true
}

// BoundedSearch decides without an LP whether some H with |H| ≤ k hits every
// subset, and returns one when it does. It branches on the elements of the
// first subset not yet hit, so the tree has depth at most k and at most s^k
// leaves for subsets of size s. ctx is checked at every node.
func (tc TestCover) BoundedSearch(ctx context.Context, k int) ([]int, bool, error) {
	var h []int
	var walk func(open [][]int, k int) (bool, error)
	walk = func(open [][]int, k int) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, errors.Trace(err)
		}
		if len(open) == 0 {
			return true, nil
		}
		if k == 0 {
			return false, nil
		}
		for _, e := range open[0] {
			h = append(h, e)
			ok, err := walk(missing(open, e), k-1)
			if ok || err != nil {
				return ok, err
			}
			h = h[:len(h)-1]
		}

		return false, nil
	}

	if k < 0 {
		return nil, false, nil
	}
	ok, err := walk(tc.Subsets, k)
	if !ok || err != nil {
		return nil, false, err
	}
	sort.Ints(h)

	return slices.Compact(h), true, nil
}

// Smallest runs BoundedSearch for k = 0, 1, ..., K and returns the first
// hitting set found, which therefore has minimum size.
func (tc TestCover) Smallest(ctx context.Context) ([]int, bool, error) {
	for k := 0; k <= tc.K; k++ {
		h, ok, err := tc.BoundedSearch(ctx, k)
		if ok || err != nil {
			return h, ok, err
		}
	}

	return nil, false, nil
}

// missing returns the subsets that do not contain e.
func missing(sets [][]int, e int) [][]int {
	out := make([][]int, 0, len(sets))
	for _, s := range sets {
		if !slices.Contains(s, e) {
			out = append(out, s)
		}
	}

	return out
}

// RandomTestCover draws m subsets of {0..n-1}, each of uniform size in 1..n
// with distinct elements.
func RandomTestCover(r *rand.Rand, n, m, k int) TestCover {
	tc := TestCover{N: n, K: k, Subsets: make([][]int, m)}
	for j := range tc.Subsets {
		tc.Subsets[j] = r.Perm(n)[:1+r.Intn(n)]
	}

	return tc
}
