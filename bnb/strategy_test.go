package bnb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bnbmilp/bnb"
	"github.com/katalvlaran/bnbmilp/lp"
)

func TestClosestToHalf(t *testing.T) {
	var s bnb.ClosestToHalf
	x := []float64{0.1, 2.375, 7.875, 3.625}
	assert.Equal(t, 1, s.Select(x, []int{0, 1, 2, 3}))

	// Tie (2.375 and 3.625 are both 0.125 from .5): first occurrence wins.
	assert.Equal(t, 1, s.Select(x, []int{1, 3}))
	assert.Equal(t, 3, s.Select(x, []int{3, 1}))
	assert.Equal(t, 2, s.Select(x, []int{2}))
}

func TestFirstFractional(t *testing.T) {
	var s bnb.FirstFractional
	assert.Equal(t, 4, s.Select(nil, []int{4, 1, 2}))
}

func TestRandomFractional_Seeded(t *testing.T) {
	candidates := []int{2, 3, 5, 7, 11}
	a := bnb.NewRandomFractional(42)
	b := bnb.NewRandomFractional(42)

	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		va, vb := a.Select(nil, candidates), b.Select(nil, candidates)
		require.Equal(t, va, vb, "same seed must replay the same choices")
		require.Contains(t, candidates, va)
		seen[va] = true
	}
	assert.Len(t, seen, len(candidates), "every candidate is reachable")

	// seed==0 and the zero value both fall back to the default seed.
	z := bnb.NewRandomFractional(0)
	var zero bnb.RandomFractional
	for i := 0; i < 20; i++ {
		require.Equal(t, z.Select(nil, candidates), zero.Select(nil, candidates))
	}
}

func TestDepthFirst_LIFO(t *testing.T) {
	f := bnb.DepthFirst(lp.Maximize)
	_, ok := f.Pop()
	require.False(t, ok)

	for i := 1; i <= 3; i++ {
		f.Push(&bnb.Node{ID: i})
	}
	require.Equal(t, 3, f.Len())
	for _, want := range []int{3, 2, 1} {
		n, ok := f.Pop()
		require.True(t, ok)
		assert.Equal(t, want, n.ID)
	}
	assert.Zero(t, f.Len())
}

func TestBestBound_Order(t *testing.T) {
	nodes := func() []*bnb.Node {
		return []*bnb.Node{
			{ID: 1, Depth: 1, Key: 5},
			{ID: 2, Depth: 1, Key: 9},
			{ID: 3, Depth: 2, Key: 7},
			{ID: 4, Depth: 3, Key: 7},
			{ID: 5, Depth: 3, Key: 7},
		}
	}
	drain := func(f bnb.Frontier) []int {
		var out []int
		for f.Len() > 0 {
			n, ok := f.Pop()
			require.True(t, ok)
			out = append(out, n.ID)
		}
		return out
	}

	maxF := bnb.BestBound(lp.Maximize)
	for _, n := range nodes() {
		maxF.Push(n)
	}
	// Largest key first; ties: deeper, then older.
	assert.Equal(t, []int{2, 4, 5, 3, 1}, drain(maxF))

	minF := bnb.BestBound(lp.Minimize)
	for _, n := range nodes() {
		minF.Push(n)
	}
	assert.Equal(t, []int{1, 4, 5, 3, 2}, drain(minF))
}
