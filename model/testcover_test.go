package model_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bnbmilp/bnb"
	"github.com/katalvlaran/bnbmilp/model"
)

func TestBoundedSearch(t *testing.T) {
	ctx := context.Background()
	tc := model.TestCover{N: 4, K: 2, Subsets: [][]int{{0, 1}, {1, 2}, {2, 3}}}

	h, ok, err := tc.BoundedSearch(ctx, 2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.LessOrEqual(t, len(h), 2)
	assert.True(t, tc.Hits(h))

	_, ok, err = tc.BoundedSearch(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, _ = tc.BoundedSearch(ctx, -1)
	assert.False(t, ok)

	h, ok, _ = model.TestCover{N: 3}.BoundedSearch(ctx, 0)
	assert.True(t, ok, "nothing to hit")
	assert.Empty(t, h)
}

func TestBoundedSearch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tc := model.TestCover{N: 2, K: 1, Subsets: [][]int{{0, 1}}}
	_, ok, err := tc.BoundedSearch(ctx, 1)
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
}

// The search tree and the ILP agree on existence and on the minimum size.
func TestSmallest_MatchesILP(t *testing.T) {
	r := rand.New(rand.NewSource(503))
	for inst := 0; inst < 40; inst++ {
		tc := model.RandomTestCover(r, 3+r.Intn(6), 2+r.Intn(6), 1+r.Intn(3))
		for _, s := range tc.Subsets {
			require.NotEmpty(t, s)
		}

		h, ok, err := tc.Smallest(context.Background())
		require.NoError(t, err)
		res := solve(t, tc.Formulation(), bnb.WithFrontier(bnb.BestBound))

		if !ok {
			assert.Equal(t, bnb.Infeasible, res.Status, "instance %d", inst)
			continue
		}
		require.Equal(t, bnb.OptimalFound, res.Status, "instance %d", inst)
		assert.True(t, tc.Hits(h), "instance %d", inst)
		assert.Equal(t, res.Objective, float64(len(h)), "instance %d", inst)
		assert.LessOrEqual(t, len(h), tc.K)
	}
}
