package lp_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bnbmilp/lp"
)

// mkSquare builds: maximize x+y s.t. x ≤ 1, y ≤ 1 over binaries.
func mkSquare() *lp.Formulation {
	f := lp.NewFormulation(lp.Maximize)
	x := f.AddVar(lp.Binary("x"))
	y := f.AddVar(lp.Binary("y"))
	f.SetObjective(lp.T(x, 1), lp.T(y, 1))
	f.AddConstraint("cx", lp.LessEq, 1, lp.T(x, 1))
	f.AddConstraint("cy", lp.LessEq, 1, lp.T(y, 1))

	return f
}

func TestFormulation_BuildAndIndex(t *testing.T) {
	f := mkSquare()
	require.NoError(t, f.Validate())
	require.Equal(t, 2, f.NumVars())

	i, ok := f.Index("y")
	require.True(t, ok)
	require.Equal(t, 1, i)

	_, ok = f.Index("z")
	require.False(t, ok)
}

func TestFormulation_ValidateSentinels(t *testing.T) {
	var nilF *lp.Formulation
	require.ErrorIs(t, nilF.Validate(), lp.ErrEmptyFormulation)
	require.ErrorIs(t, lp.NewFormulation(lp.Minimize).Validate(), lp.ErrEmptyFormulation)

	f := mkSquare()
	f.Sense = lp.Sense(7)
	require.ErrorIs(t, f.Validate(), lp.ErrBadSense)

	f = mkSquare()
	f.AddVar(lp.Int("x"))
	require.ErrorIs(t, f.Validate(), lp.ErrDuplicateVariable)

	f = mkSquare()
	f.Vars[0].Upper = -1
	require.ErrorIs(t, f.Validate(), lp.ErrBadBound)

	f = mkSquare()
	f.AddConstraint("bad", lp.LessEq, 1, lp.T(9, 1))
	require.ErrorIs(t, f.Validate(), lp.ErrUnknownVariable)

	f = mkSquare()
	f.AddConstraint("nan", lp.LessEq, math.NaN(), lp.T(0, 1))
	require.ErrorIs(t, f.Validate(), lp.ErrBadCoefficient)

	f = mkSquare()
	f.AddConstraint("rel", lp.Relation(9), 1, lp.T(0, 1))
	require.True(t, errors.Is(f.Validate(), lp.ErrBadRelation))
}

func TestFormulation_IntegralObjective(t *testing.T) {
	f := mkSquare()
	require.True(t, f.IntegralObjective())

	f.SetObjective(lp.T(0, 1.5))
	require.False(t, f.IntegralObjective())

	g := lp.NewFormulation(lp.Minimize)
	c := g.AddVar(lp.Continuous("c"))
	g.AddVar(lp.Int("n"))
	require.True(t, g.IntegralObjective(), "zero coefficient on a continuous variable is harmless")
	g.SetObjective(lp.T(c, 2))
	require.False(t, g.IntegralObjective())
}

func TestFormulation_EvaluateAndFeasible(t *testing.T) {
	f := mkSquare()
	require.Equal(t, 2.0, f.Evaluate([]float64{1, 1}))
	require.True(t, f.Feasible([]float64{1, 0}, 1e-9))
	require.False(t, f.Feasible([]float64{0.5, 0}, 1e-9), "fractional integer variable")
	require.False(t, f.Feasible([]float64{2, 0}, 1e-9), "above upper bound")
	require.False(t, f.Feasible([]float64{1}, 1e-9), "wrong length")
}

func TestSense_SentinelAndBetter(t *testing.T) {
	require.True(t, math.IsInf(lp.Minimize.Sentinel(), 1))
	require.True(t, math.IsInf(lp.Maximize.Sentinel(), -1))
	require.True(t, lp.Minimize.Better(1, 2))
	require.False(t, lp.Minimize.Better(2, 2))
	require.True(t, lp.Maximize.Better(3, 2))
	require.False(t, lp.Maximize.Better(2, 2))
}

// TestSplit_Partition checks that the two branching bounds are disjoint and cover
// every integer around the fractional value.
func TestSplit_Partition(t *testing.T) {
	for _, v := range []float64{0.5, 1.5, 2.25, 7.999, 3.0001} {
		down, up := lp.Split(0, v)
		require.True(t, down.Upper)
		require.False(t, up.Upper)
		for k := -3; k <= 12; k++ {
			x := float64(k)
			require.NotEqual(t, down.Admits(x), up.Admits(x), "integer %d at v=%g", k, v)
		}
		require.False(t, down.Admits(v))
		require.False(t, up.Admits(v))
	}
}

func TestEffective_Tightened(t *testing.T) {
	f := mkSquare()
	e := lp.Effective{Base: f, Bounds: []lp.Bound{lp.AtMost(0, 0), lp.AtLeast(1, 1), lp.AtMost(1, 3)}}
	require.NoError(t, e.Validate())

	lo, hi := e.Tightened()
	require.Equal(t, []float64{0, 1}, lo)
	require.Equal(t, []float64{0, 1}, hi)
	require.Equal(t, "x0 <= 0", e.Bounds[0].String())

	bad := lp.Effective{Base: f, Bounds: []lp.Bound{lp.AtMost(5, 1)}}
	require.ErrorIs(t, bad.Validate(), lp.ErrUnknownVariable)
}
