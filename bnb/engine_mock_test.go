package bnb_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bnbmilp/bnb"
	"github.com/katalvlaran/bnbmilp/bnb/bnbmock"
	"github.com/katalvlaran/bnbmilp/lp"
)

var errBoom = errors.New("boom")

// oneInt is "optimize x" over a single general integer.
func oneInt(sense lp.Sense) *lp.Formulation {
	f := lp.NewFormulation(sense)
	x := f.AddVar(lp.Int("x"))
	f.SetObjective(lp.T(x, 1))

	return f
}

func relaxed(obj float64, x ...float64) lp.Relaxation {
	return lp.Relaxation{Status: lp.Optimal, Objective: obj, HasObjective: true, Values: x}
}

func TestNew_ConfigurationErrors(t *testing.T) {
	ora := bnb.OracleFunc(func(context.Context, lp.Effective) (lp.Relaxation, error) { return lp.Relaxation{}, nil })

	cases := []struct {
		name  string
		sense lp.Sense
		ora   bnb.Oracle
		opts  []bnb.Option
		want  error
	}{
		{"zero epsilon", lp.Minimize, ora, []bnb.Option{bnb.WithEpsilon(0)}, bnb.ErrBadEpsilon},
		{"negative epsilon", lp.Minimize, ora, []bnb.Option{bnb.WithEpsilon(-1e-6)}, bnb.ErrBadEpsilon},
		{"NaN epsilon", lp.Minimize, ora, []bnb.Option{bnb.WithEpsilon(math.NaN())}, bnb.ErrBadEpsilon},
		{"nil oracle", lp.Minimize, nil, nil, bnb.ErrNilOracle},
		{"nil strategy", lp.Maximize, ora, []bnb.Option{bnb.WithBranching(nil)}, bnb.ErrNilStrategy},
		{"nil frontier", lp.Maximize, ora, []bnb.Option{bnb.WithFrontier(nil)}, bnb.ErrNilFrontier},
		{"bad sense", lp.Sense(9), ora, nil, bnb.ErrBadSense},
		{"negative time limit", lp.Maximize, ora, []bnb.Option{bnb.WithTimeLimit(-time.Second)}, bnb.ErrBadTimeLimit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eng, err := bnb.New(tc.sense, tc.ora, tc.opts...)
			require.Nil(t, eng)
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, bnb.ErrConfiguration)
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	eng, err := bnb.New(lp.Maximize, bnbmock.NewMockOracle(ctrl))
	require.NoError(t, err)

	o := eng.Options()
	assert.Equal(t, bnb.DefaultEpsilon, o.Epsilon)
	assert.IsType(t, bnb.ClosestToHalf{}, o.Branching)
	assert.NotNil(t, o.Logger)
	assert.Equal(t, lp.Maximize, eng.Sense())
}

func TestSolve_SenseMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	eng, err := bnb.New(lp.Minimize, bnbmock.NewMockOracle(ctrl))
	require.NoError(t, err)

	_, err = eng.Solve(context.Background(), oneInt(lp.Maximize))
	assert.ErrorIs(t, err, bnb.ErrSenseMismatch)
}

func TestSolve_InvalidFormulation(t *testing.T) {
	ctrl := gomock.NewController(t)
	eng, err := bnb.New(lp.Minimize, bnbmock.NewMockOracle(ctrl))
	require.NoError(t, err)

	_, err = eng.Solve(context.Background(), lp.NewFormulation(lp.Minimize))
	assert.ErrorIs(t, err, lp.ErrEmptyFormulation)
}

func TestSolve_InfeasibleRootSingleCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	ora := bnbmock.NewMockOracle(ctrl)
	ora.EXPECT().Solve(gomock.Any(), gomock.Any()).
		Return(lp.Relaxation{Status: lp.Infeasible}, nil).Times(1)

	eng, err := bnb.New(lp.Minimize, ora)
	require.NoError(t, err)
	res, err := eng.Solve(context.Background(), oneInt(lp.Minimize))
	require.NoError(t, err)
	assert.Equal(t, bnb.Infeasible, res.Status)
	assert.Equal(t, math.Inf(1), res.Objective)
	assert.Empty(t, res.Values)
	assert.Equal(t, 1, res.Stats.OracleCalls)
	assert.Equal(t, 1, res.Stats.PrunedInfeasible)
}

func TestSolve_OracleFailureIsFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	ora := bnbmock.NewMockOracle(ctrl)
	gomock.InOrder(
		ora.EXPECT().Solve(gomock.Any(), gomock.Any()).Return(relaxed(1.5, 1.5), nil),
		ora.EXPECT().Solve(gomock.Any(), gomock.Any()).Return(lp.Relaxation{}, errBoom),
	)

	eng, err := bnb.New(lp.Maximize, ora)
	require.NoError(t, err)
	res, err := eng.Solve(context.Background(), oneInt(lp.Maximize))
	assert.Equal(t, bnb.Result{}, res)
	assert.ErrorIs(t, err, bnb.ErrOracleFailure)
	assert.ErrorIs(t, err, errBoom)

	var oe *bnb.OracleError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, 1, oe.Depth)
	assert.Equal(t, 2, oe.NodeID) // the "up" child is pushed last and popped first
}

func TestSolve_MalformedRelaxation(t *testing.T) {
	ctrl := gomock.NewController(t)
	ora := bnbmock.NewMockOracle(ctrl)
	ora.EXPECT().Solve(gomock.Any(), gomock.Any()).Return(relaxed(3, 1, 2), nil)

	eng, err := bnb.New(lp.Maximize, ora)
	require.NoError(t, err)
	_, err = eng.Solve(context.Background(), oneInt(lp.Maximize))
	assert.ErrorIs(t, err, bnb.ErrOracleFailure)
}

func TestSolve_UnboundedAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	ora := bnbmock.NewMockOracle(ctrl)
	ora.EXPECT().Solve(gomock.Any(), gomock.Any()).Return(lp.Relaxation{Status: lp.Unbounded}, nil)

	eng, err := bnb.New(lp.Maximize, ora)
	require.NoError(t, err)
	_, err = eng.Solve(context.Background(), oneInt(lp.Maximize))
	assert.ErrorIs(t, err, bnb.ErrUnbounded)
}

func TestSolve_BadBranchVariable(t *testing.T) {
	ctrl := gomock.NewController(t)
	ora := bnbmock.NewMockOracle(ctrl)
	ora.EXPECT().Solve(gomock.Any(), gomock.Any()).Return(relaxed(1.5, 1.5), nil)
	strat := bnbmock.NewMockBranchingStrategy(ctrl)
	strat.EXPECT().Select([]float64{1.5}, []int{0}).Return(3)

	eng, err := bnb.New(lp.Maximize, ora, bnb.WithBranching(strat))
	require.NoError(t, err)
	_, err = eng.Solve(context.Background(), oneInt(lp.Maximize))
	assert.ErrorIs(t, err, bnb.ErrBadBranchVariable)
	assert.ErrorIs(t, err, bnb.ErrConfiguration)
}

func TestSolve_EffectiveFormulationCarriesDeltas(t *testing.T) {
	ctrl := gomock.NewController(t)
	ora := bnbmock.NewMockOracle(ctrl)
	f := oneInt(lp.Maximize)

	anyEffective := gomock.AssignableToTypeOf(lp.Effective{})
	gomock.InOrder(
		ora.EXPECT().Solve(gomock.Any(), anyEffective).DoAndReturn(
			func(_ context.Context, e lp.Effective) (lp.Relaxation, error) {
				assert.Same(t, f, e.Base)
				assert.Empty(t, e.Bounds)
				return relaxed(2.5, 2.5), nil
			}),
		ora.EXPECT().Solve(gomock.Any(), anyEffective).DoAndReturn(
			func(_ context.Context, e lp.Effective) (lp.Relaxation, error) {
				assert.Equal(t, []lp.Bound{lp.AtLeast(0, 3)}, e.Bounds)
				return lp.Relaxation{Status: lp.Infeasible}, nil
			}),
		ora.EXPECT().Solve(gomock.Any(), anyEffective).DoAndReturn(
			func(_ context.Context, e lp.Effective) (lp.Relaxation, error) {
				assert.Equal(t, []lp.Bound{lp.AtMost(0, 2)}, e.Bounds)
				return relaxed(2, 2), nil
			}),
	)

	eng, err := bnb.New(lp.Maximize, ora)
	require.NoError(t, err)
	res, err := eng.Solve(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 2.0, res.Objective)
	assert.Equal(t, bnb.Stats{
		Nodes: 3, OracleCalls: 3, Branched: 1, PrunedInfeasible: 1, PrunedOptimal: 1,
		MaxDepth: 1, MaxFrontier: 2, Elapsed: res.Stats.Elapsed,
	}, res.Stats)
}

func TestSolve_CancelledBeforeStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	eng, err := bnb.New(lp.Maximize, bnbmock.NewMockOracle(ctrl))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = eng.Solve(ctx, oneInt(lp.Maximize))
	assert.ErrorIs(t, err, bnb.ErrSearchTimedOut)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolve_TimeLimitDiscardsIncumbent(t *testing.T) {
	// A relaxation that is fractional at every node never closes the tree.
	calls := 0
	ora := bnb.OracleFunc(func(_ context.Context, e lp.Effective) (lp.Relaxation, error) {
		calls++
		time.Sleep(time.Millisecond)
		if calls == 2 {
			return relaxed(1, 1), nil // an incumbent exists before the deadline
		}
		return relaxed(float64(100+calls)+0.5, float64(100+calls)+0.5), nil
	})

	eng, err := bnb.New(lp.Maximize, ora, bnb.WithTimeLimit(30*time.Millisecond))
	require.NoError(t, err)
	res, err := eng.Solve(context.Background(), oneInt(lp.Maximize))
	assert.ErrorIs(t, err, bnb.ErrSearchTimedOut)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, bnb.ErrOracleFailure)
	assert.Equal(t, bnb.Result{}, res)
}

func TestSolve_OracleHonouringDeadline(t *testing.T) {
	ora := bnb.OracleFunc(func(ctx context.Context, _ lp.Effective) (lp.Relaxation, error) {
		<-ctx.Done()
		return lp.Relaxation{}, ctx.Err()
	})

	eng, err := bnb.New(lp.Minimize, ora, bnb.WithTimeLimit(10*time.Millisecond))
	require.NoError(t, err)
	_, err = eng.Solve(context.Background(), oneInt(lp.Minimize))
	assert.ErrorIs(t, err, bnb.ErrSearchTimedOut)
	assert.NotErrorIs(t, err, bnb.ErrOracleFailure)
}
