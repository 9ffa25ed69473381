package intercept

import (
	"context"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxd309/intercept-engine/internal/kinematics"
	"github.com/cxd309/intercept-engine/internal/trajectory"
)

const g = 9.81

func attackerTrajectory(t *testing.T) trajectory.Trajectory {
	t.Helper()
	ls := kinematics.LaunchState{X0: 0, Y0: 0, V0: 50, Theta: kinematics.DegToRad(45)}
	tr, err := trajectory.Compute(ls, 0.02, g, nil)
	require.NoError(t, err)
	return tr
}

func baselineParams() Params {
	return Params{
		XD0:        100,
		YD0:        0,
		ThetaMin:   kinematics.DegToRad(5),
		ThetaMax:   kinematics.DegToRad(85),
		DTheta:     kinematics.DegToRad(0.5),
		DelayMin:   0,
		DelayMax:   5,
		DTDelay:    0.1,
		DTAttacker: 0.02,
		Eps:        1.0,
		G:          g,
	}
}

func TestSearchFindsIntercept(t *testing.T) {
	t.Parallel()

	tr := attackerTrajectory(t)
	sol, ok := Search(tr, baselineParams(), 40)
	require.True(t, ok)

	assert.LessOrEqual(t, sol.Error, 1.0)
	assert.LessOrEqual(t, sol.V0D, 40.0)
	assert.Greater(t, sol.V0D, 0.0)
	assert.InDelta(t, 1.4, sol.Delay, 1e-9)
	assert.InDelta(t, 4.56, sol.ImpactTime, 1e-9)
	assert.InDelta(t, 60.5, kinematics.RadToDeg(sol.ThetaD), 1e-9)

	// The defender really is where the attacker is.
	dx, dy := kinematics.PositionAt(sol.Tau(), 100, 0, sol.V0D, sol.ThetaD, g)
	assert.InDelta(t, sol.ImpactPoint.X, dx, 1e-9)
	assert.InDelta(t, sol.ImpactPoint.Y, dy, sol.Error+1e-9)
}

func TestSearchRespectsMaxSpeed(t *testing.T) {
	t.Parallel()

	tr := attackerTrajectory(t)
	for _, vmax := range []float64{40, 45, 60, 500} {
		sol, ok := Search(tr, baselineParams(), vmax)
		require.Truef(t, ok, "vmax=%g", vmax)
		assert.LessOrEqual(t, sol.V0D, vmax)
	}
}

func TestSearchUnreachableSpeedReturnsNothing(t *testing.T) {
	t.Parallel()

	_, ok := Search(attackerTrajectory(t), baselineParams(), 0.01)
	assert.False(t, ok)
}

func TestSearchSingleAngle(t *testing.T) {
	t.Parallel()

	tr := attackerTrajectory(t)

	p := baselineParams()
	p.ThetaMin = kinematics.DegToRad(45)
	p.ThetaMax = p.ThetaMin
	require.Len(t, AngleGrid(p), 1)

	sol, ok := Search(tr, p, 60)
	require.True(t, ok)
	assert.Equal(t, p.ThetaMin, sol.ThetaD)
	assert.InDelta(t, 2.6, sol.Delay, 1e-9)

	// A vertical-only grid has no usable angle at all.
	p.ThetaMin = kinematics.DegToRad(89.99)
	p.ThetaMax = p.ThetaMin
	assert.Empty(t, AngleGrid(p))
	_, ok = Search(tr, p, 60)
	assert.False(t, ok)
}

func TestSearchIsDeterministic(t *testing.T) {
	t.Parallel()

	tr := attackerTrajectory(t)
	p := baselineParams()

	first, ok := Search(tr, p, 60)
	require.True(t, ok)
	for i := 0; i < 3; i++ {
		again, ok := Search(tr, p, 60)
		require.True(t, ok)
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("repeat %d differs (-first +again):\n%s", i, diff)
		}
	}

	for _, workers := range []int{1, 2, 3, 8, 1000} {
		res, err := SearchWithOptions(context.Background(), tr, p, 60, Options{Workers: workers})
		require.NoError(t, err)
		require.True(t, res.Found)
		assert.False(t, res.Stopped)
		if diff := cmp.Diff(first, res.Solution); diff != "" {
			t.Errorf("workers=%d differs from sequential (-seq +par):\n%s", workers, diff)
		}
	}

	par, ok, err := SearchParallel(context.Background(), tr, p, 60, 5)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first, par)
}

func TestSearchStatsMatchCandidates(t *testing.T) {
	t.Parallel()

	tr := attackerTrajectory(t)
	p := baselineParams()

	n := 0
	for c := range Candidates(tr, p, 40) {
		assert.LessOrEqual(t, c.Error, p.Eps)
		assert.LessOrEqual(t, c.V0D, 40.0)
		n++
	}
	require.Positive(t, n)

	seq, err := SearchWithOptions(context.Background(), tr, p, 40, Options{})
	require.NoError(t, err)
	par, err := SearchWithOptions(context.Background(), tr, p, 40, Options{Workers: 4})
	require.NoError(t, err)

	assert.Equal(t, n, seq.Stats.Accepted)
	assert.Equal(t, seq.Stats, par.Stats)
	assert.Equal(t, tr.Len(), seq.Stats.Samples)
}

func TestSearchStopBelow(t *testing.T) {
	t.Parallel()

	tr := attackerTrajectory(t)
	p := baselineParams()

	full, err := SearchWithOptions(context.Background(), tr, p, 60, Options{})
	require.NoError(t, err)

	early, err := SearchWithOptions(context.Background(), tr, p, 60, Options{StopBelow: 0.5})
	require.NoError(t, err)
	require.True(t, early.Found)
	assert.True(t, early.Stopped)
	assert.Less(t, early.Error, 0.5)
	assert.Less(t, early.Stats.Evaluated, full.Stats.Evaluated)

	// A threshold nothing reaches leaves the result exhaustive.
	none, err := SearchWithOptions(context.Background(), tr, p, 60, Options{StopBelow: 1e-300, Workers: 3})
	require.NoError(t, err)
	assert.False(t, none.Stopped)
	assert.Equal(t, full.Solution, none.Solution)
}

func TestSearchCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := SearchWithOptions(ctx, attackerTrajectory(t), baselineParams(), 60, Options{Workers: 2})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearchWithOptionsValidates(t *testing.T) {
	t.Parallel()

	tr := attackerTrajectory(t)
	mutate := map[string]func(*Params){
		"inverted angles": func(p *Params) { p.ThetaMax = p.ThetaMin - 0.1 },
		"inverted delays": func(p *Params) { p.DelayMax = -1 },
		"zero dtheta":     func(p *Params) { p.DTheta = 0 },
		"zero delay step": func(p *Params) { p.DTDelay = 0 },
		"zero eps":        func(p *Params) { p.Eps = 0 },
		"nan gravity":     func(p *Params) { p.G = math.NaN() },
		"huge angle grid": func(p *Params) { p.DTheta = 1e-18 },
		"huge delay grid": func(p *Params) { p.DTDelay = 1e-13 },
	}
	emptiesGrid := map[string]bool{
		"inverted angles": true,
		"inverted delays": true,
		"zero dtheta":     true,
		"zero delay step": true,
		"huge angle grid": true,
		"huge delay grid": true,
	}
	for name, m := range mutate {
		t.Run(name, func(t *testing.T) {
			p := baselineParams()
			m(&p)
			_, err := SearchWithOptions(context.Background(), tr, p, 60, Options{})
			assert.ErrorIs(t, err, ErrInvalidParams)

			if emptiesGrid[name] {
				_, ok := Search(tr, p, 60)
				assert.False(t, ok)
			}
		})
	}

	_, err := SearchWithOptions(context.Background(), tr, baselineParams(), math.NaN(), Options{})
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestSearchEmptyTrajectory(t *testing.T) {
	t.Parallel()

	_, ok := Search(trajectory.Trajectory{}, baselineParams(), 60)
	assert.False(t, ok)

	res, err := SearchWithOptions(context.Background(), trajectory.Trajectory{}, baselineParams(), 60, Options{Workers: 4})
	require.NoError(t, err)
	assert.False(t, res.Found)
}

func TestSearchSkipsBelowGroundSamples(t *testing.T) {
	t.Parallel()

	tr := trajectory.Trajectory{Samples: []trajectory.Sample{
		{T: 0, X: 0, Y: 0},
		{T: 1, X: 10, Y: -5},
	}}
	res, err := SearchWithOptions(context.Background(), tr, baselineParams(), 1e6, Options{})
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Equal(t, 1, res.Stats.Samples)
}
