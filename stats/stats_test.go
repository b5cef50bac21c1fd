// SPDX-License-Identifier: MIT
package stats_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/redistrict/core"
	"github.com/katalvlaran/redistrict/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

// square is the 2×2 grid A B / C D, pop 100, aland 1, perim 4, shared 1.
func square(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for _, id := range []string{"A", "B", "C", "D"} {
		require.NoError(t, g.AddUnit(core.Unit{ID: id, TotalPop: 100, ALand: 1, Perim: 4}))
	}
	for _, p := range [][2]string{{"A", "B"}, {"C", "D"}, {"A", "C"}, {"B", "D"}} {
		_, err := g.AddEdge(p[0], p[1], core.WithSharedPerim(1))
		require.NoError(t, err)
	}

	return g
}

func TestCompute_TwoByTwo(t *testing.T) {
	g := square(t)
	labels := core.Assignment{"A": "1", "B": "1", "C": "2", "D": "2"}

	snap, err := stats.Compute(g, labels, 3, 200)
	require.NoError(t, err)
	require.Equal(t, []string{"1", "2"}, snap.Labels())

	d1, ok := snap.District("1")
	require.True(t, ok)
	assert.Equal(t, 3, d1.Plan)
	assert.InDelta(t, 2.0, d1.ALand, eps)
	assert.InDelta(t, 6.0, d1.Perim, eps, "4+4-2·1")
	assert.Equal(t, int64(200), d1.TotalPop)
	assert.InDelta(t, 100.0, d1.Density, eps)
	assert.InDelta(t, 4*math.Pi*2/36*100, d1.PolsbyPopper, eps)

	assert.Zero(t, snap.Imbalance())
	assert.Equal(t, 3, snap.Summary.Plan)
	assert.InDelta(t, d1.PolsbyPopper, snap.Summary.PolsbyPopper, eps)
	assert.Equal(t, int64(400), snap.TotalPopulation())
}

func TestCompute_Imbalance(t *testing.T) {
	g := square(t)
	labels := core.Assignment{"A": "1", "B": "2", "C": "2", "D": "2"}

	snap, err := stats.Compute(g, labels, 0, 200)
	require.NoError(t, err)
	assert.Equal(t, int64(100), snap.Population("1"))
	assert.Equal(t, int64(300), snap.Population("2"))
	assert.InDelta(t, 100.0, snap.Imbalance(), eps)
	assert.Zero(t, snap.Population("missing"))
}

// TestCompute_SingleUnitBoundary: a one-unit district keeps its own perimeter,
// and a zero perimeter or area yields 0 instead of a division fault.
func TestCompute_SingleUnitBoundary(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddUnit(core.Unit{ID: "solo", TotalPop: 10, ALand: 2, Perim: 7}))
	require.NoError(t, g.AddUnit(core.Unit{ID: "flat", TotalPop: 5}))
	_, err := g.AddEdge("solo", "flat", core.WithSharedPerim(1))
	require.NoError(t, err)

	snap, err := stats.Compute(g, core.Assignment{"solo": "a", "flat": "b"}, 0, 7.5)
	require.NoError(t, err)

	solo, _ := snap.District("a")
	assert.InDelta(t, 7.0, solo.Perim, eps)
	assert.InDelta(t, 4*math.Pi*2/49*100, solo.PolsbyPopper, eps)

	flat, _ := snap.District("b")
	assert.Zero(t, flat.Perim)
	assert.Zero(t, flat.PolsbyPopper)
	assert.Zero(t, flat.Density)
	assert.False(t, math.IsNaN(snap.Summary.PolsbyPopper))
}

func TestCompute_AbsentSharedPerim(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddUnit(core.Unit{ID: "x", TotalPop: 1, ALand: 1, Perim: 4}))
	require.NoError(t, g.AddUnit(core.Unit{ID: "y", TotalPop: 1, ALand: 1, Perim: 4}))
	_, err := g.AddEdge("x", "y")
	require.NoError(t, err)

	snap, err := stats.Compute(g, core.Assignment{"x": "1", "y": "1"}, 0, 2)
	require.NoError(t, err)
	d, _ := snap.District("1")
	assert.InDelta(t, 8.0, d.Perim, eps)
}

func TestCompute_Errors(t *testing.T) {
	g := square(t)
	_, err := stats.Compute(g, core.Assignment{"A": "1"}, 0, 100)
	assert.ErrorIs(t, err, stats.ErrUnlabeledUnit)

	_, err = stats.Compute(g, g.Labels(), 0, 0)
	assert.ErrorIs(t, err, stats.ErrNonPositiveIdeal)

	_, err = stats.Compute(core.NewGraph(), core.Assignment{}, 0, 1)
	assert.ErrorIs(t, err, stats.ErrNoDistricts)
}

func TestHelpers(t *testing.T) {
	assert.Zero(t, stats.PolsbyPopper(3, 0))
	assert.InDelta(t, 100.0, stats.PolsbyPopper(1/(4*math.Pi), 1), eps)
	assert.Zero(t, stats.Density(10, 0))
	assert.InDelta(t, 75.0, stats.Imbalance(110, 50, 80), eps)

	ideal, err := stats.Ideal(320, 4)
	require.NoError(t, err)
	assert.InDelta(t, 80.0, ideal, eps)
	_, err = stats.Ideal(320, 0)
	assert.ErrorIs(t, err, stats.ErrNonPositiveIdeal)
}
