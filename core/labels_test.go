// SPDX-License-Identifier: MIT
package core_test

import (
	"sort"
	"testing"

	"github.com/katalvlaran/redistrict/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_LabelsSnapshotIsDetached(t *testing.T) {
	g := newSquare(t)
	a := g.Labels()
	a[UnitA] = Label2

	got, err := g.Label(UnitA)
	require.NoError(t, err)
	assert.Equal(t, Label1, got)
}

func TestGraph_ApplyLabels(t *testing.T) {
	g := newSquare(t)

	t.Run("incomplete", func(t *testing.T) {
		err := g.ApplyLabels(core.Assignment{UnitA: Label2})
		assert.ErrorIs(t, err, core.ErrIncompleteLabels)
		l, _ := g.Label(UnitA)
		assert.Equal(t, Label1, l, "failed commit must not write anything")
	})

	t.Run("unknown unit", func(t *testing.T) {
		err := g.ApplyLabels(core.Assignment{UnitA: Label1, UnitB: Label1, UnitC: Label2, UnitX: Label2})
		assert.ErrorIs(t, err, core.ErrIncompleteLabels)
	})

	t.Run("complete", func(t *testing.T) {
		next := core.Assignment{UnitA: Label1, UnitC: Label1, UnitB: Label2, UnitD: Label2}
		require.NoError(t, g.ApplyLabels(next))
		assert.Equal(t, next, g.Labels())
		assert.Equal(t, map[string][]string{
			Label1: {UnitA, UnitC},
			Label2: {UnitB, UnitD},
		}, g.Districts())
	})
}

func TestGraph_SetLabel(t *testing.T) {
	g := newSquare(t)
	require.NoError(t, g.SetLabel(UnitD, "3"))
	assert.Len(t, g.Districts(), 3)
	assert.ErrorIs(t, g.SetLabel(UnitX, "3"), core.ErrVertexNotFound)
}

func TestCompareLabels(t *testing.T) {
	labels := []string{"10", "b", "2", "a", "1"}
	sort.Slice(labels, func(i, j int) bool { return core.CompareLabels(labels[i], labels[j]) < 0 })
	assert.Equal(t, []string{"1", "2", "10", "a", "b"}, labels)

	assert.Zero(t, core.CompareLabels("7", "7"))
	assert.Equal(t, []string{"2", "10", "x"}, core.SortedLabels(map[string]int{"x": 0, "10": 0, "2": 0}))
}
