// SPDX-License-Identifier: MIT
// Package core_test contains test helpers for core.
//
// Purpose:
//   - Provide small, deterministic fixtures for core.Graph.
//   - Keep unit IDs and attribute values out of test bodies.

package core_test

import (
	"testing"

	"github.com/katalvlaran/redistrict/core"
	"github.com/stretchr/testify/require"
)

// Common unit IDs used across core tests.
const (
	UnitEmpty = ""

	UnitA = "A"
	UnitB = "B"
	UnitC = "C"
	UnitD = "D"

	UnitX = "X"
)

// Common labels used across core tests.
const (
	Label1 = "1"
	Label2 = "2"
)

// Common sizes used across concurrency tests.
const (
	NReaders = 50
	NWriters = 20
)

// newSquare builds the 2×2 grid
//
//	A───B
//	│   │
//	C───D
//
// with pop 100 per unit, aland 1, perim 4 and shared_perim 1 on every edge.
// A and B carry label 1, C and D label 2.
func newSquare(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for _, u := range []core.Unit{
		{ID: UnitA, TotalPop: 100, ALand: 1, Perim: 4, Label: Label1},
		{ID: UnitB, TotalPop: 100, ALand: 1, Perim: 4, Label: Label1},
		{ID: UnitC, TotalPop: 100, ALand: 1, Perim: 4, Label: Label2},
		{ID: UnitD, TotalPop: 100, ALand: 1, Perim: 4, Label: Label2},
	} {
		require.NoError(t, g.AddUnit(u))
	}
	for _, p := range [][2]string{{UnitA, UnitB}, {UnitC, UnitD}, {UnitA, UnitC}, {UnitB, UnitD}} {
		_, err := g.AddEdge(p[0], p[1], core.WithSharedPerim(1), core.WithDistance(1))
		require.NoError(t, err)
	}

	return g
}
