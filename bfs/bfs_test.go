// SPDX-License-Identifier: MIT
package bfs_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/katalvlaran/redistrict/bfs"
	"github.com/katalvlaran/redistrict/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pathGraph builds units u0..u(n-1) joined in a line.
func pathGraph(t *testing.T, n int) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for i := 0; i < n; i++ {
		require.NoError(t, g.AddUnit(core.Unit{ID: fmt.Sprintf("u%d", i), TotalPop: 1}))
	}
	for i := 1; i < n; i++ {
		_, err := g.AddEdge(fmt.Sprintf("u%d", i-1), fmt.Sprintf("u%d", i))
		require.NoError(t, err)
	}

	return g
}

// TestBFS_Errors verifies that invalid inputs and options are rejected.
func TestBFS_Errors(t *testing.T) {
	_, err := bfs.BFS(nil, "A")
	assert.ErrorIs(t, err, bfs.ErrGraphNil)

	g := pathGraph(t, 2)
	_, err = bfs.BFS(g, "missing")
	assert.ErrorIs(t, err, bfs.ErrStartVertexNotFound)

	_, err = bfs.BFS(g, "u0", bfs.WithMaxDepth(-1))
	assert.ErrorIs(t, err, bfs.ErrOptionViolation)
}

// TestBFS_PathDepths checks depth, order and parent links on a line.
func TestBFS_PathDepths(t *testing.T) {
	g := pathGraph(t, 4)
	res, err := bfs.BFS(g, "u1")
	require.NoError(t, err)

	assert.Equal(t, []string{"u1", "u0", "u2", "u3"}, res.Order)
	assert.Equal(t, map[string]int{"u0": 1, "u1": 0, "u2": 1, "u3": 2}, res.Depth)

	path, err := res.PathTo("u3")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2", "u3"}, path)
}

// TestBFS_MaxDepthAndFilter verifies pruning options.
func TestBFS_MaxDepthAndFilter(t *testing.T) {
	g := pathGraph(t, 5)

	res, err := bfs.BFS(g, "u0", bfs.WithMaxDepth(2))
	require.NoError(t, err)
	assert.Equal(t, []string{"u0", "u1", "u2"}, res.Order)
	assert.False(t, res.Reached("u3"))

	res, err = bfs.BFS(g, "u0", bfs.WithoutEdge("u3", "u2"))
	require.NoError(t, err)
	assert.Equal(t, []string{"u0", "u1", "u2"}, res.Order)

	_, err = res.PathTo("u4")
	assert.Error(t, err)
}

// TestBFS_OnVisitAbort verifies hook errors are wrapped and propagated.
func TestBFS_OnVisitAbort(t *testing.T) {
	stop := errors.New("stop")
	g := pathGraph(t, 3)
	_, err := bfs.BFS(g, "u0", bfs.WithOnVisit(func(id string, _ int) error {
		if id == "u1" {
			return stop
		}
		return nil
	}))
	assert.ErrorIs(t, err, stop)
}

// TestBFS_Cancelled verifies a cancelled context stops the walk.
func TestBFS_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := bfs.BFS(pathGraph(t, 3), "u0", bfs.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

// TestComponents covers ordering and the hidden-edge split used for tree cuts.
func TestComponents(t *testing.T) {
	g := pathGraph(t, 5)
	require.NoError(t, g.AddUnit(core.Unit{ID: "a"}))

	comps, err := bfs.Components(g)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a"}, {"u0", "u1", "u2", "u3", "u4"}}, comps)
	assert.False(t, bfs.IsConnected(g))

	line := pathGraph(t, 5)
	assert.True(t, bfs.IsConnected(line))
	comps, err = bfs.Components(line, bfs.WithoutEdge("u1", "u2"))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"u0", "u1"}, {"u2", "u3", "u4"}}, comps)

	reach, err := bfs.Reachable(line, "u4", bfs.WithoutEdge("u2", "u3"))
	require.NoError(t, err)
	assert.Equal(t, []string{"u3", "u4"}, reach)

	assert.False(t, bfs.IsConnected(core.NewGraph()))
}
