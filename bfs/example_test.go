// SPDX-License-Identifier: MIT
package bfs_test

import (
	"fmt"

	"github.com/katalvlaran/redistrict/bfs"
	"github.com/katalvlaran/redistrict/core"
)

// ExampleComponents shows how cutting one edge of a 3×2 grid's spanning
// path splits it into two pieces.
func ExampleComponents() {
	g := core.NewGraph()
	ids := []string{"0,0", "0,1", "1,1", "1,0", "2,0", "2,1"}
	for _, id := range ids {
		_ = g.AddUnit(core.Unit{ID: id, TotalPop: 10})
	}
	for i := 1; i < len(ids); i++ {
		_, _ = g.AddEdge(ids[i-1], ids[i])
	}

	comps, _ := bfs.Components(g, bfs.WithoutEdge("1,1", "1,0"))
	fmt.Println(comps)
	// Output:
	// [[0,0 0,1 1,1] [1,0 2,0 2,1]]
}
