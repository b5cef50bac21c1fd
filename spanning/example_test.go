// SPDX-License-Identifier: MIT
package spanning_test

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/redistrict/core"
	"github.com/katalvlaran/redistrict/spanning"
)

// ExampleKruskal computes the MST of a weighted square with one diagonal.
func ExampleKruskal() {
	g := core.NewGraph()
	for _, id := range []string{"A", "B", "C", "D"} {
		_ = g.AddUnit(core.Unit{ID: id})
	}
	_, _ = g.AddEdge("A", "B", core.WithWeight(0.4))
	_, _ = g.AddEdge("B", "D", core.WithWeight(0.1))
	_, _ = g.AddEdge("C", "D", core.WithWeight(0.3))
	_, _ = g.AddEdge("A", "C", core.WithWeight(0.9))
	_, _ = g.AddEdge("A", "D", core.WithWeight(0.2))

	tree, total, _ := spanning.Kruskal(g)
	pairs := make([]string, len(tree))
	for i, e := range tree {
		pairs[i] = e.From + "-" + e.To
	}
	fmt.Println(strings.Join(pairs, " "))
	fmt.Printf("total=%.1f\n", total)
	// Output:
	// B-D A-D C-D
	// total=0.6
}
