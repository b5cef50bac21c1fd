// SPDX-License-Identifier: MIT
package core_test

import (
	"fmt"

	"github.com/katalvlaran/redistrict/core"
)

// ExampleGraph demonstrates building a tiny dual graph and regrouping it.
func ExampleGraph() {
	g := core.NewGraph()
	_ = g.AddUnit(core.Unit{ID: "A", TotalPop: 120, ALand: 2, Perim: 6, Label: "1"})
	_ = g.AddUnit(core.Unit{ID: "B", TotalPop: 80, ALand: 1, Perim: 4, Label: "1"})
	_ = g.AddUnit(core.Unit{ID: "C", TotalPop: 100, ALand: 1, Perim: 4, Label: "2"})
	_, _ = g.AddEdge("A", "B", core.WithSharedPerim(1))
	_, _ = g.AddEdge("B", "C", core.WithSharedPerim(1))

	fmt.Println("units:", g.UnitIDs())
	fmt.Println("districts:", g.Districts())

	next := g.Labels()
	next["B"] = "2"
	_ = g.ApplyLabels(next)
	fmt.Println("after move:", g.Districts())

	// Output:
	// units: [A B C]
	// districts: map[1:[A B] 2:[C]]
	// after move: map[1:[A] 2:[B C]]
}
