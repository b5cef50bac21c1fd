// SPDX-License-Identifier: MIT
package bfs

import (
	"sort"

	"github.com/katalvlaran/redistrict/core"
)

// Components partitions the units of g into connected components.
// Each component is sorted by unit ID and components are ordered by their
// smallest member. Options (e.g. WithoutEdge) apply to every sweep.
//
// Complexity: O(V log V + E).
func Components(g *core.Graph, opts ...Option) ([][]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	seen := make(map[string]bool, g.UnitCount())
	var out [][]string
	for _, id := range g.UnitIDs() {
		if seen[id] {
			continue
		}
		res, err := BFS(g, id, opts...)
		if err != nil {
			return nil, err
		}
		comp := append([]string(nil), res.Order...)
		sort.Strings(comp)
		for _, v := range comp {
			seen[v] = true
		}
		out = append(out, comp)
	}

	return out, nil
}

// IsConnected reports whether g has exactly one component.
// The empty graph is not connected.
func IsConnected(g *core.Graph, opts ...Option) bool {
	ids := g.UnitIDs()
	if len(ids) == 0 {
		return false
	}
	res, err := BFS(g, ids[0], opts...)
	if err != nil {
		return false
	}

	return len(res.Order) == len(ids)
}

// Reachable returns the sorted set of units reachable from start.
func Reachable(g *core.Graph, start string, opts ...Option) ([]string, error) {
	res, err := BFS(g, start, opts...)
	if err != nil {
		return nil, err
	}
	ids := append([]string(nil), res.Order...)
	sort.Strings(ids)

	return ids, nil
}
