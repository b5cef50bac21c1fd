// SPDX-License-Identifier: MIT
// File: view.go
// Role: Non-mutating graph views: deep clones and induced subgraphs.
// Determinism:
//   - Preserves unit and edge IDs. No reordering guarantees beyond core rules.
// Concurrency:
//   - Read locks on source; result is a fresh graph instance.

package core

import "sync/atomic"

// Clone returns a deep copy of the Graph: units, edges, and adjacency.
// Attrs maps are shared with the source.
//
// Complexity: O(V + E)
func (g *Graph) Clone() *Graph {
	return InducedSubgraph(g, nil)
}

// InducedSubgraph returns a new Graph induced by the set "keep" of unit IDs:
// the result contains only units u where keep[u] is true, and all edges whose
// endpoints are both kept. A nil keep set keeps everything. The input graph is
// not mutated; edge IDs, distances, shared perimeters and weights are copied.
//
// Complexity: O(V + E). Concurrency: read locks only on source.
func InducedSubgraph(g *Graph, keep map[string]bool) *Graph {
	kept := func(id string) bool { return keep == nil || keep[id] }

	g.muUnit.RLock()
	n := len(g.units)
	if keep != nil {
		n = len(keep)
	}
	out := NewGraph(WithCapacity(n, 0))
	for id, u := range g.units {
		if !kept(id) {
			continue
		}
		cp := *u
		out.units[id] = &cp
		out.adjacency[id] = make(map[string]string)
	}
	g.muUnit.RUnlock()

	g.muEdgeAdj.RLock()
	// Carry the edge ID counter so future AddEdge() calls cannot collide with copied IDs.
	srcNextEdgeID := atomic.LoadUint64(&g.nextEdgeID)
	for eid, e := range g.edges {
		if !kept(e.From) || !kept(e.To) {
			continue
		}
		ne := &Edge{ID: eid, From: e.From, To: e.To, Distance: e.Distance, Weight: e.Weight}
		if e.SharedPerim != nil {
			p := *e.SharedPerim
			ne.SharedPerim = &p
		}
		out.edges[eid] = ne
		out.link(ne)
	}
	g.muEdgeAdj.RUnlock()
	atomic.StoreUint64(&out.nextEdgeID, srcNextEdgeID)

	return out
}

// SubgraphOf is InducedSubgraph over a list of unit IDs.
func SubgraphOf(g *Graph, ids []string) *Graph {
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}

	return InducedSubgraph(g, keep)
}

// CloneEmpty returns a Graph with copies of the units of g and no edges.
//
// Complexity: O(V)
func (g *Graph) CloneEmpty() *Graph {
	g.muUnit.RLock()
	defer g.muUnit.RUnlock()
	out := NewGraph(WithCapacity(len(g.units), 0))
	for id, u := range g.units {
		cp := *u
		out.units[id] = &cp
		out.adjacency[id] = make(map[string]string)
	}
	atomic.StoreUint64(&out.nextEdgeID, atomic.LoadUint64(&g.nextEdgeID))

	return out
}
