// SPDX-License-Identifier: MIT
package spanning

import (
	"sort"

	"github.com/katalvlaran/redistrict/core"
)

// Kruskal computes the minimum spanning tree of graph by Edge.Weight.
// It uses a disjoint-set with path compression and union by rank.
//
// Error Conditions:
//   - ErrInvalidGraph : graph is nil.
//   - ErrDisconnected : |V| == 0, or |V| > 1 and the graph is not connected.
//
// Steps:
//  1. Retrieve sorted unit IDs; |V| == 1 yields an empty tree.
//  2. Stable-sort edges by ascending Weight; equal weights keep Edge.ID order.
//  3. Scan edges, uniting endpoints in different sets, until |V|-1 edges are taken.
//
// Complexity: O(E log E + α(V)·E). Memory: O(E + V).
func Kruskal(graph *core.Graph) ([]core.Edge, float64, error) {
	if graph == nil {
		return nil, 0, ErrInvalidGraph
	}

	vertices := graph.UnitIDs()
	if len(vertices) == 0 {
		return nil, 0, ErrDisconnected
	}
	if len(vertices) == 1 {
		return []core.Edge{}, 0, nil
	}

	edges := graph.Edges()
	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].Weight < edges[j].Weight
	})

	ds := newDisjointSet(vertices)
	var (
		mst         = make([]core.Edge, 0, len(vertices)-1)
		totalWeight float64
		numVerts    = len(vertices)
	)
	for _, e := range edges {
		if !ds.union(e.From, e.To) {
			continue
		}
		mst = append(mst, *e)
		totalWeight += e.Weight
		if len(mst) == numVerts-1 {
			break
		}
	}

	if len(mst) < numVerts-1 {
		return nil, 0, ErrDisconnected
	}

	return mst, totalWeight, nil
}

// disjointSet is a union-find over unit IDs.
type disjointSet struct {
	parent map[string]string
	rank   map[string]int
}

func newDisjointSet(ids []string) *disjointSet {
	ds := &disjointSet{
		parent: make(map[string]string, len(ids)),
		rank:   make(map[string]int, len(ids)),
	}
	for _, id := range ids {
		ds.parent[id] = id
	}

	return ds
}

// find walks to the root, halving the path as it goes.
func (ds *disjointSet) find(u string) string {
	for ds.parent[u] != u {
		ds.parent[u] = ds.parent[ds.parent[u]]
		u = ds.parent[u]
	}

	return u
}

// union merges the sets of u and v; false if they were already joined.
func (ds *disjointSet) union(u, v string) bool {
	ru, rv := ds.find(u), ds.find(v)
	if ru == rv {
		return false
	}
	switch {
	case ds.rank[ru] < ds.rank[rv]:
		ds.parent[ru] = rv
	case ds.rank[ru] > ds.rank[rv]:
		ds.parent[rv] = ru
	default:
		ds.parent[rv] = ru
		ds.rank[ru]++
	}

	return true
}
