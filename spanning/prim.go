// SPDX-License-Identifier: MIT
package spanning

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/redistrict/core"
)

// Prim computes the minimum spanning tree of graph by growing outwards from
// root using a min-heap of frontier edges.
//
// Error Conditions:
//   - ErrInvalidGraph        : graph is nil.
//   - ErrDisconnected        : |V| == 0, or the tree cannot reach every unit.
//   - ErrEmptyRoot           : root is "" on a graph with more than one unit.
//   - core.ErrVertexNotFound : root does not exist.
//
// Ties on Weight are broken by Edge.ID so the result is reproducible.
//
// Complexity: O(E log V) time, O(V + E) memory.
func Prim(graph *core.Graph, root string) ([]core.Edge, float64, error) {
	if graph == nil {
		return nil, 0, ErrInvalidGraph
	}
	n := graph.UnitCount()
	if n == 0 {
		return nil, 0, ErrDisconnected
	}
	if root == "" {
		if n > 1 {
			return nil, 0, ErrEmptyRoot
		}
		root = graph.UnitIDs()[0]
	}
	if !graph.HasUnit(root) {
		return nil, 0, fmt.Errorf("%w: %q", core.ErrVertexNotFound, root)
	}
	if n == 1 {
		return []core.Edge{}, 0, nil
	}

	visited := make(map[string]bool, n)
	mst := make([]core.Edge, 0, n-1)
	var totalWeight float64
	pq := &edgePQ{}
	heap.Init(pq)

	grow := func(u string) error {
		visited[u] = true
		nbrs, err := graph.NeighborIDs(u)
		if err != nil {
			return err
		}
		for _, v := range nbrs {
			if visited[v] {
				continue
			}
			e, ok := graph.EdgeBetween(u, v)
			if !ok {
				return fmt.Errorf("%w: %s-%s", core.ErrEdgeNotFound, u, v)
			}
			heap.Push(pq, frontierEdge{edge: e, to: v})
		}

		return nil
	}

	if err := grow(root); err != nil {
		return nil, 0, err
	}
	for pq.Len() > 0 && len(mst) < n-1 {
		fe := heap.Pop(pq).(frontierEdge)
		if visited[fe.to] {
			continue
		}
		mst = append(mst, *fe.edge)
		totalWeight += fe.edge.Weight
		if err := grow(fe.to); err != nil {
			return nil, 0, err
		}
	}

	if len(mst) < n-1 {
		return nil, 0, ErrDisconnected
	}

	return mst, totalWeight, nil
}

// frontierEdge is a heap entry: an undirected edge plus the endpoint it leads to.
type frontierEdge struct {
	edge *core.Edge
	to   string
}

// edgePQ implements heap.Interface for a min-heap of frontier edges,
// ordered by Weight, then Edge.ID.
type edgePQ []frontierEdge

func (pq edgePQ) Len() int { return len(pq) }

func (pq edgePQ) Less(i, j int) bool {
	if pq[i].edge.Weight != pq[j].edge.Weight {
		return pq[i].edge.Weight < pq[j].edge.Weight
	}

	return pq[i].edge.ID < pq[j].edge.ID
}

func (pq edgePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *edgePQ) Push(x interface{}) { *pq = append(*pq, x.(frontierEdge)) }

func (pq *edgePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
