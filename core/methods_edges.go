// SPDX-License-Identifier: MIT
// File: methods_edges.go
// Role: Edge lifecycle & queries: AddEdge/RemoveEdge/HasEdge/EdgeBetween/Edges/EdgeCount,
//       neighbor enumeration and scratch-weight updates. Also: nextEdgeID().
// Determinism:
//   - Edges() returns edges sorted by Edge.ID asc.
//   - NeighborIDs() returns IDs sorted asc.
//   - nextEdgeID() is monotonic and stable ("e" + decimal).
// Concurrency:
//   - Mutations under muEdgeAdj write lock.
//   - Read queries under muEdgeAdj read lock.

package core

import (
	"fmt"
	"sort"
	"strconv"
	"sync/atomic"
)

// edgeIDPrefix keeps human-readable IDs like "e1", "e2", ...
const edgeIDPrefix = 'e'

// AddEdge joins two existing units with an undirected edge and returns its ID.
//
// Steps:
//  1. Validate IDs, loops and shared perimeter sign.
//  2. Both endpoints must already exist (units carry attributes, so no auto-add).
//  3. Lock muEdgeAdj, reject a parallel edge.
//  4. Generate eid atomically, store the edge and mirror adjacency.
//
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(from, to string, opts ...EdgeOption) (string, error) {
	if from == "" || to == "" {
		return "", ErrEmptyVertexID
	}
	if from == to {
		return "", fmt.Errorf("%w: %q", ErrLoopNotAllowed, from)
	}
	e := &Edge{From: from, To: to}
	for _, opt := range opts {
		opt(e)
	}
	if e.SharedPerim != nil && *e.SharedPerim < 0 {
		return "", fmt.Errorf("%w: shared_perim %g on %s-%s", ErrNegativeAttribute, *e.SharedPerim, from, to)
	}

	g.muUnit.RLock()
	_, okFrom := g.units[from]
	_, okTo := g.units[to]
	g.muUnit.RUnlock()
	if !okFrom {
		return "", fmt.Errorf("%w: %q", ErrVertexNotFound, from)
	}
	if !okTo {
		return "", fmt.Errorf("%w: %q", ErrVertexNotFound, to)
	}

	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	if _, exists := g.adjacency[from][to]; exists {
		return "", fmt.Errorf("%w: %s-%s", ErrMultiEdgeNotAllowed, from, to)
	}

	e.ID = nextEdgeID(g)
	g.edges[e.ID] = e
	g.link(e)

	return e.ID, nil
}

// RemoveEdge deletes one edge and its mirror.
// Complexity: O(1).
func (g *Graph) RemoveEdge(eid string) error {
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()
	e, ok := g.edges[eid]
	if !ok {
		return fmt.Errorf("%w: %q", ErrEdgeNotFound, eid)
	}
	delete(g.edges, eid)
	delete(g.adjacency[e.From], e.To)
	delete(g.adjacency[e.To], e.From)

	return nil
}

// HasEdge reports whether units a and b are adjacent.
// Complexity: O(1).
func (g *Graph) HasEdge(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	_, ok := g.adjacency[a][b]

	return ok
}

// EdgeBetween returns the edge joining a and b, if any.
// Complexity: O(1).
func (g *Graph) EdgeBetween(a, b string) (*Edge, bool) {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	eid, ok := g.adjacency[a][b]
	if !ok {
		return nil, false
	}

	return g.edges[eid], true
}

// Edges returns all edges sorted by their ID. The pointers alias graph
// storage and must be treated as read-only; use SetEdgeWeight to write.
// Complexity: O(E·logE)
func (g *Graph) Edges() []*Edge {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// EdgeCount returns total number of edges. O(1).
func (g *Graph) EdgeCount() int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.edges)
}

// NeighborIDs returns the sorted IDs of all units adjacent to id.
// Complexity: O(d log d)
func (g *Graph) NeighborIDs(id string) ([]string, error) {
	if id == "" {
		return nil, ErrEmptyVertexID
	}
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	nbrs, ok := g.adjacency[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrVertexNotFound, id)
	}
	ids := make([]string, 0, len(nbrs))
	for v := range nbrs {
		ids = append(ids, v)
	}
	sort.Strings(ids)

	return ids, nil
}

// Degree returns the number of units adjacent to id.
func (g *Graph) Degree(id string) (int, error) {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	nbrs, ok := g.adjacency[id]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrVertexNotFound, id)
	}

	return len(nbrs), nil
}

// SetEdgeWeight overwrites the scratch weight of one edge.
// Complexity: O(1).
func (g *Graph) SetEdgeWeight(eid string, w float64) error {
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()
	e, ok := g.edges[eid]
	if !ok {
		return fmt.Errorf("%w: %q", ErrEdgeNotFound, eid)
	}
	e.Weight = w

	return nil
}

// link records e in both adjacency directions. Caller holds muEdgeAdj.
func (g *Graph) link(e *Edge) {
	if g.adjacency[e.From] == nil {
		g.adjacency[e.From] = make(map[string]string)
	}
	if g.adjacency[e.To] == nil {
		g.adjacency[e.To] = make(map[string]string)
	}
	g.adjacency[e.From][e.To] = e.ID
	g.adjacency[e.To][e.From] = e.ID
}

// nextEdgeID returns the next textual edge ID without fmt allocations.
func nextEdgeID(g *Graph) string {
	n := atomic.AddUint64(&g.nextEdgeID, 1)
	buf := make([]byte, 0, 21)
	buf = append(buf, edgeIDPrefix)
	buf = strconv.AppendUint(buf, n, 10)

	return string(buf)
}

// InsertEdge stores a copy of e keeping its ID, e.g. when a spanning tree is
// assembled from edges of a larger graph. Endpoints must exist; the ID and the
// unit pair must both be unused.
//
// Complexity: O(1).
func (g *Graph) InsertEdge(e Edge) error {
	if e.ID == "" || e.From == "" || e.To == "" {
		return ErrEmptyVertexID
	}
	if e.From == e.To {
		return fmt.Errorf("%w: %q", ErrLoopNotAllowed, e.From)
	}
	if !g.HasUnit(e.From) {
		return fmt.Errorf("%w: %q", ErrVertexNotFound, e.From)
	}
	if !g.HasUnit(e.To) {
		return fmt.Errorf("%w: %q", ErrVertexNotFound, e.To)
	}

	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()
	if _, exists := g.adjacency[e.From][e.To]; exists {
		return fmt.Errorf("%w: %s-%s", ErrMultiEdgeNotAllowed, e.From, e.To)
	}
	if _, exists := g.edges[e.ID]; exists {
		return fmt.Errorf("%w: edge ID %q in use", ErrMultiEdgeNotAllowed, e.ID)
	}
	cp := e
	if e.SharedPerim != nil {
		p := *e.SharedPerim
		cp.SharedPerim = &p
	}
	g.edges[cp.ID] = &cp
	g.link(&cp)

	return nil
}
