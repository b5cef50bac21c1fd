// SPDX-License-Identifier: MIT
// Package bfs provides breadth-first search over a core.Graph,
// returning hop distances, parent links, and visit order, plus the
// connectivity helpers the redistricting chain relies on.
//
// What
//
//   - BFS explores units in non-decreasing hop distance from a start unit
//     and returns a BFSResult (Order, Depth, Parent).
//   - Components splits a graph into connected components.
//   - IsConnected and Reachable answer contiguity questions for a district
//     or for a spanning tree with one edge hidden (WithoutEdge).
//
// Determinism
//
//	core.Graph.NeighborIDs returns sorted IDs and BFS enqueues neighbors in
//	that order, so visit sequences and component lists are reproducible.
//
// Complexity (V = units, E = edges)
//
//   - Time:   O(V + E) per sweep
//   - Memory: O(V)
//
// Options
//
//   - WithContext(ctx):       cancellation.
//   - WithMaxDepth(d):        stop beyond depth d (>0); negative is ErrOptionViolation.
//   - WithFilterNeighbor(fn): skip edges for which fn(curr, nbr) == false.
//   - WithoutEdge(a, b):      hide one undirected edge.
//   - WithOnVisit(fn):        hook during visit; returning an error aborts.
//
// Errors
//
//   - ErrGraphNil, ErrStartVertexNotFound, ErrOptionViolation, ErrNeighbors.
//   - Wrapped OnVisit errors and ctx.Err() on cancellation.
package bfs
