// SPDX-License-Identifier: MIT
// Package spanning computes minimum spanning trees of a core.Graph and uses
// them to draw random spanning trees of a merged district.
//
// What
//
//   - Kruskal: sort edges by Weight (stable on Edge.ID), union-find.
//   - Prim: grow from a root with a min-heap of frontier edges.
//   - RandomWeights/RandomTree: assign uniform random weights, then take the MST.
//     This is the classic approximation of a uniform spanning tree.
//   - Key: order-independent hash of a tree's edge set, used to skip trees
//     that were already tried.
//   - BuildTree: materialize a tree as its own core.Graph for betweenness and cuts.
//
// Determinism
//
//	Edges() is sorted by ID, weights are drawn in that order, and ties are
//	broken by ID, so a seeded *rand.Rand always yields the same tree.
//
// Complexity
//
//   - Kruskal: O(E log E + α(V)·E)
//   - Prim:    O(E log V)
//
// Errors
//
//   - ErrInvalidGraph  nil graph or unknown method.
//   - ErrDisconnected  empty graph or more than one component.
//   - ErrEmptyRoot     Prim without a root on a multi-unit graph.
package spanning
