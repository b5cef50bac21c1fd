// SPDX-License-Identifier: MIT
// Package core provides the in-memory dual graph a redistricting chain runs on.
//
// A Graph G = (U, E) holds:
//
//   - Units: spatial units with fixed attributes (TotalPop, ALand, Perim),
//     a mutable district Label and an open Attrs map for pass-through data.
//   - Edges: undirected adjacencies with a centroid Distance, an optional
//     SharedPerim (nil = absent) and a scratch Weight used by tree samplers.
//
// The graph is simple: no self-loops, no parallel edges. Endpoints must exist
// before an edge is added, because a unit without attributes is meaningless.
//
// Determinism:
//
//	UnitIDs(), Units(), Edges() and NeighborIDs() return sorted results, so every
//	algorithm layered on top is reproducible for a fixed random seed.
//
// Labels:
//
//	Label/SetLabel     - single unit
//	Labels()           - detached Assignment snapshot (unit → label)
//	ApplyLabels(a)     - all-or-nothing commit of a complete Assignment
//	Districts()        - label → sorted unit IDs
//	CompareLabels      - numeric-aware label ordering ("2" < "10")
//
// Views:
//
//	Clone()                 - deep copy
//	CloneEmpty()            - units only
//	InducedSubgraph(g, keep) / SubgraphOf(g, ids) - units in keep and edges among them
//
// Errors:
//
//	ErrEmptyVertexID, ErrVertexNotFound, ErrDuplicateUnit, ErrEdgeNotFound,
//	ErrLoopNotAllowed, ErrMultiEdgeNotAllowed, ErrNegativeAttribute, ErrIncompleteLabels.
package core
