// SPDX-License-Identifier: MIT
// Package core defines the central Graph, Unit, and Edge types,
// and provides thread-safe primitives for building, querying, labeling and cloning
// the dual graph of a redistricting plan.
//
// All core APIs use separate sync.RWMutex locks internally (muUnit for units,
// muEdgeAdj for edges and adjacency), so graphs can be inspected from several
// goroutines while one owner mutates labels.
//
// This file declares Unit, Edge, Graph, GraphOption, EdgeOption,
// sentinel errors, and the NewGraph constructor.
//
// Errors:
//
//	ErrEmptyVertexID       - unit ID is the empty string.
//	ErrVertexNotFound      - requested unit does not exist.
//	ErrDuplicateUnit       - a unit with the same ID was already added.
//	ErrEdgeNotFound        - requested edge does not exist.
//	ErrLoopNotAllowed      - edge from a unit to itself.
//	ErrMultiEdgeNotAllowed - second edge between the same pair of units.
//	ErrNegativeAttribute   - negative population, land area, perimeter or shared perimeter.
//	ErrIncompleteLabels    - an Assignment does not cover every unit.
package core

import (
	"errors"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyVertexID indicates that the provided Unit has an empty ID.
	ErrEmptyVertexID = errors.New("core: unit ID is empty")

	// ErrVertexNotFound indicates an operation referenced a non-existent unit.
	ErrVertexNotFound = errors.New("core: unit not found")

	// ErrDuplicateUnit indicates AddUnit was called twice with the same ID.
	ErrDuplicateUnit = errors.New("core: duplicate unit")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrLoopNotAllowed indicates a self-loop was attempted.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrMultiEdgeNotAllowed indicates a parallel edge was attempted.
	ErrMultiEdgeNotAllowed = errors.New("core: multi-edges not allowed")

	// ErrNegativeAttribute indicates a unit or edge attribute below zero.
	ErrNegativeAttribute = errors.New("core: negative attribute")

	// ErrIncompleteLabels indicates a labeling that misses units or names unknown ones.
	ErrIncompleteLabels = errors.New("core: labeling does not cover the unit set")
)

// Unit is one spatial unit (tract, block group, county-VTD, ...) of the dual graph.
//
// TotalPop, ALand and Perim are fixed at load time. Label is the district the
// unit currently belongs to and is the only field the chain mutates.
type Unit struct {
	// ID uniquely identifies this Unit within its Graph (typically a GEOID).
	ID string

	// TotalPop is the census population of the unit.
	TotalPop int64

	// ALand is the land area of the unit.
	ALand float64

	// Perim is the full boundary length of the unit.
	Perim float64

	// Label is the current district label.
	Label string

	// Attrs carries pass-through attributes the chain never reads.
	// It is shared, not deep-copied, by Clone and InducedSubgraph.
	Attrs map[string]interface{}
}

// Edge is an adjacency between two units.
//
// SharedPerim is nil when the loader had no shared boundary length for the pair
// (e.g. edges added to stitch islands together); such edges still count for
// connectivity but contribute nothing to perimeter corrections.
type Edge struct {
	// ID uniquely identifies this edge in the Graph ("e1", "e2", ...).
	ID string

	// From and To are the endpoint unit IDs. The edge is undirected.
	From string
	To   string

	// Distance between unit centroids.
	Distance float64

	// SharedPerim is the length of the common boundary, or nil if absent.
	SharedPerim *float64

	// Weight is scratch space for spanning-tree sampling.
	Weight float64
}

// SharedPerimOrZero returns the shared boundary length, treating absent as 0.
func (e *Edge) SharedPerimOrZero() float64 {
	if e.SharedPerim == nil {
		return 0
	}

	return *e.SharedPerim
}

// Other returns the endpoint opposite to id.
func (e *Edge) Other(id string) string {
	if e.From == id {
		return e.To
	}

	return e.From
}

// Assignment maps unit IDs to district labels. It is a detached snapshot:
// mutating it never changes a Graph until ApplyLabels is called.
type Assignment map[string]string

// Clone returns an independent copy of the assignment.
func (a Assignment) Clone() Assignment {
	out := make(Assignment, len(a))
	for id, label := range a {
		out[id] = label
	}

	return out
}

// GraphOption configures a Graph before creation.
type GraphOption func(g *Graph)

// WithCapacity pre-sizes the unit and edge catalogs.
func WithCapacity(units, edges int) GraphOption {
	return func(g *Graph) {
		if units > 0 {
			g.units = make(map[string]*Unit, units)
			g.adjacency = make(map[string]map[string]string, units)
		}
		if edges > 0 {
			g.edges = make(map[string]*Edge, edges)
		}
	}
}

// EdgeOption configures properties of individual edges when added.
type EdgeOption func(*Edge)

// WithDistance sets the centroid distance of the edge.
func WithDistance(d float64) EdgeOption {
	return func(e *Edge) { e.Distance = d }
}

// WithSharedPerim sets the shared boundary length of the edge.
func WithSharedPerim(p float64) EdgeOption {
	return func(e *Edge) {
		v := p
		e.SharedPerim = &v
	}
}

// WithWeight sets the initial scratch weight of the edge.
func WithWeight(w float64) EdgeOption {
	return func(e *Edge) { e.Weight = w }
}

// Graph is the in-memory dual graph: units keyed by ID, undirected simple edges.
//
// muUnit protects the units map (including labels); muEdgeAdj protects edges and adjacency.
// Lock order is always muUnit -> muEdgeAdj.
// nextEdgeID is an atomic counter for unique Edge.ID generation.
type Graph struct {
	muUnit    sync.RWMutex // guards units
	muEdgeAdj sync.RWMutex // guards edges and adjacency

	nextEdgeID uint64           // atomic edge ID generator
	units      map[string]*Unit // unit ID → Unit
	edges      map[string]*Edge // edge ID → Edge

	// adjacency[u][v] = edge ID; mirrored for both endpoints.
	adjacency map[string]map[string]string
}

// NewGraph creates an empty Graph.
// Complexity: O(1)
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		units:     make(map[string]*Unit),
		edges:     make(map[string]*Edge),
		adjacency: make(map[string]map[string]string),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}
