// SPDX-License-Identifier: MIT
// File: methods_units.go
// Role: Unit lifecycle & queries.
//
// Determinism:
//   - UnitIDs() returns IDs sorted lexicographically ascending.
//
// Concurrency:
//   - Unit catalog protected by muUnit.
//   - Adjacency bootstrap under muEdgeAdj (to keep adjacency invariants consistent).
package core

import (
	"fmt"
	"sort"
)

// AddUnit inserts a copy of u into the graph.
//
// Implementation:
//   - Stage 1: Validate non-empty ID and non-negative attributes.
//   - Stage 2: Under muUnit write lock, reject duplicates and register the unit.
//   - Stage 3: Under muEdgeAdj write lock, bootstrap the adjacency bucket.
//
// Errors:
//   - ErrEmptyVertexID: if u.ID == "".
//   - ErrNegativeAttribute: if TotalPop, ALand or Perim is negative.
//   - ErrDuplicateUnit: if the ID is already present.
//
// Complexity: O(1) amortized.
func (g *Graph) AddUnit(u Unit) error {
	if u.ID == "" {
		return ErrEmptyVertexID
	}
	if u.TotalPop < 0 || u.ALand < 0 || u.Perim < 0 {
		return fmt.Errorf("%w: unit %q (pop=%d aland=%g perim=%g)",
			ErrNegativeAttribute, u.ID, u.TotalPop, u.ALand, u.Perim)
	}

	g.muUnit.Lock()
	defer g.muUnit.Unlock()

	if _, exists := g.units[u.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateUnit, u.ID)
	}
	stored := u
	g.units[u.ID] = &stored

	g.muEdgeAdj.Lock()
	if _, ok := g.adjacency[u.ID]; !ok {
		g.adjacency[u.ID] = make(map[string]string)
	}
	g.muEdgeAdj.Unlock()

	return nil
}

// HasUnit reports whether the unit ID exists (empty ID ⇒ false).
// Complexity: O(1).
func (g *Graph) HasUnit(id string) bool {
	if id == "" {
		return false
	}
	g.muUnit.RLock()
	defer g.muUnit.RUnlock()
	_, ok := g.units[id]

	return ok
}

// Unit returns a copy of the unit with the given ID.
// Complexity: O(1).
func (g *Graph) Unit(id string) (Unit, error) {
	if id == "" {
		return Unit{}, ErrEmptyVertexID
	}
	g.muUnit.RLock()
	defer g.muUnit.RUnlock()
	u, ok := g.units[id]
	if !ok {
		return Unit{}, fmt.Errorf("%w: %q", ErrVertexNotFound, id)
	}

	return *u, nil
}

// UnitIDs returns all unit IDs in sorted order.
// Complexity: O(V·logV)
func (g *Graph) UnitIDs() []string {
	g.muUnit.RLock()
	defer g.muUnit.RUnlock()
	ids := make([]string, 0, len(g.units))
	for id := range g.units {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// Units returns copies of all units ordered by ID.
// Complexity: O(V·logV)
func (g *Graph) Units() []Unit {
	g.muUnit.RLock()
	defer g.muUnit.RUnlock()
	out := make([]Unit, 0, len(g.units))
	for _, u := range g.units {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// UnitCount returns the number of units. O(1).
func (g *Graph) UnitCount() int {
	g.muUnit.RLock()
	defer g.muUnit.RUnlock()

	return len(g.units)
}

// TotalPopulation sums TotalPop over every unit. O(V).
func (g *Graph) TotalPopulation() int64 {
	g.muUnit.RLock()
	defer g.muUnit.RUnlock()
	var total int64
	for _, u := range g.units {
		total += u.TotalPop
	}

	return total
}
