// SPDX-License-Identifier: MIT
// Package: redistrict/builder
//
// impl_grid.go - implementation of Grid(rows, cols) constructor.
//
// Canonical model:
//   • 2D orthogonal grid of square cells with 4-neighborhood.
//   • Unit IDs use the fixed scheme "r,c" (row-major order).
//   • Each cell: TotalPop = cfg.popFn(idx), ALand = cfg.aland, Perim = 4·cfg.side,
//     Label = cfg.labelFn(r, c).
//   • Each edge: SharedPerim = cfg.side, Distance = cfg.side.
//
// Complexity:
//   • Time: O(rows*cols) units + O(rows*cols) edges.
//
// Determinism:
//   • Stable unit order: row-major (r asc, then c asc).
//   • Stable edge order: for each (r,c) emit Right then Bottom if present,
//     so edge IDs are the same for the same grid.

package builder

import (
	"fmt"

	"github.com/katalvlaran/redistrict/core"
)

const (
	methodGrid = "Grid"
	minGridDim = 1
	gridIDFmt  = "%d,%d"
)

// GridID returns the unit ID of cell (r, c).
func GridID(r, c int) string { return fmt.Sprintf(gridIDFmt, r, c) }

// Grid returns a Constructor that builds a rows×cols grid of unit squares.
func Grid(rows, cols int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if rows < minGridDim || cols < minGridDim {
			return fmt.Errorf("%s: rows=%d, cols=%d (each must be ≥ %d): %w",
				methodGrid, rows, cols, minGridDim, ErrTooFewVertices)
		}

		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				id := GridID(r, c)
				pop, err := cfg.popFn(r*cols+c, cfg.rng)
				if err != nil {
					return fmt.Errorf("%s: population of %s: %w", methodGrid, id, err)
				}
				u := core.Unit{
					ID:       id,
					TotalPop: pop,
					ALand:    cfg.aland,
					Perim:    4 * cfg.side,
					Label:    cfg.labelFn(r, c),
				}
				if err := g.AddUnit(u); err != nil {
					return fmt.Errorf("%s: AddUnit(%s): %w", methodGrid, id, err)
				}
			}
		}

		link := func(u, v string) error {
			if _, err := g.AddEdge(u, v, core.WithSharedPerim(cfg.side), core.WithDistance(cfg.side)); err != nil {
				return fmt.Errorf("%s: AddEdge(%s-%s): %w", methodGrid, u, v, err)
			}
			return nil
		}
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				u := GridID(r, c)
				if c+1 < cols {
					if err := link(u, GridID(r, c+1)); err != nil {
						return err
					}
				}
				if r+1 < rows {
					if err := link(u, GridID(r+1, c)); err != nil {
						return err
					}
				}
			}
		}

		return nil
	}
}
