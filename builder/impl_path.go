// SPDX-License-Identifier: MIT
// Package: redistrict/builder
//
// impl_path.go - implementation of Path(n) constructor.
//
// Contract:
//   - n ≥ 1 (else ErrTooFewVertices).
//   - A 1×n strip of cells: IDs "0,0".."0,n-1", labels cfg.labelFn(0, i).
//   - Edges (i-1)–i for i=1..n-1 in increasing order.

package builder

import (
	"fmt"

	"github.com/katalvlaran/redistrict/core"
)

const (
	methodPath   = "Path"
	minPathNodes = 1
)

// Path returns a Constructor that builds a single row of n cells.
func Path(n int) Constructor {
	grid := Grid(1, n)

	return func(g *core.Graph, cfg builderConfig) error {
		if n < minPathNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewVertices)
		}

		return grid(g, cfg)
	}
}
