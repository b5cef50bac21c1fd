// SPDX-License-Identifier: MIT
// Package: redistrict/builder
//
// api.go - public entry-points for the builder package.
//
// Design contract:
//   - One orchestrator: BuildGraph(gopts, bopts, cons...). Creates g, resolves cfg, runs cons in order.
//   - Functional options (BuilderOption) resolve into an immutable builderConfig (no global state).
//   - Determinism: same inputs/options/seed and constructor order ⇒ identical plans.
//   - Safety: never panic at build time; return sentinel errors from constructors.

package builder

import (
	"fmt"

	"github.com/katalvlaran/redistrict/core"
)

// Constructor applies a deterministic graph mutation using the resolved
// builderConfig. Constructors validate parameters early, return sentinel
// errors and keep the same output for the same config and call order.
type Constructor func(g *core.Graph, cfg builderConfig) error

// BuildGraph creates a new core.Graph with graph options gopts, resolves the
// builder configuration from bopts, and applies all constructors in order.
// Any constructor error is wrapped with "BuildGraph: %w".
func BuildGraph(gopts []core.GraphOption, bopts []BuilderOption, cons ...Constructor) (*core.Graph, error) {
	g := core.NewGraph(gopts...)
	cfg := newBuilderConfig(bopts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildGraph: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, cfg); err != nil {
			return nil, fmt.Errorf("BuildGraph: %w", err)
		}
	}

	return g, nil
}

// GridPlan builds a rows×cols grid split into districts vertical stripes,
// the usual fixture for chain tests and dry runs. Later options override
// the stripe labeling.
func GridPlan(rows, cols, districts int, opts ...BuilderOption) (*core.Graph, error) {
	if districts < 1 || districts > cols {
		return nil, fmt.Errorf("%s: districts=%d must be in [1, cols=%d]: %w",
			methodGrid, districts, cols, ErrTooFewVertices)
	}
	bopts := append([]BuilderOption{WithLabelFn(Stripes(districts, cols))}, opts...)

	return BuildGraph(nil, bopts, Grid(rows, cols))
}
