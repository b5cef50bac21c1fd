// SPDX-License-Identifier: MIT
// Package spanning defines configuration options and sentinel errors for
// spanning-tree computation. It supports selecting between Kruskal and Prim via MSTOptions.
package spanning

import (
	"errors"

	"github.com/katalvlaran/redistrict/core"
)

// ErrInvalidGraph indicates that a nil graph or unknown method was supplied.
var ErrInvalidGraph = errors.New("spanning: invalid graph or method")

// ErrEmptyRoot indicates that no start unit was specified for Prim.
var ErrEmptyRoot = errors.New("spanning: empty root unit")

// ErrDisconnected indicates that no tree can cover every unit
// (the graph is empty or has more than one component).
var ErrDisconnected = errors.New("spanning: graph is disconnected")

// MethodPrim selects Prim's algorithm (grow from a root using a min-heap).
const MethodPrim = "prim"

// MethodKruskal selects Kruskal's algorithm (sort all edges and union-find).
const MethodKruskal = "kruskal"

// MSTOptions configures which MST algorithm to run, and for Prim, which starting unit to use.
//
// Both methods return the same tree whenever edge weights are distinct, which
// is the case (with probability one) after RandomWeights.
type MSTOptions struct {
	// Method to use: MethodPrim or MethodKruskal.
	Method string

	// Root is the starting unit for Prim. Unused by Kruskal.
	Root string
}

// Option configures MSTOptions.
type Option func(*MSTOptions)

// WithMethod sets the algorithm Method.
func WithMethod(m string) Option {
	return func(opts *MSTOptions) {
		opts.Method = m
	}
}

// WithRoot sets the starting unit for Prim.
func WithRoot(root string) Option {
	return func(opts *MSTOptions) {
		opts.Root = root
	}
}

// DefaultOptions returns MSTOptions for Kruskal.
func DefaultOptions() MSTOptions {
	return MSTOptions{Method: MethodKruskal}
}

// Compute runs the MST algorithm selected by opts.Method and returns the tree
// edges and their total weight. An unknown method yields ErrInvalidGraph.
func Compute(graph *core.Graph, opts MSTOptions) ([]core.Edge, float64, error) {
	switch opts.Method {
	case MethodKruskal:
		return Kruskal(graph)
	case MethodPrim:
		return Prim(graph, opts.Root)
	default:
		return nil, 0, ErrInvalidGraph
	}
}
