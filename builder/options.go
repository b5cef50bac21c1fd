// SPDX-License-Identifier: MIT
// Package: redistrict/builder
//
// options.go - functional options for the builder package.
//
// Contract:
//   - Option constructors validate and panic on meaningless inputs.
//     Constructors themselves never panic.
//   - Determinism is explicit: seeding is done via WithSeed or WithRand.

package builder

import (
	"math/rand"
)

// BuilderOption customizes a builderConfig before graph construction begins.
type BuilderOption func(*builderConfig)

// WithRand provides an explicit RNG for stochastic population draws.
// Panics on nil; prefer WithSeed for reproducible runs.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a new *rand.Rand with the given seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithPopFn overrides the per-unit population generator. Panics on nil.
func WithPopFn(fn PopFn) BuilderOption {
	if fn == nil {
		panic("builder: WithPopFn(nil)")
	}
	return func(c *builderConfig) {
		c.popFn = fn
	}
}

// WithLabelFn overrides the initial district labeling. Panics on nil.
func WithLabelFn(fn LabelFn) BuilderOption {
	if fn == nil {
		panic("builder: WithLabelFn(nil)")
	}
	return func(c *builderConfig) {
		c.labelFn = fn
	}
}

// WithCellGeometry sets the land area and side length of every cell.
// Panics unless both are positive.
func WithCellGeometry(aland, side float64) BuilderOption {
	if aland <= 0 || side <= 0 {
		panic("builder: WithCellGeometry(aland<=0 || side<=0)")
	}
	return func(c *builderConfig) {
		c.aland, c.side = aland, side
	}
}
