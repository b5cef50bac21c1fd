// SPDX-License-Identifier: MIT
// Package: redistrict/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   - rng     = nil                    (no randomness unless seeded)
//   - popFn   = ConstantPop(100)
//   - labelFn = SingleDistrict
//   - aland   = 1, side = 1            (unit squares)

package builder

import "math/rand"

// builderConfig aggregates all knobs used by constructors.
// It is passed by value to constructors.
type builderConfig struct {
	rng     *rand.Rand
	popFn   PopFn
	labelFn LabelFn

	aland float64
	side  float64
}

const (
	defaultPopulation = int64(100)
	defaultALand      = 1.0
	defaultSide       = 1.0
)

// newBuilderConfig applies all options in order over the defaults.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		popFn:   ConstantPop(defaultPopulation),
		labelFn: SingleDistrict,
		aland:   defaultALand,
		side:    defaultSide,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
