// SPDX-License-Identifier: MIT
// Package: redistrict/builder
//
// fn.go - population and labeling policies for synthetic plans.

package builder

import (
	"fmt"
	"math/rand"
	"strconv"
)

// PopFn returns the population of unit idx (row-major index). It must be
// deterministic for a given RNG seed; a nil rng is an error for random policies.
type PopFn func(idx int, rng *rand.Rand) (int64, error)

// LabelFn returns the initial district label of cell (r, c).
type LabelFn func(r, c int) string

// ConstantPop gives every unit the same population. Panics if pop < 0.
func ConstantPop(pop int64) PopFn {
	if pop < 0 {
		panic(fmt.Sprintf("ConstantPop: pop must be ≥ 0, got %d", pop))
	}

	return func(int, *rand.Rand) (int64, error) { return pop, nil }
}

// UniformPop draws populations uniformly in [min, max].
// Panics if min < 0 or max < min.
func UniformPop(min, max int64) PopFn {
	if min < 0 || max < min {
		panic(fmt.Sprintf("UniformPop: require 0 ≤ min ≤ max, got min=%d, max=%d", min, max))
	}

	return func(_ int, rng *rand.Rand) (int64, error) {
		if rng == nil {
			return 0, ErrNeedRandSource
		}

		return min + rng.Int63n(max-min+1), nil
	}
}

// PopList assigns pops[idx]; units beyond the list get 0.
func PopList(pops ...int64) PopFn {
	return func(idx int, _ *rand.Rand) (int64, error) {
		if idx < len(pops) {
			return pops[idx], nil
		}

		return 0, nil
	}
}

// SingleDistrict labels every cell "1".
func SingleDistrict(int, int) string { return "1" }

// Stripes splits cols columns into k vertical stripes labeled "1".."k".
// Panics unless 1 ≤ k ≤ cols.
func Stripes(k, cols int) LabelFn {
	if k < 1 || k > cols {
		panic(fmt.Sprintf("Stripes: require 1 ≤ k ≤ cols, got k=%d, cols=%d", k, cols))
	}

	return func(_, c int) string { return strconv.Itoa(c*k/cols + 1) }
}

// Cells labels every cell of a grid with cols columns as its own district.
func Cells(cols int) LabelFn {
	return func(r, c int) string { return strconv.Itoa(r*cols + c + 1) }
}
