// SPDX-License-Identifier: MIT
package recom

import (
	"math/rand"
	"sort"

	"github.com/katalvlaran/redistrict/core"
	"github.com/katalvlaran/redistrict/stats"
)

// PairOrder returns the district pairs to try, in order, and the effective
// tolerance.
//
// Districts are sorted by (population, label). When the current imbalance is
// below tol every unordered pair is visited in a random permutation and tol is
// kept. Otherwise each district of the lower half is paired with the upper
// half from the most populous down, and tol tightens to imbalance + margin.
func PairOrder(cur *stats.Snapshot, tol, margin float64, rng *rand.Rand) ([]Pair, float64) {
	labels := cur.Labels()
	sort.SliceStable(labels, func(i, j int) bool {
		pi, pj := cur.Population(labels[i]), cur.Population(labels[j])
		if pi != pj {
			return pi < pj
		}
		return core.CompareLabels(labels[i], labels[j]) < 0
	})

	if cur.Imbalance() < tol {
		var pairs []Pair
		for i, a := range labels {
			for _, b := range labels[i+1:] {
				if core.CompareLabels(a, b) < 0 {
					pairs = append(pairs, Pair{D0: a, D1: b})
				} else {
					pairs = append(pairs, Pair{D0: b, D1: a})
				}
			}
		}
		rng.Shuffle(len(pairs), func(i, j int) { pairs[i], pairs[j] = pairs[j], pairs[i] })

		return pairs, tol
	}

	k := len(labels) / 2
	lower, upper := labels[:k], labels[k:]
	pairs := make([]Pair, 0, len(lower)*len(upper))
	for _, a := range lower {
		for j := len(upper) - 1; j >= 0; j-- {
			pairs = append(pairs, Pair{D0: a, D1: upper[j]})
		}
	}

	return pairs, cur.Imbalance() + margin
}
