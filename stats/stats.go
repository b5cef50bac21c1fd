// SPDX-License-Identifier: MIT
// Package stats computes per-district statistics and the plan-level
// population imbalance for a labeled core.Graph.
//
// Compute is pure: it reads units, edges and a labeling and returns a
// Snapshot. It is called several times per attempted move, so it runs in
// O(V + E) with one pass over units and one over edges.
package stats

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/redistrict/core"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sentinel errors for statistics computation.
var (
	// ErrNoDistricts indicates the labeling produced no district at all.
	ErrNoDistricts = errors.New("stats: no districts")

	// ErrNonPositiveIdeal indicates an ideal population ≤ 0.
	ErrNonPositiveIdeal = errors.New("stats: ideal population must be positive")

	// ErrUnlabeledUnit indicates a unit missing from the labeling.
	ErrUnlabeledUnit = errors.New("stats: unit has no label")
)

// DistrictStats is one row of the per-district statistics table.
type DistrictStats struct {
	Label        string  `json:"district"`
	Plan         int     `json:"plan"`
	ALand        float64 `json:"aland"`
	Perim        float64 `json:"perim"`
	PolsbyPopper float64 `json:"polsby_popper"`
	TotalPop     int64   `json:"total_pop"`
	Density      float64 `json:"density"`
}

// Summary is the one-row plan summary.
type Summary struct {
	Plan         int     `json:"plan"`
	PopImbalance float64 `json:"pop_imbalance"`
	PolsbyPopper float64 `json:"polsby_popper"`
}

// Snapshot holds statistics for one plan. Districts are ordered by
// core.CompareLabels.
type Snapshot struct {
	Districts []DistrictStats
	Summary   Summary
	Ideal     float64

	byLabel map[string]int
}

// District returns the row for label.
func (s *Snapshot) District(label string) (DistrictStats, bool) {
	i, ok := s.byLabel[label]
	if !ok {
		return DistrictStats{}, false
	}

	return s.Districts[i], true
}

// Population returns the total population of label, or 0 if absent.
func (s *Snapshot) Population(label string) int64 {
	d, _ := s.District(label)

	return d.TotalPop
}

// Imbalance returns the plan's population imbalance in percent.
func (s *Snapshot) Imbalance() float64 { return s.Summary.PopImbalance }

// Labels returns the district labels in row order.
func (s *Snapshot) Labels() []string {
	out := make([]string, len(s.Districts))
	for i, d := range s.Districts {
		out[i] = d.Label
	}

	return out
}

// TotalPopulation sums population over all districts.
func (s *Snapshot) TotalPopulation() int64 {
	var total int64
	for _, d := range s.Districts {
		total += d.TotalPop
	}

	return total
}

// Compute returns the statistics of g under labels for plan index plan.
//
// Net perimeter of a district is the sum of its units' perimeters minus twice
// the shared perimeter of every edge with both endpoints inside it; an absent
// shared perimeter counts as 0.
//
// Errors: ErrNonPositiveIdeal, ErrUnlabeledUnit, ErrNoDistricts.
func Compute(g *core.Graph, labels core.Assignment, plan int, ideal float64) (*Snapshot, error) {
	if ideal <= 0 || math.IsNaN(ideal) {
		return nil, fmt.Errorf("%w: %g", ErrNonPositiveIdeal, ideal)
	}

	acc := make(map[string]*DistrictStats)
	for _, u := range g.Units() {
		label, ok := labels[u.ID]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnlabeledUnit, u.ID)
		}
		d := acc[label]
		if d == nil {
			d = &DistrictStats{Label: label, Plan: plan}
			acc[label] = d
		}
		d.ALand += u.ALand
		d.Perim += u.Perim
		d.TotalPop += u.TotalPop
	}
	if len(acc) == 0 {
		return nil, ErrNoDistricts
	}

	for _, e := range g.Edges() {
		la, lb := labels[e.From], labels[e.To]
		if la == lb {
			acc[la].Perim -= 2 * e.SharedPerimOrZero()
		}
	}

	order := core.SortedLabels(acc)
	snap := &Snapshot{
		Districts: make([]DistrictStats, len(order)),
		Ideal:     ideal,
		byLabel:   make(map[string]int, len(order)),
	}
	pops := make([]float64, len(order))
	pp := make([]float64, len(order))
	for i, label := range order {
		d := acc[label]
		d.PolsbyPopper = PolsbyPopper(d.ALand, d.Perim)
		d.Density = Density(d.TotalPop, d.ALand)
		snap.Districts[i] = *d
		snap.byLabel[label] = i
		pops[i] = float64(d.TotalPop)
		pp[i] = d.PolsbyPopper
	}
	snap.Summary = Summary{
		Plan:         plan,
		PopImbalance: Imbalance(floats.Max(pops), floats.Min(pops), ideal),
		PolsbyPopper: stat.Mean(pp, nil),
	}

	return snap, nil
}

// PolsbyPopper returns 4π·aland/perim²·100, or 0 when perim is 0.
func PolsbyPopper(aland, perim float64) float64 {
	if perim == 0 {
		return 0
	}

	return 4 * math.Pi * aland / (perim * perim) * 100
}

// Density returns pop/aland, or 0 when aland is 0.
func Density(pop int64, aland float64) float64 {
	if aland == 0 {
		return 0
	}

	return float64(pop) / aland
}

// Imbalance returns (max − min)/ideal·100.
func Imbalance(maxPop, minPop, ideal float64) float64 {
	return (maxPop - minPop) / ideal * 100
}

// Ideal returns total/districts, the per-district target population.
func Ideal(total int64, districts int) (float64, error) {
	if districts <= 0 || total <= 0 {
		return 0, fmt.Errorf("%w: total=%d districts=%d", ErrNonPositiveIdeal, total, districts)
	}

	return float64(total) / float64(districts), nil
}
