// SPDX-License-Identifier: MIT
// File: methods_labels.go
// Role: District labels: per-unit get/set, whole-plan snapshots and atomic commits,
//       grouping units by district.
// Determinism:
//   - Districts() lists members sorted by unit ID; DistrictLabels() sorts with CompareLabels.
// Concurrency:
//   - Labels live on units and are guarded by muUnit.

package core

import (
	"fmt"
	"sort"
	"strconv"
)

// Label returns the current district label of unit id.
func (g *Graph) Label(id string) (string, error) {
	g.muUnit.RLock()
	defer g.muUnit.RUnlock()
	u, ok := g.units[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrVertexNotFound, id)
	}

	return u.Label, nil
}

// SetLabel moves unit id to district label.
func (g *Graph) SetLabel(id, label string) error {
	g.muUnit.Lock()
	defer g.muUnit.Unlock()
	u, ok := g.units[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrVertexNotFound, id)
	}
	u.Label = label

	return nil
}

// Labels returns a detached snapshot of every unit's label.
// Complexity: O(V).
func (g *Graph) Labels() Assignment {
	g.muUnit.RLock()
	defer g.muUnit.RUnlock()
	out := make(Assignment, len(g.units))
	for id, u := range g.units {
		out[id] = u.Label
	}

	return out
}

// ApplyLabels commits a complete labeling.
//
// The assignment must name exactly the units of g; otherwise nothing is written
// and ErrIncompleteLabels is returned. Either every label changes or none does.
//
// Complexity: O(V).
func (g *Graph) ApplyLabels(a Assignment) error {
	g.muUnit.Lock()
	defer g.muUnit.Unlock()
	if len(a) != len(g.units) {
		return fmt.Errorf("%w: %d labels for %d units", ErrIncompleteLabels, len(a), len(g.units))
	}
	for id := range a {
		if _, ok := g.units[id]; !ok {
			return fmt.Errorf("%w: unknown unit %q", ErrIncompleteLabels, id)
		}
	}
	for id, label := range a {
		g.units[id].Label = label
	}

	return nil
}

// Districts groups unit IDs by label; each member list is sorted.
// Complexity: O(V·logV).
func (g *Graph) Districts() map[string][]string {
	return GroupByLabel(g.Labels())
}

// GroupByLabel groups the units of an assignment by label; members are sorted.
func GroupByLabel(a Assignment) map[string][]string {
	out := make(map[string][]string)
	for id, label := range a {
		out[label] = append(out[label], id)
	}
	for _, ids := range out {
		sort.Strings(ids)
	}

	return out
}

// SortedLabels returns the keys of a district map ordered by CompareLabels.
func SortedLabels[V any](districts map[string]V) []string {
	labels := make([]string, 0, len(districts))
	for label := range districts {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool { return CompareLabels(labels[i], labels[j]) < 0 })

	return labels
}

// CompareLabels orders district labels: numerically when both parse as
// integers ("2" < "10"), lexicographically otherwise. Numeric labels sort first.
func CompareLabels(a, b string) int {
	ai, aErr := strconv.ParseInt(a, 10, 64)
	bi, bErr := strconv.ParseInt(b, 10, 64)
	switch {
	case aErr == nil && bErr == nil:
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}

	return 0
}
