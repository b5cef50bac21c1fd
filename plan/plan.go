// SPDX-License-Identifier: MIT
// Package plan models a district plan as a partition of unit IDs, computes
// its label-agnostic fingerprint, tracks the fingerprints a chain has already
// accepted, and validates partitions against a core.Graph.
package plan

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"

	"github.com/katalvlaran/redistrict/bfs"
	"github.com/katalvlaran/redistrict/core"
)

// Sentinel errors for plan validation.
var (
	// ErrUnlabeledUnit indicates a graph unit absent from the labeling.
	ErrUnlabeledUnit = errors.New("plan: unit has no label")

	// ErrUnknownUnit indicates a labeled unit absent from the graph.
	ErrUnknownUnit = errors.New("plan: labeled unit not in graph")

	// ErrDiscontiguous indicates a district whose induced subgraph is disconnected.
	ErrDiscontiguous = errors.New("plan: district is not contiguous")
)

// Fingerprint identifies a partition independently of label names.
type Fingerprint string

// Short returns the first 12 hex digits, for logs.
func (f Fingerprint) Short() string {
	if len(f) <= 12 {
		return string(f)
	}

	return string(f[:12])
}

// Plan is one labeled partition: label → sorted unit IDs.
type Plan struct {
	Step      int
	Districts map[string][]string
}

// FromAssignment groups a labeling into a Plan.
func FromAssignment(step int, a core.Assignment) *Plan {
	return &Plan{Step: step, Districts: core.GroupByLabel(a)}
}

// Labels returns the district labels ordered by core.CompareLabels.
func (p *Plan) Labels() []string { return core.SortedLabels(p.Districts) }

// Assignment flattens the plan back into unit → label.
func (p *Plan) Assignment() core.Assignment {
	out := make(core.Assignment)
	for label, ids := range p.Districts {
		for _, id := range ids {
			out[id] = label
		}
	}

	return out
}

// Fingerprint hashes the sorted collection of sorted unit-ID tuples.
func (p *Plan) Fingerprint() Fingerprint {
	return FingerprintOf(p.Districts)
}

// FingerprintOf computes the fingerprint of a label → members map.
// Members need not be sorted; labels do not participate.
func FingerprintOf(districts map[string][]string) Fingerprint {
	tuples := make([][]string, 0, len(districts))
	for _, ids := range districts {
		t := append([]string(nil), ids...)
		sort.Strings(t)
		tuples = append(tuples, t)
	}
	sort.Slice(tuples, func(i, j int) bool { return lessTuple(tuples[i], tuples[j]) })

	h := fnv.New128a()
	var buf [4]byte
	for _, t := range tuples {
		binary.BigEndian.PutUint32(buf[:], uint32(len(t)))
		_, _ = h.Write(buf[:])
		for _, id := range t {
			binary.BigEndian.PutUint32(buf[:], uint32(len(id)))
			_, _ = h.Write(buf[:])
			_, _ = h.Write([]byte(id))
		}
	}

	return Fingerprint(hex.EncodeToString(h.Sum(nil)))
}

// FingerprintAssignment is FingerprintOf over a labeling.
func FingerprintAssignment(a core.Assignment) Fingerprint {
	return FingerprintOf(core.GroupByLabel(a))
}

func lessTuple(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := strings.Compare(a[i], b[i]); c != 0 {
			return c < 0
		}
	}

	return len(a) < len(b)
}

// Validate checks that a labels every unit of g exactly once, names no
// unknown units, and that every district induces a connected subgraph.
func Validate(g *core.Graph, a core.Assignment) error {
	for _, id := range g.UnitIDs() {
		if l, ok := a[id]; !ok || l == "" {
			return fmt.Errorf("%w: %q", ErrUnlabeledUnit, id)
		}
	}
	if len(a) != g.UnitCount() {
		for id := range a {
			if !g.HasUnit(id) {
				return fmt.Errorf("%w: %q", ErrUnknownUnit, id)
			}
		}
	}

	districts := core.GroupByLabel(a)
	for _, label := range core.SortedLabels(districts) {
		if !bfs.IsConnected(core.SubgraphOf(g, districts[label])) {
			return fmt.Errorf("%w: district %q", ErrDiscontiguous, label)
		}
	}

	return nil
}
