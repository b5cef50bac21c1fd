// SPDX-License-Identifier: MIT
package spanning

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"

	"github.com/katalvlaran/redistrict/core"
)

// RandomWeights draws a fresh uniform [0,1) weight for every edge of g,
// visiting edges in Edge.ID order so a seeded rng yields the same weights.
func RandomWeights(g *core.Graph, rng *rand.Rand) error {
	for _, e := range g.Edges() {
		if err := g.SetEdgeWeight(e.ID, rng.Float64()); err != nil {
			return err
		}
	}

	return nil
}

// RandomTree reweights g and returns its minimum spanning tree. This
// approximates, but is not equal to, a uniformly random spanning tree.
// The edge weights of g are overwritten.
func RandomTree(g *core.Graph, rng *rand.Rand, opts ...Option) ([]core.Edge, error) {
	if g == nil {
		return nil, ErrInvalidGraph
	}
	if err := RandomWeights(g, rng); err != nil {
		return nil, err
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	tree, _, err := Compute(g, o)

	return tree, err
}

// Key returns a canonical hash of an edge set: endpoints are normalized so
// From < To, pairs are sorted, and the result does not depend on edge order.
func Key(edges []core.Edge) uint64 {
	pairs := make([][2]string, len(edges))
	for i, e := range edges {
		a, b := e.From, e.To
		if b < a {
			a, b = b, a
		}
		pairs[i] = [2]string{a, b}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})

	h := fnv.New64a()
	var lenBuf [4]byte
	for _, p := range pairs {
		for _, id := range p {
			binary.BigEndian.PutUint32(lenBuf[:], uint32(len(id)))
			_, _ = h.Write(lenBuf[:])
			_, _ = h.Write([]byte(id))
		}
	}

	return h.Sum64()
}

// BuildTree returns a graph with the units of g and only the given edges.
// Edge IDs are preserved.
func BuildTree(g *core.Graph, edges []core.Edge) (*core.Graph, error) {
	t := g.CloneEmpty()
	for _, e := range edges {
		if err := t.InsertEdge(e); err != nil {
			return nil, fmt.Errorf("spanning: build tree: %w", err)
		}
	}

	return t, nil
}
