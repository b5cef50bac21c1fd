// SPDX-License-Identifier: MIT
// Package centrality ranks the edges of a core.Graph by betweenness.
//
// The redistricting move generator cuts spanning trees; in a tree the
// betweenness of an edge is proportional to the product of the sizes of the
// two pieces it separates, so high-betweenness edges are the ones most likely
// to split a merged district into two balanced halves.
//
// Betweenness itself is computed by gonum's graph/network package on a
// gonum simple.UndirectedGraph mirror of the input. Node IDs are assigned
// from the sorted unit IDs so the mirror, and therefore the scores, are
// reproducible.
package centrality

import (
	"errors"
	"sort"

	"github.com/katalvlaran/redistrict/core"
	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
)

// ErrGraphNil is returned if a nil graph pointer is passed.
var ErrGraphNil = errors.New("centrality: graph is nil")

// Score is the betweenness of one edge.
type Score struct {
	EdgeID string
	From   string
	To     string
	Value  float64
}

// EdgeBetweenness returns one Score per edge of g ordered by descending
// Value; equal values are ordered by EdgeID. Edges that lie on no shortest
// path get Value 0.
//
// Complexity: O(V·E) (Brandes).
func EdgeBetweenness(g *core.Graph) ([]Score, error) {
	if g == nil {
		return nil, ErrGraphNil
	}

	ids := g.UnitIDs()
	index := make(map[string]int64, len(ids))
	mirror := simple.NewUndirectedGraph()
	for i, id := range ids {
		index[id] = int64(i)
		mirror.AddNode(simple.Node(int64(i)))
	}
	edges := g.Edges()
	for _, e := range edges {
		mirror.SetEdge(mirror.NewEdge(simple.Node(index[e.From]), simple.Node(index[e.To])))
	}

	cb := network.EdgeBetweenness(mirror)
	scores := make([]Score, len(edges))
	for i, e := range edges {
		u, v := index[e.From], index[e.To]
		scores[i] = Score{
			EdgeID: e.ID,
			From:   e.From,
			To:     e.To,
			// undirected keys may be stored under either orientation
			Value: cb[[2]int64{u, v}] + cb[[2]int64{v, u}],
		}
	}
	Rank(scores)

	return scores, nil
}

// Rank sorts scores by descending Value, then ascending EdgeID.
func Rank(scores []Score) {
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Value != scores[j].Value {
			return scores[i].Value > scores[j].Value
		}
		return scores[i].EdgeID < scores[j].EdgeID
	})
}

// Top returns the first min(limit, len(scores)) entries. A negative limit
// returns everything.
func Top(scores []Score, limit int) []Score {
	if limit < 0 || limit > len(scores) {
		return scores
	}

	return scores[:limit]
}
