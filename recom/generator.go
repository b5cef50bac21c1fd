// SPDX-License-Identifier: MIT
package recom

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/redistrict/bfs"
	"github.com/katalvlaran/redistrict/centrality"
	"github.com/katalvlaran/redistrict/core"
	"github.com/katalvlaran/redistrict/plan"
	"github.com/katalvlaran/redistrict/spanning"
	"github.com/katalvlaran/redistrict/stats"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// Generator proposes recombination moves. It holds no per-chain state and
// may be shared by chains running in separate goroutines as long as its
// Observer is safe for concurrent use.
type Generator struct {
	cfg Config
	obs Observer
	log *logrus.Entry
}

// NewGenerator returns a Generator with cfg and options applied.
func NewGenerator(cfg Config, opts ...Option) *Generator {
	g := &Generator{
		cfg: cfg,
		obs: NopObserver{},
		log: logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Config returns the generator's configuration.
func (gen *Generator) Config() Config { return gen.cfg }

// pairSearch is the per-pair state of one Propose call.
type pairSearch struct {
	req    Request
	labels core.Assignment
	pair   Pair
	merged *core.Graph
	tol    float64

	q                int64 // population of D0 ∪ D1
	pMin, pMax       float64
	hasOthers        bool
	pop              map[string]int64
	aland            map[string]float64
	trees            int
	alreadyTriedTree map[uint64]bool
}

// Propose searches for one acceptable recombination of req.Graph.
//
// The returned Move carries a complete candidate labeling whose plan is
// contiguous, within the effective tolerance and absent from req.History.
// Nothing is written to req.Graph or req.History; committing is the caller's job.
//
// Errors: ErrNoMove when the search is exhausted, ErrInconsistentImbalance
// (fatal), ErrBadRequest, or ctx.Err() when cancelled between trees.
func (gen *Generator) Propose(ctx context.Context, req Request, rng *rand.Rand) (*Move, error) {
	if req.Graph == nil || req.Stats == nil || req.History == nil || rng == nil {
		return nil, ErrBadRequest
	}

	labels := req.Graph.Labels()
	districts := core.GroupByLabel(labels)
	pairs, tol := PairOrder(req.Stats, gen.cfg.Tolerance, gen.cfg.ImproveMargin, rng)
	gen.log.WithFields(logrus.Fields{
		"step":      req.Step,
		"pairs":     len(pairs),
		"tolerance": tol,
		"imbalance": req.Stats.Imbalance(),
	}).Debug("recom: search started")

	trees := 0
	for _, p := range pairs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		members := make([]string, 0, len(districts[p.D0])+len(districts[p.D1]))
		members = append(members, districts[p.D0]...)
		members = append(members, districts[p.D1]...)
		merged := core.SubgraphOf(req.Graph, members)
		if !bfs.IsConnected(merged) {
			gen.obs.PairSkipped(p)
			continue
		}

		ps := gen.newPairSearch(req, labels, p, merged, tol)
		mv, err := gen.searchPair(ctx, ps, rng)
		trees += ps.trees
		if err != nil {
			return nil, err
		}
		if mv != nil {
			mv.Trees = trees
			gen.log.WithFields(logrus.Fields{
				"step":      req.Step,
				"pair":      mv.Pair.String(),
				"imbalance": mv.Imbalance,
				"trees":     trees,
			}).Debug("recom: move accepted")

			return mv, nil
		}
	}

	return nil, fmt.Errorf("%w: %d pairs, %d trees", ErrNoMove, len(pairs), trees)
}

func (gen *Generator) newPairSearch(req Request, labels core.Assignment, p Pair, merged *core.Graph, tol float64) *pairSearch {
	ps := &pairSearch{
		req:              req,
		labels:           labels,
		pair:             p,
		merged:           merged,
		tol:              tol,
		q:                req.Stats.Population(p.D0) + req.Stats.Population(p.D1),
		pop:              make(map[string]int64, merged.UnitCount()),
		aland:            make(map[string]float64, merged.UnitCount()),
		alreadyTriedTree: make(map[uint64]bool),
	}
	var others []float64
	for _, d := range req.Stats.Districts {
		if d.Label != p.D0 && d.Label != p.D1 {
			others = append(others, float64(d.TotalPop))
		}
	}
	if len(others) > 0 {
		ps.hasOthers = true
		ps.pMin, ps.pMax = floats.Min(others), floats.Max(others)
	}
	for _, u := range merged.Units() {
		ps.pop[u.ID] = u.TotalPop
		ps.aland[u.ID] = u.ALand
	}

	return ps
}

// searchPair draws up to MaxTrees spanning trees of the merged district.
// A nil Move with nil error means the pair is exhausted.
func (gen *Generator) searchPair(ctx context.Context, ps *pairSearch, rng *rand.Rand) (*Move, error) {
	for i := 0; i < gen.cfg.MaxTrees; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ps.trees++
		tree, err := spanning.RandomTree(ps.merged, rng, gen.treeOpts(ps.merged)...)
		if err != nil {
			return nil, fmt.Errorf("recom: spanning tree of %s: %w", ps.pair, err)
		}
		key := spanning.Key(tree)
		if ps.alreadyTriedTree[key] {
			gen.obs.TreeSampled(ps.pair, true)
			continue
		}
		ps.alreadyTriedTree[key] = true
		gen.obs.TreeSampled(ps.pair, false)

		mv, err := gen.searchTree(ps, tree)
		if err != nil || mv != nil {
			return mv, err
		}
	}

	return nil, nil
}

// treeOpts selects the tree method; Prim grows from the smallest unit ID.
func (gen *Generator) treeOpts(merged *core.Graph) []spanning.Option {
	if gen.cfg.TreeMethod != spanning.MethodPrim {
		return nil
	}

	return []spanning.Option{
		spanning.WithMethod(spanning.MethodPrim),
		spanning.WithRoot(merged.UnitIDs()[0]),
	}
}

// searchTree examines the most central edges of one tree as cut candidates.
func (gen *Generator) searchTree(ps *pairSearch, edges []core.Edge) (*Move, error) {
	tree, err := spanning.BuildTree(ps.merged, edges)
	if err != nil {
		return nil, err
	}
	scores, err := centrality.EdgeBetweenness(tree)
	if err != nil {
		return nil, err
	}

	for _, sc := range centrality.Top(scores, gen.cutBudget(len(scores))) {
		side, err := bfs.Reachable(tree, sc.To, bfs.WithoutEdge(sc.From, sc.To))
		if err != nil {
			return nil, err
		}
		var s int64
		for _, id := range side {
			s += ps.pop[id]
		}
		imb := ps.candidateImbalance(s)
		accepted := imb <= ps.tol
		gen.obs.CutEvaluated(ps.pair, accepted)
		if !accepted {
			continue
		}

		mv, err := gen.apply(ps, side, sc.EdgeID, imb)
		if err != nil || mv != nil {
			return mv, err
		}
	}

	return nil, nil
}

// cutBudget returns int(min(MaxCuts, CutFraction·n)).
func (gen *Generator) cutBudget(n int) int {
	return int(math.Min(float64(gen.cfg.MaxCuts), gen.cfg.CutFraction*float64(n)))
}

// candidateImbalance is the plan imbalance after splitting q into s and q-s,
// all other districts unchanged.
func (ps *pairSearch) candidateImbalance(s int64) float64 {
	t := ps.q - s
	if s > t {
		s, t = t, s
	}
	hi, lo := float64(t), float64(s)
	if ps.hasOthers {
		hi, lo = math.Max(hi, ps.pMax), math.Min(lo, ps.pMin)
	}

	return stats.Imbalance(hi, lo, ps.req.Stats.Ideal)
}

// apply builds the candidate labeling for a cut, verifies it and checks it
// against history. A nil Move with nil error means the plan was a duplicate.
func (gen *Generator) apply(ps *pairSearch, side []string, cutEdge string, imb float64) (*Move, error) {
	inSide := make(map[string]bool, len(side))
	for _, id := range side {
		inSide[id] = true
	}
	other := make([]string, 0, len(ps.pop)-len(side))
	for _, id := range ps.merged.UnitIDs() {
		if !inSide[id] {
			other = append(other, id)
		}
	}
	compA, compB := orderComponents(side, other)

	d0, d1 := ps.pair.D0, ps.pair.D1
	if ps.continuity(compA, compB, d0, d1) < 0 {
		d0, d1 = d1, d0
	}

	next := ps.labels.Clone()
	for _, id := range compA {
		next[id] = d0
	}
	for _, id := range compB {
		next[id] = d1
	}

	snap, err := stats.Compute(ps.req.Graph, next, ps.req.Step, ps.req.Stats.Ideal)
	if err != nil {
		return nil, err
	}
	if math.Abs(snap.Imbalance()-imb) >= gen.cfg.ConsistencyEps {
		return nil, fmt.Errorf("%w: recomputed %.6f, candidate %.6f (pair %s, edge %s)",
			ErrInconsistentImbalance, snap.Imbalance(), imb, ps.pair, cutEdge)
	}

	fp := plan.FingerprintAssignment(next)
	if ps.req.History.Contains(fp) {
		gen.obs.DuplicatePlan(ps.pair)
		return nil, nil
	}

	return &Move{
		Labels:      next,
		Stats:       snap,
		Fingerprint: fp,
		Pair:        Pair{D0: d0, D1: d1},
		CutEdge:     cutEdge,
		Imbalance:   imb,
		Tolerance:   ps.tol,
	}, nil
}

// continuity scores how much land keeps its label when compA gets d0 and compB gets d1.
func (ps *pairSearch) continuity(compA, compB []string, d0, d1 string) float64 {
	var score float64
	for _, id := range compA {
		if ps.labels[id] == d0 {
			score += ps.aland[id]
		} else {
			score -= ps.aland[id]
		}
	}
	for _, id := range compB {
		if ps.labels[id] == d1 {
			score += ps.aland[id]
		} else {
			score -= ps.aland[id]
		}
	}

	return score
}

// orderComponents returns the larger component first; on equal size the one
// holding the smallest unit ID wins. Both inputs are sorted.
func orderComponents(a, b []string) ([]string, []string) {
	if len(a) != len(b) {
		if len(a) > len(b) {
			return a, b
		}
		return b, a
	}
	if len(b) > 0 && b[0] < a[0] {
		return b, a
	}

	return a, b
}
