// SPDX-License-Identifier: MIT
package recom

import (
	"errors"

	"github.com/katalvlaran/redistrict/core"
	"github.com/katalvlaran/redistrict/plan"
	"github.com/katalvlaran/redistrict/spanning"
	"github.com/katalvlaran/redistrict/stats"
	"github.com/sirupsen/logrus"
)

// Sentinel errors returned by Propose.
var (
	// ErrNoMove means every pair, tree and cut was tried without an acceptable,
	// never-seen plan. Recoverable: the caller may call Propose again.
	ErrNoMove = errors.New("recom: no acceptable move found")

	// ErrInconsistentImbalance means the imbalance recomputed from the candidate
	// plan disagrees with the value used to accept the cut. Fatal.
	ErrInconsistentImbalance = errors.New("recom: recomputed imbalance disagrees with candidate")

	// ErrBadRequest means Propose was called without a graph, statistics or history.
	ErrBadRequest = errors.New("recom: incomplete request")
)

// Defaults for Config.
const (
	DefaultMaxTrees       = 100
	DefaultMaxCuts        = 300
	DefaultCutFraction    = 0.2
	DefaultConsistencyEps = 0.01
	DefaultImproveMargin  = 0.01
	DefaultTolerance      = 10.0
)

// Config bounds the search of one Propose call.
type Config struct {
	// Tolerance is the accepted population imbalance in percent. Chains set
	// it from their own pop_imbalance_tol.
	Tolerance float64 `yaml:"-" validate:"gte=0"`

	// MaxTrees is the number of spanning trees drawn per district pair,
	// counting trees that were already tried.
	MaxTrees int `yaml:"max_trees" validate:"gte=1"`

	// MaxCuts and CutFraction cap the cut edges examined per tree at
	// int(min(MaxCuts, CutFraction·edges)).
	MaxCuts     int     `yaml:"max_cuts" validate:"gte=0"`
	CutFraction float64 `yaml:"cut_fraction" validate:"gte=0,lte=1"`

	// ConsistencyEps is the largest allowed gap between candidate and
	// recomputed imbalance.
	ConsistencyEps float64 `yaml:"consistency_eps" validate:"gt=0"`

	// ImproveMargin is added to the current imbalance when the plan is out of
	// tolerance, so only moves that do not worsen balance are accepted.
	ImproveMargin float64 `yaml:"improve_margin" validate:"gte=0"`

	// TreeMethod picks the spanning-tree algorithm run over the random
	// weights: spanning.MethodKruskal (default) or spanning.MethodPrim.
	TreeMethod string `yaml:"tree_method" validate:"omitempty,oneof=kruskal prim"`
}

// DefaultConfig returns the standard search budget.
func DefaultConfig() Config {
	return Config{
		Tolerance:      DefaultTolerance,
		MaxTrees:       DefaultMaxTrees,
		MaxCuts:        DefaultMaxCuts,
		CutFraction:    DefaultCutFraction,
		ConsistencyEps: DefaultConsistencyEps,
		ImproveMargin:  DefaultImproveMargin,
		TreeMethod:     spanning.MethodKruskal,
	}
}

// Pair is an ordered district pair; D0 is tried as the keeper of the larger piece.
type Pair struct {
	D0 string
	D1 string
}

// String renders "d0+d1".
func (p Pair) String() string { return p.D0 + "+" + p.D1 }

// Request is the input of one Propose call. The generator never mutates Graph.
type Request struct {
	// Graph is the authoritative labeled graph.
	Graph *core.Graph
	// Stats are the statistics of the current labeling.
	Stats *stats.Snapshot
	// History holds fingerprints of every plan accepted so far.
	History *plan.History
	// Step is the plan index an accepted move will carry.
	Step int
}

// Move is an accepted recombination, not yet committed.
type Move struct {
	// Labels is the complete candidate labeling.
	Labels core.Assignment
	// Stats are the statistics of Labels.
	Stats *stats.Snapshot
	// Fingerprint of Labels; not present in the request history.
	Fingerprint plan.Fingerprint
	// Pair is the recombined pair after the continuity swap: D0 labels the
	// larger component.
	Pair Pair
	// CutEdge is the tree edge whose removal split the merged district.
	CutEdge string
	// Imbalance is the candidate imbalance the cut was accepted with.
	Imbalance float64
	// Tolerance is the effective tolerance for this call.
	Tolerance float64
	// Trees counts spanning trees drawn during the call.
	Trees int
}

// Observer receives search events. Implementations must be cheap; they run
// inside the search loop.
type Observer interface {
	PairSkipped(p Pair)
	TreeSampled(p Pair, duplicate bool)
	CutEvaluated(p Pair, accepted bool)
	DuplicatePlan(p Pair)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) PairSkipped(Pair)        {}
func (NopObserver) TreeSampled(Pair, bool)  {}
func (NopObserver) CutEvaluated(Pair, bool) {}
func (NopObserver) DuplicatePlan(Pair)      {}

// Option configures a Generator.
type Option func(*Generator)

// WithObserver attaches an event observer.
func WithObserver(o Observer) Option {
	return func(g *Generator) {
		if o != nil {
			g.obs = o
		}
	}
}

// WithLogger sets the entry used for debug logging.
func WithLogger(l *logrus.Entry) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}
