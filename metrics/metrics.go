// SPDX-License-Identifier: MIT
// Package metrics exposes chain and move-generator activity as Prometheus
// metrics. Each Collector owns its registry, so tests and parallel runs
// never collide on global registration.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/katalvlaran/redistrict/chain"
	"github.com/katalvlaran/redistrict/recom"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all chain metrics.
type Collector struct {
	registry *prometheus.Registry

	StepsAccepted *prometheus.CounterVec
	StepFailures  *prometheus.CounterVec
	StepAttempts  prometheus.Histogram
	PopImbalance  *prometheus.GaugeVec
	RunsStopped   *prometheus.CounterVec

	PairsSkipped   prometheus.Counter
	TreesSampled   *prometheus.CounterVec
	CutsEvaluated  *prometheus.CounterVec
	DuplicatePlans prometheus.Counter
}

// NewCollector registers every metric under namespace in a fresh registry.
func NewCollector(namespace string) *Collector {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Collector{
		registry: reg,
		StepsAccepted: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_accepted_total",
			Help:      "Accepted chain steps",
		}, []string{"seed"}),
		StepFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "step_failures_total",
			Help:      "Steps that ended in an error",
		}, []string{"seed"}),
		StepAttempts: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "step_attempts",
			Help:      "Generator searches needed per accepted step",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 7), // 1 to 64
		}),
		PopImbalance: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pop_imbalance_percent",
			Help:      "Population imbalance of the current plan",
		}, []string{"seed"}),
		RunsStopped: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_stopped_total",
			Help:      "Finished chains by stop reason",
		}, []string{"reason"}),
		PairsSkipped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pairs_skipped_total",
			Help:      "District pairs skipped because their merger is disconnected",
		}),
		TreesSampled: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trees_sampled_total",
			Help:      "Spanning trees drawn, by whether the tree was already tried",
		}, []string{"duplicate"}),
		CutsEvaluated: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cuts_evaluated_total",
			Help:      "Tree cuts evaluated, by acceptance",
		}, []string{"accepted"}),
		DuplicatePlans: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicate_plans_total",
			Help:      "Candidate plans rejected as already visited",
		}),
	}
}

// Registry returns the collector's registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ForSeed returns an observer for one chain. It satisfies both
// chain.Observer and recom.Observer.
func (c *Collector) ForSeed(seed int64) *SeedObserver {
	return &SeedObserver{c: c, seed: strconv.FormatInt(seed, 10)}
}

// SeedObserver records events of a single chain.
type SeedObserver struct {
	c    *Collector
	seed string
}

var (
	_ chain.Observer = (*SeedObserver)(nil)
	_ recom.Observer = (*SeedObserver)(nil)
)

// StepAccepted implements chain.Observer.
func (o *SeedObserver) StepAccepted(_, attempts int, imbalance float64) {
	o.c.StepsAccepted.WithLabelValues(o.seed).Inc()
	o.c.StepAttempts.Observe(float64(attempts))
	o.c.PopImbalance.WithLabelValues(o.seed).Set(imbalance)
}

// StepFailed implements chain.Observer.
func (o *SeedObserver) StepFailed(int, error) {
	o.c.StepFailures.WithLabelValues(o.seed).Inc()
}

// Stopped implements chain.Observer.
func (o *SeedObserver) Stopped(reason string, _ int) {
	o.c.RunsStopped.WithLabelValues(reason).Inc()
}

// PairSkipped implements recom.Observer.
func (o *SeedObserver) PairSkipped(recom.Pair) { o.c.PairsSkipped.Inc() }

// TreeSampled implements recom.Observer.
func (o *SeedObserver) TreeSampled(_ recom.Pair, duplicate bool) {
	o.c.TreesSampled.WithLabelValues(strconv.FormatBool(duplicate)).Inc()
}

// CutEvaluated implements recom.Observer.
func (o *SeedObserver) CutEvaluated(_ recom.Pair, accepted bool) {
	o.c.CutsEvaluated.WithLabelValues(strconv.FormatBool(accepted)).Inc()
}

// DuplicatePlan implements recom.Observer.
func (o *SeedObserver) DuplicatePlan(recom.Pair) { o.c.DuplicatePlans.Inc() }
