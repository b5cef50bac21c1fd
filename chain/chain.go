// SPDX-License-Identifier: MIT
package chain

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strconv"

	"github.com/katalvlaran/redistrict/core"
	"github.com/katalvlaran/redistrict/plan"
	"github.com/katalvlaran/redistrict/recom"
	"github.com/katalvlaran/redistrict/stats"
	"github.com/sirupsen/logrus"
)

// Chain is one run of the redistricting Markov chain for a single seed.
// It exclusively owns its graph, RNG and history and is not safe for
// concurrent use.
type Chain struct {
	cfg     Config
	g       *core.Graph
	gen     *recom.Generator
	rng     *rand.Rand
	history *plan.History
	obs     Observer
	log     *logrus.Entry

	recomOpts []recom.Option
	state     State
	step      int
	ideal     float64
	current   *stats.Snapshot
	last      *Record
}

// Option configures a Chain.
type Option func(*Chain)

// WithLogger sets the log entry; seed and step fields are added by the chain.
func WithLogger(l *logrus.Entry) Option {
	return func(c *Chain) {
		if l != nil {
			c.log = l
		}
	}
}

// WithObserver attaches a chain-level observer.
func WithObserver(o Observer) Option {
	return func(c *Chain) {
		if o != nil {
			c.obs = o
		}
	}
}

// WithRecomOptions passes options to the move generator.
func WithRecomOptions(opts ...recom.Option) Option {
	return func(c *Chain) {
		c.recomOpts = append(c.recomOpts, opts...)
	}
}

// New initializes a chain on g, which it takes ownership of.
//
// Steps:
//  1. Seed cfg.NewDistricts new labels on the most populous units.
//  2. Check the labeling covers every unit (discontiguous districts are logged).
//  3. Fix the ideal population at total / districts.
//  4. Compute plan-0 statistics and record its fingerprint.
func New(g *core.Graph, cfg Config, opts ...Option) (*Chain, error) {
	if g == nil || g.UnitCount() == 0 {
		return nil, fmt.Errorf("%w: empty graph", ErrInvalidConfig)
	}
	if err := cfg.check(); err != nil {
		return nil, err
	}
	cfg.Recom.Tolerance = cfg.PopImbalanceTol

	c := &Chain{
		cfg:     cfg,
		g:       g,
		rng:     rand.New(rand.NewSource(cfg.RandomSeed)),
		history: plan.NewHistory(),
		obs:     nopObserver{},
		log:     logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithField("seed", cfg.RandomSeed)
	c.gen = recom.NewGenerator(cfg.Recom, append([]recom.Option{recom.WithLogger(c.log)}, c.recomOpts...)...)

	if cfg.NewDistricts > 0 {
		if err := seedDistricts(g, cfg.NewDistricts); err != nil {
			return nil, err
		}
	}

	labels := g.Labels()
	if err := plan.Validate(g, labels); err != nil {
		if !errors.Is(err, plan.ErrDiscontiguous) {
			return nil, err
		}
		c.log.WithError(err).Warn("chain: initial plan is not contiguous")
	}

	districts := core.GroupByLabel(labels)
	ideal, err := stats.Ideal(g.TotalPopulation(), len(districts))
	if err != nil {
		return nil, err
	}
	c.ideal = ideal
	if c.current, err = stats.Compute(g, labels, 0, ideal); err != nil {
		return nil, err
	}
	fp := plan.FingerprintAssignment(labels)
	c.history.Add(fp, 0)
	c.last = c.record(labels, fp, recom.Pair{}, 0)
	c.log.WithFields(logrus.Fields{
		"districts": len(districts),
		"ideal":     ideal,
		"imbalance": c.current.Imbalance(),
	}).Info("chain: initialized")

	return c, nil
}

// seedDistricts relabels the n most populous units (ties by ID) with fresh
// labels following the largest numeric label in use.
func seedDistricts(g *core.Graph, n int) error {
	units := g.Units()
	if n > len(units) {
		return fmt.Errorf("%w: %d > %d", ErrTooManyNewDistricts, n, len(units))
	}
	var maxLabel int64
	for _, u := range units {
		if v, err := strconv.ParseInt(u.Label, 10, 64); err == nil && v > maxLabel {
			maxLabel = v
		}
	}
	sort.SliceStable(units, func(i, j int) bool {
		if units[i].TotalPop != units[j].TotalPop {
			return units[i].TotalPop > units[j].TotalPop
		}
		return units[i].ID < units[j].ID
	})
	for i := 0; i < n; i++ {
		maxLabel++
		if err := g.SetLabel(units[i].ID, strconv.FormatInt(maxLabel, 10)); err != nil {
			return err
		}
	}

	return nil
}

// State returns the lifecycle phase.
func (c *Chain) State() State { return c.state }

// StepCount returns the index of the last accepted plan.
func (c *Chain) StepCount() int { return c.step }

// Ideal returns the fixed ideal district population.
func (c *Chain) Ideal() float64 { return c.ideal }

// Stats returns the statistics of the current plan.
func (c *Chain) Stats() *stats.Snapshot { return c.current }

// History returns the accepted fingerprints.
func (c *Chain) History() *plan.History { return c.history }

// Graph returns the chain's graph. Callers must not mutate it while the chain runs.
func (c *Chain) Graph() *core.Graph { return c.g }

// Last returns the record of the most recent accepted plan.
func (c *Chain) Last() *Record { return c.last }

// Done reports whether a stop condition holds and returns its reason.
// An already balanced plan stops before its first step when early stopping is on.
func (c *Chain) Done() (string, bool) {
	if c.cfg.PopImbalanceStop && c.current.Imbalance() <= c.cfg.PopImbalanceTol {
		return StopBalanced, true
	}
	if c.step >= c.cfg.MaxSteps {
		return StopMaxSteps, true
	}

	return "", false
}

// Step performs exactly one accepted recombination and commits it.
//
// The generator is retried up to MaxAttempts times while it reports
// recom.ErrNoMove; then a *StepError wrapping ErrStepExhausted is returned.
// Either way the chain is stopped afterwards.
func (c *Chain) Step(ctx context.Context) (*Record, error) {
	if c.state == Stopped {
		return nil, ErrStopped
	}
	c.state = Stepping
	step := c.step + 1
	log := c.log.WithField("step", step)

	req := recom.Request{Graph: c.g, Stats: c.current, History: c.history, Step: step}
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		mv, err := c.gen.Propose(ctx, req, c.rng)
		if errors.Is(err, recom.ErrNoMove) {
			log.WithField("attempt", attempt).Debug("chain: no move, retrying")
			continue
		}
		if err != nil {
			c.state = Stopped
			c.obs.StepFailed(step, err)
			return nil, &StepError{Step: step, Attempts: attempt, Err: err}
		}

		if err := c.g.ApplyLabels(mv.Labels); err != nil {
			c.state = Stopped
			return nil, &StepError{Step: step, Attempts: attempt, Err: err}
		}
		c.history.Add(mv.Fingerprint, step)
		c.step = step
		c.current = mv.Stats
		c.last = c.record(mv.Labels, mv.Fingerprint, mv.Pair, attempt)
		c.obs.StepAccepted(step, attempt, mv.Stats.Imbalance())
		log.WithFields(logrus.Fields{
			"pair":      mv.Pair.String(),
			"attempts":  attempt,
			"imbalance": mv.Stats.Imbalance(),
		}).Debug("chain: step accepted")

		return c.last, nil
	}

	c.state = Stopped
	err := &StepError{Step: step, Attempts: c.cfg.MaxAttempts, Err: ErrStepExhausted}
	c.obs.StepFailed(step, err)

	return nil, err
}

func (c *Chain) record(labels core.Assignment, fp plan.Fingerprint, pair recom.Pair, attempts int) *Record {
	return &Record{
		Step:        c.step,
		Labels:      labels.Clone(),
		Stats:       append([]stats.DistrictStats(nil), c.current.Districts...),
		Summary:     c.current.Summary,
		Fingerprint: fp,
		Pair:        pair,
		Attempts:    attempts,
	}
}

// Run streams plan 0 and every accepted plan to sink until a stop condition
// holds, then calls sink.Finish with the final labeled graph.
// A context cancellation or step failure stops the chain without Finish.
func (c *Chain) Run(ctx context.Context, sink Sink) (*Result, error) {
	if c.state != Initializing {
		return nil, fmt.Errorf("%w: run already started (%s)", ErrStopped, c.state)
	}
	if err := sink.Record(ctx, c.last); err != nil {
		return nil, fmt.Errorf("chain: sink record %d: %w", c.last.Step, err)
	}

	for {
		reason, done := c.Done()
		if done {
			c.state = Stopped
			return c.finish(ctx, sink, reason)
		}
		if err := ctx.Err(); err != nil {
			c.state = Stopped
			c.obs.Stopped(StopCancelled, c.step)
			return nil, err
		}
		rec, err := c.Step(ctx)
		if err != nil {
			c.state = Stopped
			c.obs.Stopped(StopFailed, c.step)
			return nil, err
		}
		if err := sink.Record(ctx, rec); err != nil {
			c.state = Stopped
			return nil, fmt.Errorf("chain: sink record %d: %w", rec.Step, err)
		}
	}
}

func (c *Chain) finish(ctx context.Context, sink Sink, reason string) (*Result, error) {
	res := &Result{
		Seed:         c.cfg.RandomSeed,
		Steps:        c.step,
		StopReason:   reason,
		Ideal:        c.ideal,
		Summary:      c.current.Summary,
		Fingerprints: c.history.Fingerprints(),
		Final:        c.g.Clone(),
	}
	c.obs.Stopped(reason, c.step)
	c.log.WithFields(logrus.Fields{
		"steps":     c.step,
		"reason":    reason,
		"imbalance": c.current.Imbalance(),
	}).Info("chain: stopped")
	if err := sink.Finish(ctx, res); err != nil {
		return res, fmt.Errorf("chain: sink finish: %w", err)
	}

	return res, nil
}
