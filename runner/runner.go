// SPDX-License-Identifier: MIT
// Package runner executes independent chains for a range of seeds on a
// bounded worker pool. Every seed works on its own clone of the input graph
// and writes to its own sink; seeds share nothing mutable.
package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/katalvlaran/redistrict/chain"
	"github.com/katalvlaran/redistrict/core"
	"github.com/katalvlaran/redistrict/metrics"
	"github.com/katalvlaran/redistrict/recom"
	"github.com/katalvlaran/redistrict/sink"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidConfig indicates a bad seed range or pool size.
var ErrInvalidConfig = errors.New("runner: invalid configuration")

// SinkFactory opens the sink for one seed. table is TableName(name, seed).
type SinkFactory func(ctx context.Context, table string, seed int64) (chain.Sink, error)

// Config describes a batch of seeds.
type Config struct {
	Name      string
	Chain     chain.Config
	SeedStart int64
	Seeds     int
	Workers   int
	// FailFast cancels the remaining seeds after the first failure.
	FailFast bool
}

// Outcome is the result of one seed. Exactly one of Result and Err is set.
type Outcome struct {
	Seed   int64
	Table  string
	Result *chain.Result
	Err    error
}

// Runner runs seed batches.
type Runner struct {
	log     *logrus.Entry
	metrics *metrics.Collector
	sinks   SinkFactory
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the parent log entry.
func WithLogger(l *logrus.Entry) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// WithMetrics reports every chain to c.
func WithMetrics(c *metrics.Collector) Option {
	return func(r *Runner) { r.metrics = c }
}

// WithSinkFactory sets where seeds write; the default keeps records in memory.
func WithSinkFactory(f SinkFactory) Option {
	return func(r *Runner) {
		if f != nil {
			r.sinks = f
		}
	}
}

// New returns a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{
		log: logrus.NewEntry(logrus.StandardLogger()),
		sinks: func(context.Context, string, int64) (chain.Sink, error) {
			return chain.NewMemorySink(), nil
		},
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run executes seeds SeedStart .. SeedStart+Seeds-1 on clones of g and
// returns one Outcome per seed in seed order. The error joins every
// failed seed's error; g itself is never modified.
func (r *Runner) Run(ctx context.Context, g *core.Graph, cfg Config) ([]Outcome, error) {
	if cfg.Seeds < 1 || cfg.Workers < 1 {
		return nil, fmt.Errorf("%w: seeds=%d workers=%d", ErrInvalidConfig, cfg.Seeds, cfg.Workers)
	}
	batch := uuid.NewString()
	log := r.log.WithFields(logrus.Fields{"run": cfg.Name, "batch": batch})
	log.Infof("runner: %d seeds from %d on %d workers", cfg.Seeds, cfg.SeedStart, cfg.Workers)

	outcomes := make([]Outcome, cfg.Seeds)
	eg, ectx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Workers)
	for i := 0; i < cfg.Seeds; i++ {
		seed := cfg.SeedStart + int64(i)
		eg.Go(func() error {
			// clone per running seed, so at most Workers copies are live
			out := r.runSeed(ectx, g.Clone(), cfg, seed, log)
			outcomes[i] = out
			if cfg.FailFast {
				return out.Err
			}
			return nil
		})
	}
	_ = eg.Wait()

	var errs []error
	for _, o := range outcomes {
		if o.Err != nil {
			errs = append(errs, fmt.Errorf("seed %d: %w", o.Seed, o.Err))
		}
	}
	log.WithField("failed", len(errs)).Info("runner: batch finished")

	return outcomes, errors.Join(errs...)
}

func (r *Runner) runSeed(ctx context.Context, g *core.Graph, cfg Config, seed int64, log *logrus.Entry) Outcome {
	out := Outcome{Seed: seed, Table: sink.TableName(cfg.Name, seed)}
	if err := ctx.Err(); err != nil {
		out.Err = err
		return out
	}

	ccfg := cfg.Chain
	ccfg.RandomSeed = seed
	opts := []chain.Option{chain.WithLogger(log.WithField("table", out.Table))}
	if r.metrics != nil {
		obs := r.metrics.ForSeed(seed)
		opts = append(opts, chain.WithObserver(obs), chain.WithRecomOptions(recom.WithObserver(obs)))
	}

	c, err := chain.New(g, ccfg, opts...)
	if err != nil {
		out.Err = err
		return out
	}
	s, err := r.sinks(ctx, out.Table, seed)
	if err != nil {
		out.Err = fmt.Errorf("open sink %s: %w", out.Table, err)
		return out
	}
	res, err := c.Run(ctx, s)
	if cerr := sink.Close(s); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		out.Err = err
		log.WithError(err).WithField("seed", seed).Error("runner: seed failed")
		return out
	}
	out.Result = res

	return out
}
