// SPDX-License-Identifier: MIT
package chain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/katalvlaran/redistrict/bfs"
	"github.com/katalvlaran/redistrict/builder"
	"github.com/katalvlaran/redistrict/chain"
	"github.com/katalvlaran/redistrict/core"
	"github.com/katalvlaran/redistrict/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stripes(t *testing.T) *core.Graph {
	t.Helper()
	g, err := builder.GridPlan(6, 6, 3)
	require.NoError(t, err)

	return g
}

func config(steps int) chain.Config {
	cfg := chain.DefaultConfig()
	cfg.MaxSteps = steps
	cfg.RandomSeed = 7

	return cfg
}

type counter struct {
	accepted, failed int
	reason           string
}

func (c *counter) StepAccepted(int, int, float64) { c.accepted++ }
func (c *counter) StepFailed(int, error)          { c.failed++ }
func (c *counter) Stopped(reason string, _ int)   { c.reason = reason }

type failingSink struct{ chain.MemorySink }

func (*failingSink) Finish(context.Context, *chain.Result) error { return errors.New("disk full") }

func TestNew_RejectsBadConfig(t *testing.T) {
	cfg := config(0)
	_, err := chain.New(stripes(t), cfg)
	assert.ErrorIs(t, err, chain.ErrInvalidConfig)

	cfg = config(1)
	cfg.MaxAttempts = 0
	_, err = chain.New(stripes(t), cfg)
	assert.ErrorIs(t, err, chain.ErrInvalidConfig)

	cfg = config(1)
	cfg.Recom.TreeMethod = "wilson"
	_, err = chain.New(stripes(t), cfg)
	assert.ErrorIs(t, err, chain.ErrInvalidConfig)

	_, err = chain.New(core.NewGraph(), config(1))
	assert.ErrorIs(t, err, chain.ErrInvalidConfig)
}

func TestNew_RejectsUnlabeledUnit(t *testing.T) {
	g := stripes(t)
	require.NoError(t, g.SetLabel(builder.GridID(0, 0), ""))
	_, err := chain.New(g, config(1))
	assert.ErrorIs(t, err, plan.ErrUnlabeledUnit)
}

func TestNew_RecordsPlanZero(t *testing.T) {
	c, err := chain.New(stripes(t), config(3))
	require.NoError(t, err)

	assert.Equal(t, chain.Initializing, c.State())
	assert.Equal(t, 0, c.StepCount())
	assert.InDelta(t, 1200.0, c.Ideal(), 1e-9)
	assert.Equal(t, 1, c.History().Len())

	rec := c.Last()
	assert.Equal(t, 0, rec.Step)
	assert.Zero(t, rec.Attempts)
	assert.Len(t, rec.Stats, 3)
	assert.Len(t, rec.PlanRows(), 36)
	assert.Equal(t, builder.GridID(0, 0), rec.PlanRows()[0].UnitID)
}

// TestNew_SeedsNewDistricts relabels the most populous units, ties broken by ID.
func TestNew_SeedsNewDistricts(t *testing.T) {
	g, err := builder.GridPlan(3, 3, 1, builder.WithPopFn(builder.PopList(10, 10, 10, 10, 90, 10, 10, 10, 10)))
	require.NoError(t, err)
	cfg := config(1)
	cfg.NewDistricts = 2

	c, err := chain.New(g, cfg)
	require.NoError(t, err)
	labels := c.Graph().Labels()
	assert.Equal(t, "2", labels[builder.GridID(1, 1)])
	assert.Equal(t, "3", labels[builder.GridID(0, 0)])
	assert.Len(t, c.Graph().Districts(), 3)

	cfg.NewDistricts = 37
	_, err = chain.New(stripes(t), cfg)
	assert.ErrorIs(t, err, chain.ErrTooManyNewDistricts)
}

// TestRun_StopsBeforeFirstStepWhenBalanced: an already balanced plan with
// early stopping emits plan 0 and nothing else.
func TestRun_StopsBeforeFirstStepWhenBalanced(t *testing.T) {
	g, err := builder.GridPlan(2, 2, 2)
	require.NoError(t, err)
	cfg := config(10)
	cfg.PopImbalanceStop = true

	c, err := chain.New(g, cfg)
	require.NoError(t, err)
	sink := chain.NewMemorySink()
	res, err := c.Run(context.Background(), sink)
	require.NoError(t, err)

	assert.Equal(t, chain.StopBalanced, res.StopReason)
	assert.Zero(t, res.Steps)
	assert.Len(t, sink.Records(), 1)
	assert.Same(t, res, sink.Result())
	assert.Equal(t, chain.Stopped, c.State())
}

// TestRun_Invariants checks every emitted plan is a contiguous partition with
// conserved population, within tolerance and never repeated.
func TestRun_Invariants(t *testing.T) {
	obs := &counter{}
	c, err := chain.New(stripes(t), config(3), chain.WithObserver(obs))
	require.NoError(t, err)
	sink := chain.NewMemorySink()

	res, err := c.Run(context.Background(), sink)
	require.NoError(t, err)
	assert.Equal(t, chain.StopMaxSteps, res.StopReason)
	assert.Equal(t, 3, res.Steps)
	assert.Equal(t, chain.StopMaxSteps, obs.reason)
	assert.Equal(t, 3, obs.accepted)

	records := sink.Records()
	require.Len(t, records, 4)
	seen := map[plan.Fingerprint]bool{}
	for i, rec := range records {
		assert.Equal(t, i, rec.Step)
		assert.False(t, seen[rec.Fingerprint], "plan %d repeats an earlier plan", i)
		seen[rec.Fingerprint] = true
		assert.Len(t, rec.Labels, 36)
		assert.NoError(t, plan.Validate(res.Final, rec.Labels))

		var total int64
		for _, d := range rec.Stats {
			total += d.TotalPop
			assert.Equal(t, i, d.Plan)
		}
		assert.Equal(t, int64(3600), total)
		if i > 0 {
			assert.LessOrEqual(t, rec.Summary.PopImbalance, 10.0)
			assert.GreaterOrEqual(t, rec.Attempts, 1)
		}
	}
	assert.Len(t, res.Fingerprints, 4)
	assert.Equal(t, records[3].Labels, res.Final.Labels())

	for _, ids := range res.Final.Districts() {
		assert.True(t, bfs.IsConnected(core.SubgraphOf(res.Final, ids)))
	}

	_, err = c.Run(context.Background(), sink)
	assert.ErrorIs(t, err, chain.ErrStopped)
}

func TestRun_Deterministic(t *testing.T) {
	run := func() []*chain.Record {
		c, err := chain.New(stripes(t), config(3))
		require.NoError(t, err)
		sink := chain.NewMemorySink()
		_, err = c.Run(context.Background(), sink)
		require.NoError(t, err)
		return sink.Records()
	}

	a, b := run(), run()
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Fingerprint, b[i].Fingerprint)
		assert.Equal(t, a[i].Pair, b[i].Pair)
	}
}

// TestStep_Exhausted: one-unit districts can never be split, so every
// attempt ends in recom.ErrNoMove.
func TestStep_Exhausted(t *testing.T) {
	g, err := builder.BuildGraph(nil, []builder.BuilderOption{
		builder.WithPopFn(builder.PopList(50, 60, 100, 110)),
		builder.WithLabelFn(builder.Cells(2)),
	}, builder.Grid(2, 2))
	require.NoError(t, err)
	cfg := config(5)
	cfg.MaxAttempts = 2
	obs := &counter{}

	c, err := chain.New(g, cfg, chain.WithObserver(obs))
	require.NoError(t, err)
	_, err = c.Step(context.Background())
	require.ErrorIs(t, err, chain.ErrStepExhausted)

	var se *chain.StepError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 1, se.Step)
	assert.Equal(t, 2, se.Attempts)
	assert.Equal(t, 1, obs.failed)
	assert.Equal(t, chain.Stopped, c.State())

	_, err = c.Step(context.Background())
	assert.ErrorIs(t, err, chain.ErrStopped)
}

func TestRun_Cancelled(t *testing.T) {
	c, err := chain.New(stripes(t), config(5))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := chain.NewMemorySink()
	_, err = c.Run(ctx, sink)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, sink.Records(), 1)
	assert.Nil(t, sink.Result())
}

func TestTee(t *testing.T) {
	g, err := builder.GridPlan(2, 2, 2)
	require.NoError(t, err)
	cfg := config(1)
	cfg.PopImbalanceStop = true
	c, err := chain.New(g, cfg)
	require.NoError(t, err)

	mem := chain.NewMemorySink()
	res, err := c.Run(context.Background(), chain.Tee(mem, &failingSink{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NotNil(t, res)
	assert.Same(t, res, mem.Result())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "STEPPING", chain.Stepping.String())
	assert.Equal(t, "State(9)", chain.State(9).String())
}
