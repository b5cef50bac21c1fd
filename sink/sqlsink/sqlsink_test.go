// SPDX-License-Identifier: MIT
package sqlsink_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/redistrict/builder"
	"github.com/katalvlaran/redistrict/chain"
	"github.com/katalvlaran/redistrict/core"
	"github.com/katalvlaran/redistrict/graphio"
	"github.com/katalvlaran/redistrict/sink"
	"github.com/katalvlaran/redistrict/sink/sqlsink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Unsupported(t *testing.T) {
	_, err := sqlsink.Open("oracle", "")
	assert.ErrorIs(t, err, sqlsink.ErrUnsupported)
}

func TestSink_SQLite(t *testing.T) {
	ctx := context.Background()
	db, err := sqlsink.Open(sqlsink.KindSQLite, filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)

	g, err := builder.GridPlan(6, 6, 3)
	require.NoError(t, err)
	cfg := chain.DefaultConfig()
	cfg.MaxSteps = 2
	c, err := chain.New(g, cfg)
	require.NoError(t, err)

	table := sink.TableName("grid", cfg.RandomSeed)
	s, err := sqlsink.New(ctx, db, table, cfg.RandomSeed)
	require.NoError(t, err)
	res, err := c.Run(ctx, s)
	require.NoError(t, err)

	sums, err := sqlsink.Summaries(ctx, db, table)
	require.NoError(t, err)
	require.Len(t, sums, 3)
	for i, row := range sums {
		assert.Equal(t, i, row.Plan)
	}

	labels, err := sqlsink.Plan(ctx, db, table, 2)
	require.NoError(t, err)
	assert.Equal(t, map[string]string(res.Final.Labels()), labels)

	run, err := sqlsink.LoadRun(ctx, db, s.RunID())
	require.NoError(t, err)
	assert.True(t, run.Complete)
	assert.Equal(t, 2, run.Steps)
	assert.Equal(t, chain.StopMaxSteps, run.StopReason)
	assert.Equal(t, table, run.Name)
	require.NotNil(t, run.FinishedAt)

	final, err := graphio.ReadNodeLink(bytes.NewReader(run.Graph))
	require.NoError(t, err)
	assert.Equal(t, core.Assignment(labels), final.Labels())
}

// TestSink_PlanZeroKeepsItsNumber stores plan 0 and then step 1; plan keys
// must be written as given, never auto-assigned.
func TestSink_PlanZeroKeepsItsNumber(t *testing.T) {
	ctx := context.Background()
	db, err := sqlsink.Open(sqlsink.KindSQLite, filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)

	g, err := builder.GridPlan(6, 6, 3)
	require.NoError(t, err)
	c, err := chain.New(g, chain.DefaultConfig())
	require.NoError(t, err)
	s, err := sqlsink.New(ctx, db, "t", 1)
	require.NoError(t, err)

	require.NoError(t, s.Record(ctx, c.Last()))
	rec, err := c.Step(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Record(ctx, rec))

	sums, err := sqlsink.Summaries(ctx, db, "t")
	require.NoError(t, err)
	require.Len(t, sums, 2)
	assert.Equal(t, 0, sums[0].Plan)
	assert.Equal(t, 1, sums[1].Plan)

	zero, err := sqlsink.Plan(ctx, db, "t", 0)
	require.NoError(t, err)
	assert.Len(t, zero, 36)
	assert.Equal(t, "1", zero[builder.GridID(0, 0)])
}
