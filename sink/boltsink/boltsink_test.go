// SPDX-License-Identifier: MIT
package boltsink_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/boltdb/bolt"
	"github.com/katalvlaran/redistrict/builder"
	"github.com/katalvlaran/redistrict/chain"
	"github.com/katalvlaran/redistrict/sink"
	"github.com/katalvlaran/redistrict/sink/boltsink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *bolt.DB {
	t.Helper()
	db, err := bolt.Open(filepath.Join(t.TempDir(), "runs.bolt"), 0o600, &bolt.Options{Timeout: time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func TestSink_Bolt(t *testing.T) {
	db := openDB(t)
	g, err := builder.GridPlan(6, 6, 3)
	require.NoError(t, err)
	cfg := chain.DefaultConfig()
	cfg.MaxSteps = 2
	c, err := chain.New(g, cfg)
	require.NoError(t, err)

	table := sink.TableName("grid", cfg.RandomSeed)
	s, err := boltsink.New(db, table)
	require.NoError(t, err)
	res, err := c.Run(context.Background(), s)
	require.NoError(t, err)

	sums, err := boltsink.Summaries(db, table)
	require.NoError(t, err)
	require.Len(t, sums, 3)
	assert.Equal(t, 0, sums[0].Plan)
	assert.Equal(t, 2, sums[2].Plan)

	labels, err := boltsink.Plan(db, table, 2)
	require.NoError(t, err)
	assert.Equal(t, res.Final.Labels(), labels)

	out, final, err := boltsink.LoadOutcome(db, table)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Steps)
	assert.Equal(t, chain.StopMaxSteps, out.StopReason)
	assert.Len(t, out.Fingerprints, 3)
	require.NotNil(t, final)
	assert.Equal(t, labels, final.Labels())
}

func TestSink_ReplacesPreviousRun(t *testing.T) {
	db := openDB(t)
	g, err := builder.GridPlan(2, 2, 2)
	require.NoError(t, err)
	cfg := chain.DefaultConfig()
	cfg.PopImbalanceStop = true

	for i := 0; i < 2; i++ {
		c, err := chain.New(g.Clone(), cfg)
		require.NoError(t, err)
		s, err := boltsink.New(db, "square")
		require.NoError(t, err)
		_, err = c.Run(context.Background(), s)
		require.NoError(t, err)
	}
	sums, err := boltsink.Summaries(db, "square")
	require.NoError(t, err)
	assert.Len(t, sums, 1)
}

func TestMissingRun(t *testing.T) {
	db := openDB(t)
	_, err := boltsink.Summaries(db, "nope")
	assert.ErrorIs(t, err, boltsink.ErrRunNotFound)
	_, _, err = boltsink.LoadOutcome(db, "nope")
	assert.ErrorIs(t, err, boltsink.ErrRunNotFound)
}
