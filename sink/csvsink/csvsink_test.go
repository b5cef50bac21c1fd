// SPDX-License-Identifier: MIT
package csvsink_test

import (
	"context"
	"encoding/csv"
	"os"
	"testing"

	"github.com/katalvlaran/redistrict/builder"
	"github.com/katalvlaran/redistrict/chain"
	"github.com/katalvlaran/redistrict/graphio"
	"github.com/katalvlaran/redistrict/sink"
	"github.com/katalvlaran/redistrict/sink/csvsink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	return rows
}

func TestSink_WritesRun(t *testing.T) {
	g, err := builder.GridPlan(6, 6, 3)
	require.NoError(t, err)
	cfg := chain.DefaultConfig()
	cfg.MaxSteps = 2
	c, err := chain.New(g, cfg)
	require.NoError(t, err)

	s, err := csvsink.New(t.TempDir(), sink.TableName("grid", cfg.RandomSeed))
	require.NoError(t, err)
	res, err := c.Run(context.Background(), s)
	require.NoError(t, err)

	paths := s.Paths()
	plans := readCSV(t, paths[0])
	assert.Equal(t, []string{"geoid", "plan", "district"}, plans[0])
	assert.Len(t, plans, 1+36*3)
	assert.Equal(t, []string{builder.GridID(0, 0), "0", "1"}, plans[1])

	stats := readCSV(t, paths[1])
	assert.Len(t, stats, 1+3*3)
	assert.Equal(t, "polsby_popper", stats[0][4])

	summary := readCSV(t, paths[2])
	require.Len(t, summary, 4)
	assert.Equal(t, []string{"0", "0", summary[1][2]}, summary[1])
	assert.Equal(t, "2", summary[3][0])

	final, err := graphio.LoadFile(paths[3], "")
	require.NoError(t, err)
	assert.Equal(t, res.Final.Labels(), final.Labels())

	assert.NoError(t, s.Close())
	assert.ErrorIs(t, s.Record(context.Background(), c.Last()), csvsink.ErrClosed)
}

func TestNew_BadDir(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "file")
	require.NoError(t, err)
	f.Close()

	_, err = csvsink.New(f.Name(), "x")
	assert.Error(t, err)
}
