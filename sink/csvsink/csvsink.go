// SPDX-License-Identifier: MIT
// Package csvsink writes a chain run as three CSV tables plus the final
// graph in node-link JSON:
//
//	<table>_plans.csv    geoid,plan,district
//	<table>_stats.csv    district,plan,aland,perim,polsby_popper,total_pop,density
//	<table>_summary.csv  plan,pop_imbalance,polsby_popper
//	<table>_final.json
package csvsink

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/katalvlaran/redistrict/chain"
	"github.com/katalvlaran/redistrict/graphio"
)

var (
	planHeader    = []string{"geoid", "plan", "district"}
	statsHeader   = []string{"district", "plan", "aland", "perim", "polsby_popper", "total_pop", "density"}
	summaryHeader = []string{"plan", "pop_imbalance", "polsby_popper"}
)

// ErrClosed indicates a write after Finish or Close.
var ErrClosed = errors.New("csvsink: sink is closed")

type table struct {
	f *os.File
	w *csv.Writer
}

func openTable(path string, header []string) (*table, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	t := &table{f: f, w: csv.NewWriter(f)}
	if err := t.w.Write(header); err != nil {
		f.Close()
		return nil, err
	}

	return t, nil
}

func (t *table) close() error {
	t.w.Flush()
	return errors.Join(t.w.Error(), t.f.Close())
}

// Sink implements chain.Sink over CSV files.
type Sink struct {
	dir, table string
	gopts      []graphio.Option

	plans, stats, summary *table
	closed                bool
}

// New creates the three tables for one run in dir. graphio options control
// how the final graph is written (district field name, indentation).
func New(dir, table string, gopts ...graphio.Option) (*Sink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	s := &Sink{dir: dir, table: table, gopts: gopts}

	var err error
	if s.plans, err = openTable(s.path("_plans.csv"), planHeader); err != nil {
		return nil, err
	}
	if s.stats, err = openTable(s.path("_stats.csv"), statsHeader); err != nil {
		s.plans.close()
		return nil, err
	}
	if s.summary, err = openTable(s.path("_summary.csv"), summaryHeader); err != nil {
		s.plans.close()
		s.stats.close()
		return nil, err
	}

	return s, nil
}

func (s *Sink) path(suffix string) string { return filepath.Join(s.dir, s.table+suffix) }

// Paths returns the files this sink writes, final graph last.
func (s *Sink) Paths() []string {
	return []string{s.path("_plans.csv"), s.path("_stats.csv"), s.path("_summary.csv"), s.path("_final.json")}
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// Record implements chain.Sink.
func (s *Sink) Record(_ context.Context, r *chain.Record) error {
	if s.closed {
		return ErrClosed
	}
	step := strconv.Itoa(r.Step)
	for _, row := range r.PlanRows() {
		if err := s.plans.w.Write([]string{row.UnitID, step, row.District}); err != nil {
			return err
		}
	}
	for _, d := range r.Stats {
		rec := []string{d.Label, step, ftoa(d.ALand), ftoa(d.Perim), ftoa(d.PolsbyPopper),
			strconv.FormatInt(d.TotalPop, 10), ftoa(d.Density)}
		if err := s.stats.w.Write(rec); err != nil {
			return err
		}
	}

	return s.summary.w.Write([]string{step, ftoa(r.Summary.PopImbalance), ftoa(r.Summary.PolsbyPopper)})
}

// Finish closes the tables and writes the final graph.
func (s *Sink) Finish(_ context.Context, res *chain.Result) error {
	if err := s.Close(); err != nil {
		return err
	}
	if res.Final == nil {
		return nil
	}
	if err := graphio.SaveFile(s.path("_final.json"), res.Final, s.gopts...); err != nil {
		return fmt.Errorf("csvsink: final graph: %w", err)
	}

	return nil
}

// Close flushes and closes the tables. It is safe to call more than once.
func (s *Sink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	return errors.Join(s.plans.close(), s.stats.close(), s.summary.close())
}
