// SPDX-License-Identifier: MIT
// Package boltsink stores chain runs in a bolt key/value file.
//
// Layout, one top-level bucket per run:
//
//	<table>/plans/<step>    JSON {unit: district}
//	<table>/stats/<step>    JSON []stats.DistrictStats
//	<table>/summary/<step>  JSON stats.Summary
//	<table>/meta/result     JSON run outcome
//	<table>/meta/graph      final graph, node-link JSON
//
// Step keys are 8-byte big-endian so cursors iterate in plan order.
package boltsink

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/boltdb/bolt"
	"github.com/katalvlaran/redistrict/chain"
	"github.com/katalvlaran/redistrict/core"
	"github.com/katalvlaran/redistrict/graphio"
	"github.com/katalvlaran/redistrict/stats"
)

var (
	plansBucket   = []byte("plans")
	statsBucket   = []byte("stats")
	summaryBucket = []byte("summary")
	metaBucket    = []byte("meta")
	resultKey     = []byte("result")
	graphKey      = []byte("graph")
)

// ErrRunNotFound indicates no bucket exists for the requested run.
var ErrRunNotFound = errors.New("boltsink: run not found")

// Outcome is the stored run result.
type Outcome struct {
	Seed         int64    `json:"seed"`
	Steps        int      `json:"steps"`
	StopReason   string   `json:"stop_reason"`
	Ideal        float64  `json:"ideal"`
	PopImbalance float64  `json:"pop_imbalance"`
	PolsbyPopper float64  `json:"polsby_popper"`
	Fingerprints []string `json:"fingerprints"`
}

func stepKey(step int) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, uint64(step))

	return k
}

// Sink implements chain.Sink over a shared *bolt.DB.
type Sink struct {
	db    *bolt.DB
	table []byte
	gopts []graphio.Option
}

// New creates (or clears) the run's buckets.
func New(db *bolt.DB, table string, gopts ...graphio.Option) (*Sink, error) {
	s := &Sink{db: db, table: []byte(table), gopts: gopts}
	err := db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(s.table) != nil {
			if err := tx.DeleteBucket(s.table); err != nil {
				return err
			}
		}
		root, err := tx.CreateBucket(s.table)
		if err != nil {
			return err
		}
		for _, name := range [][]byte{plansBucket, statsBucket, summaryBucket, metaBucket} {
			if _, err := root.CreateBucket(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("boltsink: create %s: %w", table, err)
	}

	return s, nil
}

// Record implements chain.Sink.
func (s *Sink) Record(_ context.Context, r *chain.Record) error {
	labels, err := json.Marshal(r.Labels)
	if err != nil {
		return err
	}
	ds, err := json.Marshal(r.Stats)
	if err != nil {
		return err
	}
	sum, err := json.Marshal(r.Summary)
	if err != nil {
		return err
	}
	key := stepKey(r.Step)

	return s.db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(s.table)
		if err := root.Bucket(plansBucket).Put(key, labels); err != nil {
			return err
		}
		if err := root.Bucket(statsBucket).Put(key, ds); err != nil {
			return err
		}
		return root.Bucket(summaryBucket).Put(key, sum)
	})
}

// Finish implements chain.Sink.
func (s *Sink) Finish(_ context.Context, res *chain.Result) error {
	out := Outcome{
		Seed:         res.Seed,
		Steps:        res.Steps,
		StopReason:   res.StopReason,
		Ideal:        res.Ideal,
		PopImbalance: res.Summary.PopImbalance,
		PolsbyPopper: res.Summary.PolsbyPopper,
	}
	for _, f := range res.Fingerprints {
		out.Fingerprints = append(out.Fingerprints, string(f))
	}
	meta, err := json.Marshal(out)
	if err != nil {
		return err
	}
	var graph bytes.Buffer
	if res.Final != nil {
		if err := graphio.WriteNodeLink(&graph, res.Final, s.gopts...); err != nil {
			return err
		}
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.table).Bucket(metaBucket)
		if err := b.Put(resultKey, meta); err != nil {
			return err
		}
		return b.Put(graphKey, graph.Bytes())
	})
}

func view(db *bolt.DB, table string, fn func(root *bolt.Bucket) error) error {
	return db.View(func(tx *bolt.Tx) error {
		root := tx.Bucket([]byte(table))
		if root == nil {
			return fmt.Errorf("%w: %s", ErrRunNotFound, table)
		}
		return fn(root)
	})
}

// Summaries returns the run's summaries in plan order.
func Summaries(db *bolt.DB, table string) ([]stats.Summary, error) {
	var out []stats.Summary
	err := view(db, table, func(root *bolt.Bucket) error {
		c := root.Bucket(summaryBucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var sum stats.Summary
			if err := json.Unmarshal(v, &sum); err != nil {
				return err
			}
			out = append(out, sum)
		}
		return nil
	})

	return out, err
}

// Plan returns one plan's labels.
func Plan(db *bolt.DB, table string, step int) (core.Assignment, error) {
	var out core.Assignment
	err := view(db, table, func(root *bolt.Bucket) error {
		v := root.Bucket(plansBucket).Get(stepKey(step))
		if v == nil {
			return fmt.Errorf("%w: %s plan %d", ErrRunNotFound, table, step)
		}
		return json.Unmarshal(v, &out)
	})

	return out, err
}

// LoadOutcome returns the stored result and final graph of a finished run.
func LoadOutcome(db *bolt.DB, table string, gopts ...graphio.Option) (*Outcome, *core.Graph, error) {
	var (
		out   Outcome
		graph []byte
	)
	err := view(db, table, func(root *bolt.Bucket) error {
		b := root.Bucket(metaBucket)
		v := b.Get(resultKey)
		if v == nil {
			return fmt.Errorf("%w: %s has not finished", ErrRunNotFound, table)
		}
		// bolt values are only valid inside the transaction
		graph = append([]byte(nil), b.Get(graphKey)...)
		return json.Unmarshal(v, &out)
	})
	if err != nil {
		return nil, nil, err
	}
	if len(graph) == 0 {
		return &out, nil, nil
	}
	g, err := graphio.ReadNodeLink(bytes.NewReader(graph), gopts...)
	if err != nil {
		return nil, nil, err
	}

	return &out, g, nil
}
