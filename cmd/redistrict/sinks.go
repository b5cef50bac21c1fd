// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
	"github.com/katalvlaran/redistrict/chain"
	"github.com/katalvlaran/redistrict/config"
	"github.com/katalvlaran/redistrict/graphio"
	"github.com/katalvlaran/redistrict/runner"
	"github.com/katalvlaran/redistrict/sink/boltsink"
	"github.com/katalvlaran/redistrict/sink/csvsink"
	"github.com/katalvlaran/redistrict/sink/sqlsink"
)

// discard drops everything; used for output kind "none".
type discard struct{}

func (discard) Record(context.Context, *chain.Record) error { return nil }
func (discard) Finish(context.Context, *chain.Result) error { return nil }

// openSinks returns the per-seed sink factory for the configured output and
// a function releasing whatever the factory shares between seeds.
func openSinks(out config.Output, gopts []graphio.Option) (runner.SinkFactory, func() error, error) {
	noop := func() error { return nil }

	switch out.Kind {
	case config.OutputNone:
		return func(context.Context, string, int64) (chain.Sink, error) {
			return discard{}, nil
		}, noop, nil

	case config.OutputCSV:
		return func(_ context.Context, table string, _ int64) (chain.Sink, error) {
			return csvsink.New(out.Path, table, gopts...)
		}, noop, nil

	case config.OutputSQLite, config.OutputMySQL:
		db, err := sqlsink.Open(out.Kind, out.Path)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return func(ctx context.Context, table string, seed int64) (chain.Sink, error) {
			return sqlsink.New(ctx, db, table, seed, gopts...)
		}, sqlDB.Close, nil

	case config.OutputBolt:
		db, err := bolt.Open(out.Path, 0o600, &bolt.Options{Timeout: 5 * time.Second})
		if err != nil {
			return nil, nil, err
		}
		return func(_ context.Context, table string, _ int64) (chain.Sink, error) {
			return boltsink.New(db, table, gopts...)
		}, db.Close, nil
	}

	return nil, nil, fmt.Errorf("unsupported output kind %q", out.Kind)
}
