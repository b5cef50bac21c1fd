// SPDX-License-Identifier: MIT
// Package sqlsink stores chain runs through gorm in SQLite or MySQL.
//
// Every run gets three tables named after it (<table>_plans, <table>_stats,
// <table>_summary) and one row in the shared runs table.
package sqlsink

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/redistrict/chain"
	"github.com/katalvlaran/redistrict/graphio"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Supported database kinds.
const (
	KindSQLite = "sqlite"
	KindMySQL  = "mysql"
)

const batchSize = 1000 // an arbitrary choice

// ErrUnsupported indicates an unknown database kind.
var ErrUnsupported = errors.New("sqlsink: unsupported database type")

// Open connects to the database. SQLite connections are limited to one so
// concurrent runs serialize instead of failing on the file lock.
func Open(kind, dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch kind {
	case KindSQLite:
		dial = sqlite.Open(dsn)
	case KindMySQL:
		dial = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, kind)
	}

	db, err := gorm.Open(dial, &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if kind == KindSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(&Run{}); err != nil {
		return nil, err
	}

	return db, nil
}

// Sink implements chain.Sink over a gorm database.
type Sink struct {
	db    *gorm.DB
	run   Run
	gopts []graphio.Option
}

// New creates the run's tables and its runs row.
func New(ctx context.Context, db *gorm.DB, table string, seed int64, gopts ...graphio.Option) (*Sink, error) {
	s := &Sink{
		db:    db,
		gopts: gopts,
		run: Run{
			RunID:     uuid.NewString(),
			Name:      table,
			Seed:      seed,
			StartedAt: time.Now().UTC(),
		},
	}
	tx := db.WithContext(ctx)
	for suffix, model := range map[string]interface{}{
		"_plans":   &PlanRow{},
		"_stats":   &StatsRow{},
		"_summary": &SummaryRow{},
	} {
		if err := tx.Table(table + suffix).AutoMigrate(model); err != nil {
			return nil, fmt.Errorf("sqlsink: migrate %s%s: %w", table, suffix, err)
		}
	}
	if r := tx.Create(&s.run); r.Error != nil {
		return nil, r.Error
	}

	return s, nil
}

// RunID returns the identifier of this run's row.
func (s *Sink) RunID() string { return s.run.RunID }

// Record implements chain.Sink.
func (s *Sink) Record(ctx context.Context, r *chain.Record) error {
	tx := s.db.WithContext(ctx)
	table := s.run.Name

	plans := make([]PlanRow, 0, len(r.Labels))
	for _, row := range r.PlanRows() {
		plans = append(plans, PlanRow{Geoid: row.UnitID, Plan: row.Step, District: row.District})
	}
	if res := tx.Table(table+"_plans").CreateInBatches(plans, batchSize); res.Error != nil {
		return res.Error
	}

	rows := make([]StatsRow, 0, len(r.Stats))
	for _, d := range r.Stats {
		rows = append(rows, StatsRow{
			District:     d.Label,
			Plan:         r.Step,
			ALand:        d.ALand,
			Perim:        d.Perim,
			PolsbyPopper: d.PolsbyPopper,
			TotalPop:     d.TotalPop,
			Density:      d.Density,
		})
	}
	if res := tx.Table(table + "_stats").Create(&rows); res.Error != nil {
		return res.Error
	}

	sum := SummaryRow{Plan: r.Step, PopImbalance: r.Summary.PopImbalance, PolsbyPopper: r.Summary.PolsbyPopper}

	return tx.Table(table + "_summary").Create(&sum).Error
}

// Finish completes the runs row with the outcome and the final graph.
func (s *Sink) Finish(ctx context.Context, res *chain.Result) error {
	if res.Final != nil {
		var buf bytes.Buffer
		if err := graphio.WriteNodeLink(&buf, res.Final, s.gopts...); err != nil {
			return err
		}
		s.run.Graph = buf.Bytes()
	}
	now := time.Now().UTC()
	s.run.Steps = res.Steps
	s.run.StopReason = res.StopReason
	s.run.Ideal = res.Ideal
	s.run.PopImbalance = res.Summary.PopImbalance
	s.run.PolsbyPopper = res.Summary.PolsbyPopper
	s.run.Complete = true
	s.run.FinishedAt = &now

	return s.db.WithContext(ctx).Save(&s.run).Error
}

// LoadRun fetches a run row by ID.
func LoadRun(ctx context.Context, db *gorm.DB, runID string) (*Run, error) {
	var run Run
	if err := db.WithContext(ctx).First(&run, "run_id = ?", runID).Error; err != nil {
		return nil, err
	}

	return &run, nil
}

// Summaries returns a run's summary rows ordered by plan.
func Summaries(ctx context.Context, db *gorm.DB, table string) ([]SummaryRow, error) {
	var out []SummaryRow
	err := db.WithContext(ctx).Table(table + "_summary").
		Order(clause.OrderByColumn{Column: clause.Column{Name: "plan"}}).
		Find(&out).Error

	return out, err
}

// Plan returns one plan's unit labels.
func Plan(ctx context.Context, db *gorm.DB, table string, step int) (map[string]string, error) {
	var rows []PlanRow
	if err := db.WithContext(ctx).Table(table+"_plans").Where(map[string]interface{}{"plan": step}).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.Geoid] = r.District
	}

	return out, nil
}
