// SPDX-License-Identifier: MIT
package sqlsink

import "time"

// PlanRow is one unit's district in one plan.
type PlanRow struct {
	Geoid    string `gorm:"primaryKey"`
	Plan     int    `gorm:"primaryKey;autoIncrement:false;index"`
	District string
}

// StatsRow is one district's statistics in one plan.
type StatsRow struct {
	District     string `gorm:"primaryKey"`
	Plan         int    `gorm:"primaryKey;autoIncrement:false;index"`
	ALand        float64
	Perim        float64
	PolsbyPopper float64
	TotalPop     int64
	Density      float64
}

// SummaryRow is the plan-wide summary. Plan numbers start at 0, so none of
// the plan keys may auto-increment.
type SummaryRow struct {
	Plan         int `gorm:"primaryKey;autoIncrement:false"`
	PopImbalance float64
	PolsbyPopper float64
}

// Run describes one seed's chain. Graph holds the final plan as node-link JSON.
type Run struct {
	RunID        string `gorm:"primaryKey"`
	Name         string `gorm:"index"`
	Seed         int64
	Steps        int
	StopReason   string
	Ideal        float64
	PopImbalance float64
	PolsbyPopper float64
	Complete     bool
	Graph        []byte
	StartedAt    time.Time
	FinishedAt   *time.Time
}
