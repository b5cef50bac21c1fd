// SPDX-License-Identifier: MIT
package chain

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/redistrict/core"
	"github.com/katalvlaran/redistrict/plan"
	"github.com/katalvlaran/redistrict/recom"
	"github.com/katalvlaran/redistrict/spanning"
	"github.com/katalvlaran/redistrict/stats"
)

// Sentinel errors for chain construction and stepping.
var (
	// ErrInvalidConfig indicates a configuration value out of range.
	ErrInvalidConfig = errors.New("chain: invalid configuration")

	// ErrStepExhausted indicates MaxAttempts searches found no move for one step.
	ErrStepExhausted = errors.New("chain: step attempts exhausted")

	// ErrStopped indicates Step was called on a stopped chain.
	ErrStopped = errors.New("chain: chain is stopped")

	// ErrTooManyNewDistricts indicates more new districts than units.
	ErrTooManyNewDistricts = errors.New("chain: more new districts than units")
)

// StepError reports a step that could not be completed.
type StepError struct {
	Step     int
	Attempts int
	Err      error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("chain: step %d failed after %d attempts: %v", e.Step, e.Attempts, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// State is the lifecycle phase of a Chain.
type State int

const (
	// Initializing: plan 0 is recorded, no step has been taken.
	Initializing State = iota
	// Stepping: at least one step was started.
	Stepping
	// Stopped: a stop condition was met or a fatal error occurred.
	Stopped
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "INITIALIZING"
	case Stepping:
		return "STEPPING"
	case Stopped:
		return "STOPPED"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Stop reasons reported in Result.
const (
	StopMaxSteps  = "max_steps"
	StopBalanced  = "pop_imbalance_tol"
	StopCancelled = "cancelled"
	StopFailed    = "failed"
)

// Defaults for Config.
const (
	DefaultMaxSteps    = 100
	DefaultRandomSeed  = 1
	DefaultMaxAttempts = 50
)

// Config holds the recognized chain options.
type Config struct {
	MaxSteps         int          `yaml:"max_steps" validate:"gte=1"`
	RandomSeed       int64        `yaml:"random_seed"`
	PopImbalanceTol  float64      `yaml:"pop_imbalance_tol" validate:"gte=0"`
	PopImbalanceStop bool         `yaml:"pop_imbalance_stop"`
	NewDistricts     int          `yaml:"new_districts" validate:"gte=0"`
	MaxAttempts      int          `yaml:"max_attempts" validate:"gte=1"`
	Recom            recom.Config `yaml:"recom"`
}

// DefaultConfig returns a chain configuration with the standard search budget.
func DefaultConfig() Config {
	return Config{
		MaxSteps:        DefaultMaxSteps,
		RandomSeed:      DefaultRandomSeed,
		PopImbalanceTol: recom.DefaultTolerance,
		MaxAttempts:     DefaultMaxAttempts,
		Recom:           recom.DefaultConfig(),
	}
}

func (c Config) check() error {
	switch {
	case c.MaxSteps < 1:
		return fmt.Errorf("%w: max_steps=%d", ErrInvalidConfig, c.MaxSteps)
	case c.PopImbalanceTol < 0:
		return fmt.Errorf("%w: pop_imbalance_tol=%g", ErrInvalidConfig, c.PopImbalanceTol)
	case c.NewDistricts < 0:
		return fmt.Errorf("%w: new_districts=%d", ErrInvalidConfig, c.NewDistricts)
	case c.MaxAttempts < 1:
		return fmt.Errorf("%w: max_attempts=%d", ErrInvalidConfig, c.MaxAttempts)
	case c.Recom.MaxTrees < 1:
		return fmt.Errorf("%w: recom.max_trees=%d", ErrInvalidConfig, c.Recom.MaxTrees)
	case c.Recom.ConsistencyEps <= 0:
		return fmt.Errorf("%w: recom.consistency_eps=%g", ErrInvalidConfig, c.Recom.ConsistencyEps)
	case c.Recom.TreeMethod != "" && c.Recom.TreeMethod != spanning.MethodKruskal && c.Recom.TreeMethod != spanning.MethodPrim:
		return fmt.Errorf("%w: recom.tree_method=%q", ErrInvalidConfig, c.Recom.TreeMethod)
	}

	return nil
}

// PlanRow is one row of the unit history table.
type PlanRow struct {
	UnitID   string `json:"geoid"`
	Step     int    `json:"plan"`
	District string `json:"district"`
}

// Record is everything emitted for one accepted plan.
type Record struct {
	Step        int
	Labels      core.Assignment
	Stats       []stats.DistrictStats
	Summary     stats.Summary
	Fingerprint plan.Fingerprint
	// Pair and Attempts are zero for plan 0.
	Pair     recom.Pair
	Attempts int
}

// PlanRows returns the unit history rows ordered by unit ID.
func (r *Record) PlanRows() []PlanRow {
	ids := make([]string, 0, len(r.Labels))
	for id := range r.Labels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	rows := make([]PlanRow, len(ids))
	for i, id := range ids {
		rows[i] = PlanRow{UnitID: id, Step: r.Step, District: r.Labels[id]}
	}

	return rows
}

// Result describes a finished chain.
type Result struct {
	Seed         int64
	Steps        int
	StopReason   string
	Ideal        float64
	Summary      stats.Summary
	Fingerprints []plan.Fingerprint
	// Final is a detached copy of the labeled graph.
	Final *core.Graph
}

// Observer receives chain-level events.
type Observer interface {
	StepAccepted(step, attempts int, imbalance float64)
	StepFailed(step int, err error)
	Stopped(reason string, steps int)
}

type nopObserver struct{}

func (nopObserver) StepAccepted(int, int, float64) {}
func (nopObserver) StepFailed(int, error)          {}
func (nopObserver) Stopped(string, int)            {}
