// SPDX-License-Identifier: MIT
// Package config loads the redistrict YAML configuration.
//
// Chain options sit at the top level, next to the run name and seeds:
//
//	name: pa
//	max_steps: 1000
//	pop_imbalance_tol: 5
//	pop_imbalance_stop: true
//	seed_start: 1
//	seeds: 8
//	input:
//	  graph: pa.json
//	  district_field: cd
//	output:
//	  kind: sqlite
//	  path: runs.db
//
// Keys that are absent keep their Default value; unknown keys are rejected.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/katalvlaran/redistrict/chain"
	"github.com/katalvlaran/redistrict/graphio"
	"gopkg.in/yaml.v3"
)

// Output kinds.
const (
	OutputNone   = "none"
	OutputCSV    = "csv"
	OutputSQLite = "sqlite"
	OutputMySQL  = "mysql"
	OutputBolt   = "bolt"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

var validate = validator.New()

// Input locates the dual graph.
type Input struct {
	Graph         string `yaml:"graph" validate:"required"`
	Adjacency     string `yaml:"adjacency"`
	DistrictField string `yaml:"district_field" validate:"required"`
}

// Output selects where runs are stored.
type Output struct {
	Kind string `yaml:"kind" validate:"oneof=none csv sqlite mysql bolt"`
	// Path is a directory for csv, a file for sqlite and bolt, a DSN for mysql.
	Path string `yaml:"path" validate:"required_unless=Kind none"`
}

// Config is the full run configuration.
type Config struct {
	Name      string       `yaml:"name" validate:"required"`
	Chain     chain.Config `yaml:",inline"`
	SeedStart int64        `yaml:"seed_start"`
	Seeds     int          `yaml:"seeds" validate:"gte=1"`
	Workers   int          `yaml:"workers" validate:"gte=1"`
	Input     Input        `yaml:"input"`
	Output    Output       `yaml:"output"`
	LogLevel  string       `yaml:"log_level" validate:"oneof=trace debug info warn warning error fatal panic"`
	// MetricsAddr, when set, serves /metrics on that address during the run.
	MetricsAddr string `yaml:"metrics_addr"`
}

// Default returns the configuration used for absent keys.
func Default() *Config {
	return &Config{
		Name:      "redistrict",
		Chain:     chain.DefaultConfig(),
		SeedStart: chain.DefaultRandomSeed,
		Seeds:     1,
		Workers:   runtime.NumCPU(),
		Input:     Input{DistrictField: graphio.DefaultDistrictField},
		Output:    Output{Kind: OutputCSV, Path: "out"},
		LogLevel:  "info",
	}
}

// Parse decodes YAML from r over Default and validates the result.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(bytes.NewReader(data))
}

// Validate checks struct constraints, including the nested chain options.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}

	return nil
}

// Dump writes the configuration as YAML.
func (c *Config) Dump(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}

	return enc.Close()
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.TrimPrefix(e.Namespace(), "Config.")
		if e.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s (got %v)", field, e.Tag(), e.Param(), e.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, e.Tag()))
		}
	}

	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}
