// SPDX-License-Identifier: MIT
// Command redistrict runs ReCom redistricting chains for a range of seeds.
//
//	redistrict -c run.yaml [-s steps] [-n seeds] [-w workers] [-o kind -p path]
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/akamensky/argparse"
	"github.com/katalvlaran/redistrict/config"
	"github.com/katalvlaran/redistrict/graphio"
	"github.com/katalvlaran/redistrict/metrics"
	"github.com/katalvlaran/redistrict/runner"
	logger "github.com/sirupsen/logrus"
)

var log *logger.Logger

func main() {
	parser := argparse.NewParser("redistrict", "samples district plans with the ReCom Markov chain")
	configFile := parser.String("c", "config", &argparse.Options{
		Help:     "YAML configuration file",
		Required: true,
	})
	steps := parser.Int("s", "steps", &argparse.Options{
		Help: "override max_steps",
	})
	seeds := parser.Int("n", "seeds", &argparse.Options{
		Help: "override the number of seeds",
	})
	seedStart := parser.Int("", "seed-start", &argparse.Options{
		Help:    "override seed_start",
		Default: -1,
	})
	workers := parser.Int("w", "workers", &argparse.Options{
		Help: "override the worker count",
	})
	outKind := parser.Selector("o", "output", []string{
		config.OutputNone, config.OutputCSV, config.OutputSQLite, config.OutputMySQL, config.OutputBolt,
	}, &argparse.Options{
		Help: "override output.kind",
	})
	outPath := parser.String("p", "path", &argparse.Options{
		Help: "override output.path",
	})
	level := parser.String("l", "log", &argparse.Options{
		Help: "override log_level",
	})
	metricsAddr := parser.String("m", "metrics", &argparse.Options{
		Help: "serve Prometheus metrics on this address",
	})
	if err := parser.Parse(os.Args); err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(2)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot load config: %v\n", err)
		os.Exit(2)
	}
	if *steps > 0 {
		cfg.Chain.MaxSteps = *steps
	}
	if *seeds > 0 {
		cfg.Seeds = *seeds
	}
	if *seedStart >= 0 {
		cfg.SeedStart = int64(*seedStart)
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *outKind != "" {
		cfg.Output.Kind = *outKind
	}
	if *outPath != "" {
		cfg.Output.Path = *outPath
	}
	if *level != "" {
		cfg.LogLevel = *level
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if log, err = newLogger(cfg.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log.Infof("logging at log level %v; all times in UTC", cfg.LogLevel)

	if err := run(cfg); err != nil {
		log.Error(err)
		os.Exit(1)
	}
	log.Info(" ... ending ... ")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	gopts := []graphio.Option{graphio.WithDistrictField(cfg.Input.DistrictField)}
	g, err := graphio.LoadFile(cfg.Input.Graph, cfg.Input.Adjacency, gopts...)
	if err != nil {
		return fmt.Errorf("load %s: %w", cfg.Input.Graph, err)
	}
	log.Infof("loaded %d units and %d edges from %s", g.UnitCount(), g.EdgeCount(), cfg.Input.Graph)

	factory, closeSinks, err := openSinks(cfg.Output, gopts)
	if err != nil {
		return fmt.Errorf("open %s output: %w", cfg.Output.Kind, err)
	}
	defer func() {
		if err := closeSinks(); err != nil {
			log.Warnf("closing output: %v", err)
		}
	}()

	opts := []runner.Option{
		runner.WithLogger(logger.NewEntry(log)),
		runner.WithSinkFactory(factory),
	}
	if cfg.MetricsAddr != "" {
		col := metrics.NewCollector("redistrict")
		opts = append(opts, runner.WithMetrics(col))
		srv := serveMetrics(cfg.MetricsAddr, col)
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(sctx)
		}()
	}

	outs, err := runner.New(opts...).Run(ctx, g, runner.Config{
		Name:      cfg.Name,
		Chain:     cfg.Chain,
		SeedStart: cfg.SeedStart,
		Seeds:     cfg.Seeds,
		Workers:   cfg.Workers,
	})
	for _, o := range outs {
		if o.Result == nil {
			continue
		}
		log.WithField("table", o.Table).Infof("seed %d: %d steps (%s), imbalance %.3f%%",
			o.Seed, o.Result.Steps, o.Result.StopReason, o.Result.Summary.PopImbalance)
	}

	return err
}

func serveMetrics(addr string, col *metrics.Collector) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", col.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warnf("metrics server: %v", err)
		}
	}()
	log.Infof("serving metrics on %s/metrics", addr)

	return srv
}
