package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/debrislab/breakup"
)

var (
	seed    uint64
	workers int
)

func init() {
	flag.Uint64Var(&seed, "seed", 0, "fixed random seed (reproducible only with -workers 1)")
	flag.IntVar(&workers, "workers", 0, "number of sampling workers, 0 picks one per CPU")
}

func main() {
	flag.Parse()
	logger := log.With(log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr)), "ts", log.DefaultTimestampUTC)

	if flag.NArg() != 1 {
		level.Error(logger).Log("msg", "wrong program call, usage: breakup [flags] <yaml-config-file>")
		os.Exit(1)
	}
	if err := run(logger, flag.Arg(0)); err != nil {
		level.Error(logger).Log("err", err)
		os.Exit(1)
	}
}

func run(logger log.Logger, configPath string) error {
	cfg, err := breakup.LoadConfiguration(logger, configPath)
	if err != nil {
		return err
	}
	satellites, err := cfg.LoadSatellites()
	if err != nil {
		return err
	}

	builder := breakup.NewBreakupBuilder(logger).
		MinimalCharacteristicLength(cfg.MinimalCharacteristicLength).
		SimulationType(cfg.SimulationType).
		EnforceMassConservation(cfg.EnforceMassConservation).
		Satellites(satellites)
	if cfg.CurrentMaxID != nil {
		builder.CurrentMaxID(*cfg.CurrentMaxID)
	}
	if cfg.HasIDFilter {
		builder.IDFilter(cfg.IDFilter)
	}
	simulation, err := builder.Build()
	if err != nil {
		return err
	}
	if seedFlagSet() {
		simulation.SetSeed(seed)
	}
	if workers > 0 {
		simulation.SetWorkers(workers)
	}

	start := time.Now()
	simulation.Run()
	level.Info(logger).Log("msg", "simulation finished",
		"duration", time.Since(start), "fragments", simulation.Result().Size())

	for _, writer := range breakup.NewWritersFromSpec(logger, cfg.ResultOutput) {
		if err = writer.Write(simulation.ResultAoS()); err != nil {
			return fmt.Errorf("writing simulation result: %w", err)
		}
	}
	for _, writer := range breakup.NewWritersFromSpec(logger, cfg.InputOutput) {
		if err = writer.Write(simulation.Input()); err != nil {
			return fmt.Errorf("writing simulation input: %w", err)
		}
	}
	return nil
}

func seedFlagSet() bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			set = true
		}
	})
	return set
}
