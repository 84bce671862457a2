package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/fileutil"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/simulator"
)

type SimulateCmd struct {
	Config  string `short:"c" default:"blackjack.hcl" help:"Table configuration file for the rules"`
	Rounds  int    `default:"100000" help:"Number of rounds to simulate"`
	Workers int    `default:"0" help:"Parallel workers (0 for one per CPU)"`
	Players int    `default:"1" help:"Seats at each simulated table"`
	Wager   int    `default:"10" help:"Flat wager per round"`
	Seed    int64  `default:"0" help:"RNG seed (0 for random)"`
	Output  string `short:"o" type:"path" help:"Write a JSON report to this file"`
	Verbose bool   `help:"Verbose logging"`
}

func (c *SimulateCmd) Run() error {
	level := log.InfoLevel
	if c.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})

	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	rules, err := cfg.Rules()
	if err != nil {
		return fmt.Errorf("invalid rules: %w", err)
	}

	seed := c.Seed
	if seed == 0 {
		seed = randutil.SeedFromEntropy()
	}
	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim := simulator.New(simulator.Config{
		Rounds:  c.Rounds,
		Workers: workers,
		Players: c.Players,
		Wager:   c.Wager,
		Seed:    seed,
		Rules:   rules,
		Logger:  logger,
	})
	report, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	simulator.PrintSummary(os.Stdout, report)
	fmt.Printf("Seed:        %d\n", seed)

	if c.Output != "" {
		if err := fileutil.WriteJSONAtomic(c.Output, report.Summary(), 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.Info("Wrote report", "path", c.Output)
	}
	return nil
}
