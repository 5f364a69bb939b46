package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/coder/quartz"

	"github.com/lox/minibalatro/internal/simulator"
	"github.com/lox/minibalatro/internal/statistics"
)

type SimulateCmd struct {
	Seeds      int    `short:"n" help:"Number of seeds to simulate (overrides config)"`
	Start      *int64 `help:"First seed (overrides config)"`
	FirstPool  int    `help:"Cards available to the first hand (overrides config)"`
	SecondPool int    `help:"Cards available to the second hand (overrides config)"`
	Workers    int    `short:"w" help:"Parallel workers (overrides config, 0 = one per CPU)"`
	Output     string `short:"o" type:"path" help:"Write a JSON report to this file"`
	Verbose    bool   `help:"Log every seed's total"`
}

// apply overlays the flags that were given onto the configured settings
func (c *SimulateCmd) apply(sim *simulator.Config) {
	if c.Seeds > 0 {
		sim.Seeds = c.Seeds
	}
	if c.Start != nil {
		sim.StartSeed = *c.Start
	}
	if c.FirstPool > 0 {
		sim.FirstPool = c.FirstPool
	}
	if c.SecondPool > 0 {
		sim.SecondPool = c.SecondPool
	}
	if c.Workers > 0 {
		sim.Workers = c.Workers
	}
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.LoadConfig()
	if err != nil {
		return err
	}
	logger := g.Logger(os.Stderr)

	simCfg := simulator.Config{
		Seeds:       cfg.Simulation.Seeds,
		StartSeed:   cfg.Simulation.StartSeed,
		FirstPool:   cfg.Simulation.FirstPool,
		SecondPool:  cfg.Simulation.SecondPool,
		Workers:     cfg.Simulation.Workers,
		TargetScore: cfg.Rules.TargetScore,
		Clock:       quartz.NewReal(),
		Logger:      logger,
	}
	c.apply(&simCfg)
	if c.Verbose {
		simCfg.OnSeed = func(r statistics.SeedResult) {
			logger.Info("Seed", "seed", r.Seed, "total", r.Total,
				"first", r.FirstBest.Score.Name(), "second", r.SecondBest.Score.Name())
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := simulator.New(simCfg).Run(ctx)
	if err != nil {
		return err
	}
	simulator.PrintSummary(os.Stdout, report)

	if c.Output != "" {
		if err := report.WriteReport(c.Output); err != nil {
			return err
		}
		logger.Info("Report written", "file", c.Output, "run", report.ID)
	}
	return nil
}
