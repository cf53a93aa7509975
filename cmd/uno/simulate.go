package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lox/unoforbots/internal/fileutil"
	"github.com/lox/unoforbots/internal/simulator"
)

// SimulateCmd runs bot-vs-bot games. Unset flags fall back to the simulation
// block of the config.
type SimulateCmd struct {
	Games    int           `short:"n" help:"Number of games"`
	Seat     []string      `short:"s" help:"Bot strategy per seat, repeatable or comma separated (defaults to the configured bot seats)"`
	Seed     *int64        `help:"RNG seed, game i uses seed+i (random if unset)"`
	Workers  int           `short:"w" help:"Concurrent games (defaults to GOMAXPROCS)"`
	Timeout  time.Duration `help:"Per game timeout"`
	MaxTurns int           `help:"Abandon games after this many turns"`
	Out      string        `short:"o" type:"path" help:"Write a JSON report to this file"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg)

	seats := c.Seat
	if len(seats) == 0 {
		seats = cfg.BotStrategies()
	}
	games := c.Games
	if games == 0 {
		games = cfg.Simulation.Games
	}
	workers := c.Workers
	if workers == 0 {
		workers = cfg.Simulation.Workers
	}
	timeout := c.Timeout
	if timeout == 0 {
		timeout = cfg.Simulation.TimeoutDuration()
	}
	maxTurns := c.MaxTurns
	if maxTurns == 0 {
		maxTurns = cfg.Game.MaxTurns
	}
	seed := pickSeed(c.Seed, cfg.Simulation.Seed)

	logger.Info("Starting simulation", "games", games, "seats", seats, "seed", seed)

	sim := simulator.New(simulator.Config{
		Games:    games,
		Seats:    seats,
		Seed:     seed,
		Workers:  workers,
		Timeout:  timeout,
		MaxTurns: maxTurns,
		Options:  cfg.Game.EngineOptions(),
		Logger:   logger,
	})

	ctx := setupSignalHandler(logger)
	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	simulator.PrintSummary(os.Stdout, stats, seats)
	fmt.Printf("Seed: %d\n", seed)

	if c.Out != "" {
		if err := fileutil.WriteJSONAtomic(c.Out, stats.Report(seed)); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.Info("Wrote report", "file", c.Out)
	}
	return nil
}
