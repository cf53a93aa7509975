package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/lox/unoforbots/internal/display"
	"github.com/lox/unoforbots/internal/game"
	"github.com/lox/unoforbots/internal/randutil"
)

// DealCmd deals a game without playing it, handy for checking a seed
type DealCmd struct {
	Players []string `short:"p" default:"alice,bob,carol" help:"Player ids in seat order"`
	Seed    *int64   `help:"Deterministic RNG seed (optional)"`
	Images  bool     `help:"Print the artwork path of every card"`
}

func (c *DealCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg)
	seed := pickSeed(c.Seed, 0)

	engine := game.New(append(cfg.Game.EngineOptions(),
		game.WithRNG(randutil.New(seed)),
		game.WithLogger(logger),
	)...)
	if err := engine.StartGame(c.Players); err != nil {
		return fmt.Errorf("failed to deal: %w", err)
	}

	return printDeal(os.Stdout, display.NewRenderer(os.Stdout, g.NoColor), engine, seed, c.Images, logger)
}

func printDeal(w io.Writer, r *display.Renderer, engine *game.Engine, seed int64, images bool, logger *log.Logger) error {
	fmt.Fprintln(w, r.Status(display.StatusOf(engine, "")))
	for _, p := range engine.Players() {
		legal, err := engine.LegalCards(p.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s: %s\n", p.ID, r.Hand(p.Hand, legal))
		if images {
			for _, card := range p.Hand {
				fmt.Fprintf(w, "    %s\n", display.CardImagePath(card))
			}
		}
	}
	fmt.Fprintf(w, "Seed: %d\n", seed)
	logger.Debug("Dealt", "players", len(engine.Players()), "deck", len(engine.DeckCards()))
	return nil
}
