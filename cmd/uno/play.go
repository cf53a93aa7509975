package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/unoforbots/internal/bot"
	"github.com/lox/unoforbots/internal/config"
	"github.com/lox/unoforbots/internal/display"
	"github.com/lox/unoforbots/internal/game"
	"github.com/lox/unoforbots/internal/gameid"
	"github.com/lox/unoforbots/internal/randutil"
	"github.com/lox/unoforbots/internal/session"
	"github.com/lox/unoforbots/internal/tui"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

// PlayCmd runs an interactive game
type PlayCmd struct {
	Bots          []string `help:"Bot strategies to play against, replaces the configured seats"`
	Seed          *int64   `help:"Deterministic RNG seed (optional)"`
	LogFile       string   `type:"path" default:"uno.log" help:"Debug log file, the terminal belongs to the game"`
	ShowReasoning bool     `help:"Show why bots made their moves"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if len(c.Bots) > 0 {
		cfg.Seats = botSeats(c.Bots)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	debugFile, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create debug log: %w", err)
	}
	defer func() {
		if err := debugFile.Close(); err != nil {
			log.Error("Failed to close debug file", "error", err)
		}
	}()
	logger := newLogger(debugFile, cfg).WithPrefix("main")

	seed := pickSeed(c.Seed, 0)
	logger.Info("Starting interactive game", "seed", seed, "seats", len(cfg.Seats))

	engine := game.New(append(cfg.Game.EngineOptions(),
		game.WithRNG(randutil.New(seed)),
		game.WithLogger(logger),
	)...)

	renderer := display.NewRenderer(os.Stdout, g.NoColor)
	model := tui.NewTUIModel(logger, renderer)

	seats, humanID, err := buildSeats(cfg, model, seed, logger)
	if err != nil {
		return err
	}

	gameID := gameid.Generate()
	sess := session.New(engine, seats, session.Config{
		GameID:          gameID,
		MaxTurns:        cfg.Game.MaxTurns,
		ThinkDelay:      cfg.Game.ThinkDelayDuration(),
		DecisionTimeout: cfg.Game.DecisionTimeoutDuration(),
		Logger:          logger,
	})
	sess.Bus().Subscribe(tui.NewBridge(model, engine, humanID, c.ShowReasoning))

	ctx := setupSignalHandler(logger)
	result, err := tui.Run(ctx, sess, model)
	if err != nil {
		return err
	}

	printResult(os.Stdout, result, seed)
	return nil
}

// botSeats seats the human first, then one bot per strategy named after it
func botSeats(strategies []string) []config.SeatConfig {
	seats := []config.SeatConfig{{Name: "you", Strategy: config.StrategyHuman, Human: true}}
	for i, strategy := range strategies {
		seats = append(seats, config.SeatConfig{Name: fmt.Sprintf("%s%d", strategy, i+1), Strategy: strategy})
	}
	return seats
}

// buildSeats creates an agent per configured seat. Bots get their own random
// source derived from the game seed so a seed replays the same game.
func buildSeats(cfg *config.Config, model *tui.TUIModel, seed int64, logger *log.Logger) ([]session.Seat, string, error) {
	var (
		seats   []session.Seat
		humanID string
	)
	for i, sc := range cfg.Seats {
		if sc.Strategy == config.StrategyHuman {
			humanID = sc.Name
			seats = append(seats, session.Seat{
				ID:       sc.Name,
				Agent:    tui.NewHumanAgent(model, logger),
				Strategy: config.StrategyHuman,
				Human:    true,
			})
			continue
		}

		agent, err := bot.New(sc.Strategy, randutil.New(seed+int64(i)+1), logger.With("seat", sc.Name))
		if err != nil {
			return nil, "", err
		}
		seats = append(seats, session.Seat{ID: sc.Name, Agent: agent, Strategy: sc.Strategy})
	}
	return seats, humanID, nil
}

func printResult(w io.Writer, result session.Result, seed int64) {
	fmt.Fprintln(w, titleStyle.Render(" UNO "))
	switch {
	case result.Winner != "":
		fmt.Fprintf(w, "%s won after %d turns\n", result.Winner, result.Turns)
	case result.Reason != "":
		fmt.Fprintf(w, "Game over: %s after %d turns\n", result.Reason, result.Turns)
	}
	for _, seat := range result.Seats {
		fmt.Fprintf(w, "  %-12s %-10s %d cards left\n", seat.ID, seat.Strategy, seat.CardsLeft)
	}
	fmt.Fprintf(w, "Game %s, seed %d\n", result.GameID, seed)
}
