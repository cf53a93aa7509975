package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/unoforbots/internal/bot"
	"github.com/lox/unoforbots/internal/deck"
	"github.com/lox/unoforbots/internal/game"
	"github.com/lox/unoforbots/internal/gameid"
	"github.com/lox/unoforbots/internal/randutil"
	"github.com/lox/unoforbots/internal/session"
	"github.com/lox/unoforbots/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxTurns abandons games that run away, which only happens when
// every seat keeps drawing
const DefaultMaxTurns = 2000

// Config holds configuration for running simulations
type Config struct {
	Games    int
	Seats    []string // bot strategy per seat
	Seed     int64
	Workers  int           // concurrent games, defaults to GOMAXPROCS
	Timeout  time.Duration // per game, zero means no limit
	MaxTurns int
	Options  []game.Option // extra engine options for every game
	Logger   *log.Logger
}

// Simulator runs bot-vs-bot games
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.MaxTurns <= 0 {
		config.MaxTurns = DefaultMaxTurns
	}
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Simulator{config: config, logger: logger.WithPrefix("simulator")}
}

// Run plays every game and returns the aggregated statistics. Any game that
// times out or breaks card conservation fails the whole run.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Games <= 0 {
		return nil, fmt.Errorf("invalid games count: %d", s.config.Games)
	}
	if len(s.config.Seats) == 0 || len(s.config.Seats) > game.MaxPlayers {
		return nil, fmt.Errorf("need between 1 and %d seats, got %d", game.MaxPlayers, len(s.config.Seats))
	}
	for _, strategy := range s.config.Seats {
		if _, err := bot.New(strategy, randutil.New(0), nil); err != nil {
			return nil, err
		}
	}

	results := make([]statistics.GameResult, s.config.Games)
	var done atomic.Int64
	progressEvery := int64(max(s.config.Games/10, 1))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := 0; i < s.config.Games; i++ {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			result, err := s.playGameWithTimeout(ctx, i)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			results[i] = result

			if n := done.Add(1); n%progressEvery == 0 {
				s.logger.Info("Progress", "games", n, "of", s.config.Games)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Results are added in game order so the statistics do not depend on
	// worker scheduling
	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

// playGameWithTimeout runs a single game with timeout protection
func (s *Simulator) playGameWithTimeout(ctx context.Context, index int) (statistics.GameResult, error) {
	seed := s.config.Seed + int64(index)
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	result, err := s.playGame(ctx, index, seed)
	if errors.Is(err, context.DeadlineExceeded) {
		return result, fmt.Errorf("game timed out after %v (seed: %d)", s.config.Timeout, seed)
	}
	return result, err
}

// playGame simulates one game. Strategies rotate one seat per game to
// eliminate positional bias.
func (s *Simulator) playGame(ctx context.Context, index int, seed int64) (statistics.GameResult, error) {
	gameID := gameid.NewGenerator(randutil.New(seed)).Generate()
	logger := s.logger.With("game", gameID, "seed", seed)

	n := len(s.config.Seats)
	seats := make([]session.Seat, n)
	for i := range seats {
		strategy := s.config.Seats[(i+index)%n]
		agent, err := bot.New(strategy, randutil.New(seed*int64(n+1)+int64(i)+1), logger)
		if err != nil {
			return statistics.GameResult{}, err
		}
		seats[i] = session.Seat{ID: fmt.Sprintf("seat%d", i+1), Agent: agent, Strategy: strategy}
	}

	opts := append([]game.Option{}, s.config.Options...)
	opts = append(opts, game.WithRNG(randutil.New(seed)), game.WithLogger(logger))
	engine := game.New(opts...)

	sess := session.New(engine, seats, session.Config{
		GameID:   gameID,
		MaxTurns: s.config.MaxTurns,
		Logger:   logger,
	})
	played, err := sess.Play(ctx)
	if err != nil {
		return statistics.GameResult{}, err
	}

	if total := engine.TotalCards(); total != deck.StandardSize {
		return statistics.GameResult{}, fmt.Errorf("card conservation broken: %d cards in play, want %d (seed: %d)", total, deck.StandardSize, seed)
	}

	result := statistics.GameResult{
		GameID:     gameID,
		Seed:       seed,
		Winner:     played.Winner,
		WinnerSeat: -1,
		Turns:      played.Turns,
		Recycles:   played.Recycles,
		Penalties:  played.Penalties,
		Abandoned:  played.Winner == "",
	}
	for i, seat := range played.Seats {
		result.Strategies = append(result.Strategies, seat.Strategy)
		if seat.ID == played.Winner {
			result.WinnerSeat = i
			result.WinnerStrategy = seat.Strategy
		}
	}

	logger.Debug("Game finished", "winner", played.Winner, "turns", played.Turns)
	return result, nil
}
