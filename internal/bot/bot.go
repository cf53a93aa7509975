// Package bot contains the computer players.
package bot

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/unoforbots/internal/game"
	"github.com/lox/unoforbots/internal/randutil"
)

// Strategy names accepted by New
const (
	StrategyRand      = "rand"
	StrategyGreedy    = "greedy"
	StrategyForgetful = "forgetful"
)

// Strategies lists the available bot strategies
func Strategies() []string {
	return []string{StrategyRand, StrategyGreedy, StrategyForgetful}
}

// New creates a bot for the named strategy
func New(strategy string, rng randutil.Source, logger *log.Logger) (game.Agent, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.WithPrefix("bot")

	switch strategy {
	case StrategyRand:
		return NewRandBot(rng, logger), nil
	case StrategyGreedy:
		return NewGreedyBot(logger), nil
	case StrategyForgetful:
		return NewForgetfulBot(logger), nil
	default:
		return nil, fmt.Errorf("unknown bot strategy %q (want one of %v)", strategy, Strategies())
	}
}
