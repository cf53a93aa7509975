// Package config loads the HCL settings shared by the uno commands.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/unoforbots/internal/bot"
	"github.com/lox/unoforbots/internal/game"
)

// StrategyHuman marks a seat played from the terminal
const StrategyHuman = "human"

// Config represents the complete configuration
type Config struct {
	LogLevel   string            `hcl:"log_level,optional"`
	Game       *GameConfig       `hcl:"game,block"`
	Seats      []SeatConfig      `hcl:"seat,block"`
	Simulation *SimulationConfig `hcl:"simulation,block"`
}

// GameConfig contains the rules options and pacing of a single game
type GameConfig struct {
	ShuffleSeats    bool   `hcl:"shuffle_seats,optional"`
	OpeningCard     bool   `hcl:"opening_card,optional"`
	HeadsUpReverse  bool   `hcl:"heads_up_reverse,optional"`
	MaxTurns        int    `hcl:"max_turns,optional"`
	ThinkDelay      string `hcl:"think_delay,optional"`
	DecisionTimeout string `hcl:"decision_timeout,optional"`
}

// SeatConfig defines one player at the table
type SeatConfig struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy,optional"`
	Human    bool   `hcl:"human,optional"`
}

// SimulationConfig holds the defaults for `uno simulate`
type SimulationConfig struct {
	Games   int    `hcl:"games,optional"`
	Seed    int64  `hcl:"seed,optional"` // 0 picks a random seed
	Workers int    `hcl:"workers,optional"`
	Timeout string `hcl:"timeout,optional"`
}

// Default returns the default configuration: one human against two bots
func Default() *Config {
	c := &Config{
		Seats: []SeatConfig{
			{Name: "you", Strategy: StrategyHuman, Human: true},
			{Name: "alice", Strategy: bot.StrategyGreedy},
			{Name: "bob", Strategy: bot.StrategyRand},
		},
	}
	c.applyDefaults()
	return c
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if len(config.Seats) == 0 {
		config.Seats = Default().Seats
	}
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.Game == nil {
		c.Game = &GameConfig{}
	}
	if c.Game.MaxTurns == 0 {
		c.Game.MaxTurns = 2000
	}
	if c.Game.ThinkDelay == "" {
		c.Game.ThinkDelay = "600ms"
	}

	for i := range c.Seats {
		if c.Seats[i].Human {
			c.Seats[i].Strategy = StrategyHuman
		}
		if c.Seats[i].Strategy == "" {
			c.Seats[i].Strategy = bot.StrategyGreedy
		}
	}

	if c.Simulation == nil {
		c.Simulation = &SimulationConfig{}
	}
	if c.Simulation.Games == 0 {
		c.Simulation.Games = 1000
	}
	if c.Simulation.Timeout == "" {
		c.Simulation.Timeout = "30s"
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}

	if c.Game.MaxTurns < 0 {
		return fmt.Errorf("game: max_turns must not be negative")
	}
	if _, err := parseDuration("game: think_delay", c.Game.ThinkDelay); err != nil {
		return err
	}
	if _, err := parseDuration("game: decision_timeout", c.Game.DecisionTimeout); err != nil {
		return err
	}

	if len(c.Seats) == 0 || len(c.Seats) > game.MaxPlayers {
		return fmt.Errorf("between 1 and %d seats must be configured, got %d", game.MaxPlayers, len(c.Seats))
	}
	names := make(map[string]bool, len(c.Seats))
	humans := 0
	for _, seat := range c.Seats {
		if names[seat.Name] {
			return fmt.Errorf("seat %s: duplicate name", seat.Name)
		}
		names[seat.Name] = true

		if seat.Strategy == StrategyHuman {
			humans++
			continue
		}
		if !validStrategy(seat.Strategy) {
			return fmt.Errorf("seat %s: invalid strategy %s", seat.Name, seat.Strategy)
		}
	}
	if humans > 1 {
		return fmt.Errorf("at most one human seat is supported, got %d", humans)
	}

	if c.Simulation.Games <= 0 {
		return fmt.Errorf("simulation: games must be positive")
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("simulation: workers must not be negative")
	}
	if _, err := parseDuration("simulation: timeout", c.Simulation.Timeout); err != nil {
		return err
	}

	return nil
}

func validStrategy(name string) bool {
	for _, s := range bot.Strategies() {
		if s == name {
			return true
		}
	}
	return false
}

func parseDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", field)
	}
	return d, nil
}

// Level returns the parsed log level, defaulting to info
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// EngineOptions returns the engine options selected by the game block
func (c *GameConfig) EngineOptions() []game.Option {
	var opts []game.Option
	if c.ShuffleSeats {
		opts = append(opts, game.WithShuffleSeats())
	}
	if c.OpeningCard {
		opts = append(opts, game.WithOpeningCard())
	}
	if c.HeadsUpReverse {
		opts = append(opts, game.WithHeadsUpReverse())
	}
	return opts
}

// ThinkDelayDuration returns the pause before each bot decision
func (c *GameConfig) ThinkDelayDuration() time.Duration {
	d, _ := parseDuration("think_delay", c.ThinkDelay)
	return d
}

// DecisionTimeoutDuration returns how long an agent may take, zero for no limit
func (c *GameConfig) DecisionTimeoutDuration() time.Duration {
	d, _ := parseDuration("decision_timeout", c.DecisionTimeout)
	return d
}

// TimeoutDuration returns the per-game simulation timeout
func (c *SimulationConfig) TimeoutDuration() time.Duration {
	d, _ := parseDuration("timeout", c.Timeout)
	return d
}

// BotStrategies returns the strategies of the bot seats in seat order
func (c *Config) BotStrategies() []string {
	var strategies []string
	for _, seat := range c.Seats {
		if seat.Strategy != StrategyHuman {
			strategies = append(strategies, seat.Strategy)
		}
	}
	return strategies
}

// HumanSeat returns the human seat, if one is configured
func (c *Config) HumanSeat() (SeatConfig, bool) {
	for _, seat := range c.Seats {
		if seat.Strategy == StrategyHuman {
			return seat, true
		}
	}
	return SeatConfig{}, false
}
