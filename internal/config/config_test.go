package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "uno.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, log.InfoLevel, c.Level())
	assert.Equal(t, 2000, c.Game.MaxTurns)
	assert.Equal(t, 600*time.Millisecond, c.Game.ThinkDelayDuration())
	assert.Equal(t, time.Duration(0), c.Game.DecisionTimeoutDuration())
	assert.Empty(t, c.Game.EngineOptions())
	assert.Equal(t, 1000, c.Simulation.Games)
	assert.Equal(t, 30*time.Second, c.Simulation.TimeoutDuration())

	human, ok := c.HumanSeat()
	require.True(t, ok)
	assert.Equal(t, "you", human.Name)
	assert.Equal(t, []string{"greedy", "rand"}, c.BotStrategies())
}

func TestLoadMissingFile(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"

game {
  shuffle_seats    = true
  opening_card     = true
  heads_up_reverse = true
  max_turns        = 500
  think_delay      = "0s"
  decision_timeout = "45s"
}

seat "me" {
  human = true
}

seat "greedy-1" {
  strategy = "greedy"
}

seat "lazy" {
  strategy = "forgetful"
}

seat "default" {}

simulation {
  games   = 250
  seed    = 42
  workers = 4
  timeout = "5s"
}
`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, log.DebugLevel, c.Level())
	assert.True(t, c.Game.ShuffleSeats)
	assert.Len(t, c.Game.EngineOptions(), 3)
	assert.Equal(t, 500, c.Game.MaxTurns)
	assert.Equal(t, time.Duration(0), c.Game.ThinkDelayDuration())
	assert.Equal(t, 45*time.Second, c.Game.DecisionTimeoutDuration())

	require.Len(t, c.Seats, 4)
	assert.Equal(t, SeatConfig{Name: "me", Strategy: StrategyHuman, Human: true}, c.Seats[0])
	assert.Equal(t, "greedy", c.Seats[3].Strategy, "strategy defaults to greedy")
	assert.Equal(t, []string{"greedy", "forgetful", "greedy"}, c.BotStrategies())

	assert.Equal(t, 250, c.Simulation.Games)
	assert.Equal(t, int64(42), c.Simulation.Seed)
	assert.Equal(t, 4, c.Simulation.Workers)
	assert.Equal(t, 5*time.Second, c.Simulation.TimeoutDuration())
}

func TestLoadWithoutSeatsUsesDefaultSeats(t *testing.T) {
	c, err := Load(writeConfig(t, `log_level = "warn"`))
	require.NoError(t, err)
	assert.Equal(t, Default().Seats, c.Seats)
	assert.Equal(t, log.WarnLevel, c.Level())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", `game {`, "failed to parse HCL file"},
		{"unknown attribute", `colour = "red"`, "failed to decode HCL"},
		{"log level", `log_level = "loud"`, "invalid log_level"},
		{"strategy", `seat "x" { strategy = "psychic" }`, "seat x: invalid strategy psychic"},
		{"duplicate seat", "seat \"x\" {}\nseat \"x\" {}", "seat x: duplicate name"},
		{"two humans", "seat \"a\" { human = true }\nseat \"b\" { human = true }", "at most one human seat"},
		{"think delay", `game { think_delay = "soon" }`, "game: think_delay"},
		{"negative timeout", `game { decision_timeout = "-1s" }`, "must not be negative"},
		{"max turns", `game { max_turns = -1 }`, "max_turns must not be negative"},
		{"games", `simulation { games = -5 }`, "games must be positive"},
		{"workers", `simulation { workers = -1 }`, "workers must not be negative"},
		{"sim timeout", `simulation { timeout = "forever" }`, "simulation: timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestValidateSeatCount(t *testing.T) {
	c := Default()
	c.Seats = nil
	assert.ErrorContains(t, c.Validate(), "between 1 and 15 seats")

	c = Default()
	for i := 0; i < 15; i++ {
		c.Seats = append(c.Seats, SeatConfig{Name: string(rune('a' + i)), Strategy: "rand"})
	}
	assert.ErrorContains(t, c.Validate(), "got 18")
}
