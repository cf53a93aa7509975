package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/unoforbots/internal/deck"
	"github.com/lox/unoforbots/internal/randutil"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// newTestEngine starts a seeded game with the given players in seat order.
func newTestEngine(t *testing.T, players []string, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{WithRNG(randutil.New(42)), WithLogger(quietLogger())}, opts...)
	e := New(opts...)
	require.NoError(t, e.StartGame(players))
	return e
}

func card(id int, color deck.Color, face deck.Face) deck.Card {
	return deck.NewCard(id, color, face)
}

func setHand(t *testing.T, e *Engine, playerID string, cards ...deck.Card) {
	t.Helper()
	p, err := e.state.findPlayer(playerID)
	require.NoError(t, err)
	p.Hand = append([]deck.Card{}, cards...)
}

func setDiscard(e *Engine, cards ...deck.Card) {
	e.state.Discard = append([]deck.Card{}, cards...)
}

func setDeck(e *Engine, cards ...deck.Card) {
	e.state.Deck = append([]deck.Card{}, cards...)
}

func handSize(t *testing.T, e *Engine, playerID string) int {
	t.Helper()
	hand, err := e.PlayerCards(playerID)
	require.NoError(t, err)
	return len(hand)
}

func currentID(t *testing.T, e *Engine) string {
	t.Helper()
	p, err := e.CurrentPlayer()
	require.NoError(t, err)
	return p.ID
}

// fillerDeck returns n blue sevens with ids starting at base, enough to cover
// any penalty draws in a scenario.
func fillerDeck(base, n int) []deck.Card {
	cards := make([]deck.Card, n)
	for i := range cards {
		cards[i] = card(base+i, deck.Blue, deck.Seven)
	}
	return cards
}
