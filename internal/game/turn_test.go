package game

import (
	"testing"

	"github.com/lox/unoforbots/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextPlayerIndex(t *testing.T) {
	tests := []struct {
		name     string
		players  int
		current  int
		reversed bool
		want     int
	}{
		{"forward", 4, 1, false, 2},
		{"forward wraps", 4, 3, false, 0},
		{"reversed", 4, 2, true, 1},
		{"reversed wraps", 4, 0, true, 3},
		{"single player forward", 1, 0, false, 0},
		{"single player reversed", 1, 0, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := []string{"a", "b", "c", "d"}[:tt.players]
			e := newTestEngine(t, ids)
			e.state.CurrentPlayerIndex = tt.current
			e.state.IsReversed = tt.reversed

			got, err := e.NextPlayerIndex()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			next, err := e.NextPlayer()
			require.NoError(t, err)
			assert.Equal(t, ids[tt.want], next.ID)
		})
	}
}

func TestNextPlayerWithoutPlayers(t *testing.T) {
	e := New()
	_, err := e.NextPlayerIndex()
	assert.ErrorIs(t, err, ErrNoPlayers)
	assert.ErrorIs(t, e.NextTurn(), ErrInvalidState)
}

func TestNextTurnResetsFlags(t *testing.T) {
	e := newTestEngine(t, []string{"alice", "bob", "carol"})
	setHand(t, e, "alice", card(1, deck.Red, deck.One), card(2, deck.Red, deck.Two))
	require.NoError(t, e.SayUno("alice"))
	e.state.Players[0].HasPlayedCard = true

	require.NoError(t, e.NextTurn())

	alice := e.Players()[0]
	assert.False(t, alice.HasPlayedCard)
	assert.False(t, alice.HasSaidUno)
	assert.Equal(t, 1, e.CurrentPlayerIndex())
}

func TestNextTurnAppliesUnoPenaltyOnlyToLeavingPlayer(t *testing.T) {
	e := newTestEngine(t, []string{"alice", "bob"})
	setDeck(e, fillerDeck(1000, 10)...)
	setHand(t, e, "alice", card(1, deck.Red, deck.One))
	setHand(t, e, "bob", card(2, deck.Red, deck.Two))

	require.NoError(t, e.NextTurn())

	assert.Equal(t, 1+UnoPenalty, handSize(t, e, "alice"))
	assert.Equal(t, 1, handSize(t, e, "bob"), "next player is not checked")
	assert.Equal(t, 1, e.Counters().UnoPenalties)
	assert.Equal(t, []Penalty{{PlayerID: "alice", Drawn: UnoPenalty}}, e.Penalties())
}

func TestSkippedPlayerOnOneCardIsPenalised(t *testing.T) {
	e := newTestEngine(t, []string{"alice", "bob", "carol"})
	setDeck(e, fillerDeck(1000, 10)...)
	setDiscard(e, card(1, deck.Red, deck.Five))
	setHand(t, e, "alice", card(2, deck.Red, deck.Skip), card(3, deck.Blue, deck.Nine), card(4, deck.Green, deck.Nine))
	setHand(t, e, "bob", card(5, deck.Yellow, deck.Two))

	require.NoError(t, e.PlayCard("alice", 2))

	assert.Equal(t, "carol", currentID(t, e))
	assert.Equal(t, 2, handSize(t, e, "alice"))
	assert.Equal(t, 1+UnoPenalty, handSize(t, e, "bob"))
	assert.Equal(t, []Penalty{{PlayerID: "bob", Drawn: UnoPenalty}}, e.Penalties())
}

func TestPenaltiesResetOnNewGame(t *testing.T) {
	e := newTestEngine(t, []string{"alice", "bob"})
	setDeck(e, fillerDeck(1000, 10)...)
	setHand(t, e, "alice", card(1, deck.Red, deck.One))
	require.NoError(t, e.NextTurn())
	require.Len(t, e.Penalties(), 1)

	require.NoError(t, e.StartGame([]string{"alice", "bob"}))
	assert.Empty(t, e.Penalties())
}
