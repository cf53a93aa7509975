package game

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lox/unoforbots/internal/deck"
	"github.com/lox/unoforbots/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngineIsEmpty(t *testing.T) {
	e := New()
	assert.False(t, e.Started())
	assert.Empty(t, e.Players())
	assert.Empty(t, e.DeckCards())
	assert.Empty(t, e.DiscardCards())
	assert.Equal(t, 0, e.TotalCards())

	_, err := e.CurrentPlayer()
	assert.ErrorIs(t, err, ErrNoPlayers)
}

func TestStartGameDeals(t *testing.T) {
	for _, n := range []int{1, 2, 4, MaxPlayers} {
		t.Run(fmt.Sprintf("%d players", n), func(t *testing.T) {
			ids := make([]string, n)
			for i := range ids {
				ids[i] = fmt.Sprintf("p%d", i)
			}
			e := newTestEngine(t, ids)

			assert.True(t, e.Started())
			assert.Equal(t, deck.StandardSize, e.TotalCards())
			assert.Len(t, e.DeckCards(), deck.StandardSize-n*HandSize)
			assert.Empty(t, e.DiscardCards())
			assert.Equal(t, 0, e.CurrentPlayerIndex())
			assert.False(t, e.IsReversed())

			for i, p := range e.Players() {
				assert.Equal(t, ids[i], p.ID, "seat order follows input")
				assert.Len(t, p.Hand, HandSize)
				assert.False(t, p.HasPlayedCard)
				assert.False(t, p.HasSaidUno)
			}
		})
	}
}

func TestStartGameCardIDsUnique(t *testing.T) {
	e := newTestEngine(t, []string{"alice", "bob", "carol"})

	seen := map[int]bool{}
	all := e.DeckCards()
	for _, p := range e.Players() {
		all = append(all, p.Hand...)
	}
	for _, c := range all {
		assert.False(t, seen[c.ID], "duplicate card id %d", c.ID)
		seen[c.ID] = true
	}
	assert.Len(t, seen, deck.StandardSize)
}

func TestStartGameRejectsBadSeating(t *testing.T) {
	tests := []struct {
		name    string
		players []string
		want    error
	}{
		{"no players", nil, ErrNoPlayers},
		{"too many players", make([]string, MaxPlayers+1), ErrTooManyPlayers},
		{"duplicate ids", []string{"alice", "bob", "alice"}, ErrDuplicatePlayer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			err := e.StartGame(tt.players)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrInvalidState)
			assert.False(t, IsRuleViolation(err))
			assert.False(t, e.Started())
		})
	}
}

func TestMaxPlayers(t *testing.T) {
	assert.Equal(t, 15, MaxPlayers)
}

func TestStartGameIsDeterministic(t *testing.T) {
	a := newTestEngine(t, []string{"alice", "bob"})
	b := newTestEngine(t, []string{"alice", "bob"})
	assert.Equal(t, a.State(), b.State())

	c := New(WithRNG(randutil.New(7)))
	require.NoError(t, c.StartGame([]string{"alice", "bob"}))
	assert.NotEqual(t, a.DeckCards(), c.DeckCards())
}

func TestStartGameResetsPreviousGame(t *testing.T) {
	e := newTestEngine(t, []string{"alice", "bob"})
	require.NoError(t, e.DrawCard("alice"))
	require.NoError(t, e.ActivateCheatCode("bob", CheatGiveWildFour))

	require.NoError(t, e.StartGame([]string{"carol", "dave", "erin"}))
	assert.Len(t, e.Players(), 3)
	assert.Equal(t, 0, e.CurrentPlayerIndex())
	assert.Empty(t, e.InjectedCards())
	assert.Equal(t, Counters{}, e.Counters())
	assert.Equal(t, deck.StandardSize, e.TotalCards())
}

func TestWithShuffleSeats(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "f"}
	e := newTestEngine(t, ids, WithShuffleSeats())

	var seated []string
	for _, p := range e.Players() {
		seated = append(seated, p.ID)
	}
	assert.ElementsMatch(t, ids, seated)

	again := newTestEngine(t, ids, WithShuffleSeats())
	var seatedAgain []string
	for _, p := range again.Players() {
		seatedAgain = append(seatedAgain, p.ID)
	}
	assert.Equal(t, seated, seatedAgain, "same seed seats the same way")
}

func TestWithOpeningCard(t *testing.T) {
	e := newTestEngine(t, []string{"alice", "bob"}, WithOpeningCard())

	discard := e.DiscardCards()
	require.Len(t, discard, 1)
	assert.False(t, discard[0].IsWild())
	assert.Len(t, e.DeckCards(), deck.StandardSize-2*HandSize-1)
	assert.Equal(t, deck.StandardSize, e.TotalCards())
	assert.Equal(t, 0, e.CurrentPlayerIndex(), "opening card effect is not applied")
}

func TestQueriesReturnCopies(t *testing.T) {
	e := newTestEngine(t, []string{"alice", "bob"})
	setDiscard(e, card(500, deck.Red, deck.Five))

	hand, err := e.PlayerCards("alice")
	require.NoError(t, err)
	hand[0] = card(999, deck.Wild, deck.WildDrawEight)
	again, _ := e.PlayerCards("alice")
	assert.NotEqual(t, 999, again[0].ID)

	pile := e.DeckCards()
	pile[0].ID = 999
	assert.NotEqual(t, 999, e.DeckCards()[0].ID)

	discard := e.DiscardCards()
	discard[0].Color = deck.Blue
	top, ok := e.TopCard()
	require.True(t, ok)
	assert.Equal(t, deck.Red, top.Color)

	state := e.State()
	state.Players[0].Hand = nil
	state.CurrentPlayerIndex = 1
	assert.Len(t, e.Players()[0].Hand, HandSize)
	assert.Equal(t, 0, e.CurrentPlayerIndex())

	players := e.Players()
	players[1].HasSaidUno = true
	assert.False(t, e.Players()[1].HasSaidUno)
}

func TestUnknownPlayerIsInvalidState(t *testing.T) {
	e := newTestEngine(t, []string{"alice", "bob"})

	checks := map[string]error{}
	_, checks["PlayerCards"] = e.PlayerCards("mallory")
	_, checks["IsWinner"] = e.IsWinner("mallory")
	_, checks["CanPlayCard"] = e.CanPlayCard(card(1, deck.Red, deck.One), "mallory")
	_, checks["LegalCards"] = e.LegalCards("mallory")
	_, checks["ViewFor"] = e.ViewFor("mallory")
	checks["PlayCard"] = e.PlayCard("mallory", 1)
	checks["DrawCard"] = e.DrawCard("mallory")
	checks["SayUno"] = e.SayUno("mallory")
	checks["ActivateCheatCode"] = e.ActivateCheatCode("mallory", CheatGiveWildFour)

	for name, err := range checks {
		assert.ErrorIs(t, err, ErrPlayerNotFound, name)
		assert.ErrorIs(t, err, ErrInvalidState, name)
		assert.False(t, IsRuleViolation(err), name)
		assert.Contains(t, err.Error(), "mallory", name)
	}
}

func TestWinner(t *testing.T) {
	e := newTestEngine(t, []string{"alice", "bob"})
	_, ok := e.Winner()
	assert.False(t, ok)

	setHand(t, e, "bob")
	won, err := e.IsWinner("bob")
	require.NoError(t, err)
	assert.True(t, won)

	id, ok := e.Winner()
	assert.True(t, ok)
	assert.Equal(t, "bob", id)
}

func TestDrawRecyclesDiscardPile(t *testing.T) {
	e := newTestEngine(t, []string{"alice", "bob"})

	coloredWild := card(200, deck.Red, deck.WildCard)
	coloredWD4 := card(201, deck.Green, deck.WildDrawFour)
	top := card(202, deck.Blue, deck.Nine)
	setDeck(e)
	setDiscard(e, card(203, deck.Yellow, deck.Two), coloredWild, coloredWD4, top)
	before := handSize(t, e, "alice")

	require.NoError(t, e.DrawCard("alice"))

	assert.Equal(t, before+1, handSize(t, e, "alice"))
	assert.Equal(t, []deck.Card{top}, e.DiscardCards(), "top card stays in place")
	assert.Equal(t, 1, e.Counters().Recycles)

	recycled := append(e.DeckCards(), lastCard(t, e, "alice"))
	require.Len(t, recycled, 3)
	for _, c := range recycled {
		if c.IsWild() {
			assert.Equal(t, deck.Wild, c.Color, "wild colour reset for %s", c)
		}
	}
}

func lastCard(t *testing.T, e *Engine, playerID string) deck.Card {
	t.Helper()
	hand, err := e.PlayerCards(playerID)
	require.NoError(t, err)
	require.NotEmpty(t, hand)
	return hand[len(hand)-1]
}

func TestDrawWithBothPilesExhausted(t *testing.T) {
	e := newTestEngine(t, []string{"alice", "bob"})
	setDeck(e)
	setDiscard(e, card(300, deck.Red, deck.Three))
	before := handSize(t, e, "alice")

	require.NoError(t, e.DrawCard("alice"))

	assert.Equal(t, before, handSize(t, e, "alice"))
	assert.Equal(t, "bob", currentID(t, e), "turn still ends")
	assert.Equal(t, 1, e.Counters().ShortDraws)
	assert.Equal(t, 0, e.Counters().Recycles)
}

// TestConservationOverRandomGames plays whole games with the first legal
// card and checks that no standard card is ever created or lost.
func TestConservationOverRandomGames(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			rng := randutil.New(seed)
			e := New(WithRNG(rng), WithLogger(quietLogger()))
			require.NoError(t, e.StartGame([]string{"a", "b", "c", "d"}))

			for turn := 0; turn < 2000; turn++ {
				if _, won := e.Winner(); won {
					break
				}
				p, err := e.CurrentPlayer()
				require.NoError(t, err)

				if len(p.Hand) == 2 && rng.IntN(2) == 0 {
					require.NoError(t, e.SayUno(p.ID))
				}

				legal, err := e.LegalCards(p.ID)
				require.NoError(t, err)
				if len(legal) == 0 {
					require.NoError(t, e.DrawCard(p.ID))
				} else {
					c := legal[rng.IntN(len(legal))]
					require.NoError(t, e.PlayCard(p.ID, c.ID))
					if c.IsWild() {
						color := deck.OrdinaryColors[rng.IntN(len(deck.OrdinaryColors))]
						err := e.ChangeWildCardColor(c.ID, color)
						if !errors.Is(err, ErrWrongCard) {
							require.NoError(t, err)
						}
					}
				}
				require.Equal(t, deck.StandardSize, e.TotalCards(), "turn %d", turn)
			}
		})
	}
}
