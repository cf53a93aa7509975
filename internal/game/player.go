package game

import (
	"fmt"

	"github.com/lox/unoforbots/internal/deck"
)

// Player is one seat in the game
type Player struct {
	ID            string
	Hand          []deck.Card
	HasPlayedCard bool // reset every turn
	HasSaidUno    bool // reset every turn
}

func newPlayer(id string) Player {
	return Player{ID: id, Hand: []deck.Card{}}
}

// Clone returns a copy that shares no memory with p
func (p Player) Clone() Player {
	p.Hand = deck.Clone(p.Hand)
	return p
}

// CardCount returns the number of cards in hand
func (p Player) CardCount() int {
	return len(p.Hand)
}

// String returns a short summary of the player
func (p Player) String() string {
	return fmt.Sprintf("Player(%s, cards=%d, played=%t, uno=%t)", p.ID, len(p.Hand), p.HasPlayedCard, p.HasSaidUno)
}

// GameState is the aggregate the engine mutates. The deck and discard are
// stacks whose last element is the top.
type GameState struct {
	Players            []Player
	CurrentPlayerIndex int
	Deck               []deck.Card
	Discard            []deck.Card
	IsReversed         bool
}

// Clone returns a deep copy of the state
func (s GameState) Clone() GameState {
	players := make([]Player, len(s.Players))
	for i, p := range s.Players {
		players[i] = p.Clone()
	}
	return GameState{
		Players:            players,
		CurrentPlayerIndex: s.CurrentPlayerIndex,
		Deck:               deck.Clone(s.Deck),
		Discard:            deck.Clone(s.Discard),
		IsReversed:         s.IsReversed,
	}
}

// String returns a one line summary
func (s GameState) String() string {
	return fmt.Sprintf("GameState(current=%d, players=%d, deck=%d, discard=%d, reversed=%t)",
		s.CurrentPlayerIndex, len(s.Players), len(s.Deck), len(s.Discard), s.IsReversed)
}

func (s *GameState) findPlayer(id string) (*Player, error) {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return &s.Players[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
}

func (s *GameState) topCard() (deck.Card, bool) {
	if len(s.Discard) == 0 {
		return deck.Card{}, false
	}
	return s.Discard[len(s.Discard)-1], true
}
