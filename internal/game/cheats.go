package game

import (
	"github.com/lox/unoforbots/internal/deck"
	"github.com/lox/unoforbots/internal/randutil"
)

// Cheat is a debug code that injects a card into a player's hand
type Cheat string

const (
	CheatGiveWildFour  Cheat = "giveWildFour"
	CheatGiveWildEight Cheat = "giveWildEight"
)

// Injected card ids are drawn from a range the standard deck never uses.
const (
	debugIDMin = 10000
	debugIDMax = 10000000
)

// Cheats lists the known cheat codes
func Cheats() []Cheat {
	return []Cheat{CheatGiveWildFour, CheatGiveWildEight}
}

// ActivateCheatCode adds a fresh wild card straight into a player's hand.
// Injected cards bypass the deck and are excluded from TotalCards.
func (e *Engine) ActivateCheatCode(playerID string, cheat Cheat) error {
	if !e.Started() {
		return ErrGameNotStarted
	}
	p, err := e.state.findPlayer(playerID)
	if err != nil {
		return err
	}

	var face deck.Face
	switch cheat {
	case CheatGiveWildFour:
		face = deck.WildDrawFour
	case CheatGiveWildEight:
		face = deck.WildDrawEight
	default:
		return ErrUnknownCheat
	}

	card := deck.NewCard(e.debugCardID(), deck.Wild, face)
	p.Hand = append(p.Hand, card)
	e.injected[card.ID] = true

	e.logger.Warn("Cheat code activated", "player", playerID, "cheat", string(cheat), "card", card.ID)
	return nil
}

func (e *Engine) debugCardID() int {
	for {
		id := randutil.IntRange(e.rng, debugIDMin, debugIDMax)
		if !e.cardIDInUse(id) {
			return id
		}
	}
}

func (e *Engine) cardIDInUse(id int) bool {
	if e.injected[id] {
		return true
	}
	if deck.IndexOf(e.state.Deck, id) >= 0 || deck.IndexOf(e.state.Discard, id) >= 0 {
		return true
	}
	for _, p := range e.state.Players {
		if deck.IndexOf(p.Hand, id) >= 0 {
			return true
		}
	}
	return false
}
