package game

import "github.com/lox/unoforbots/internal/deck"

// CanPlayCard reports whether the player may put card on the discard pile.
//
// Any card may open an empty pile. Otherwise the card must match the top
// card's colour or face, or be wild. A Wild Draw Four that matches neither
// is only legal while the player holds no other card of the top card's
// colour. Wild Draw Eight has no such restriction.
func (e *Engine) CanPlayCard(card deck.Card, playerID string) (bool, error) {
	p, err := e.state.findPlayer(playerID)
	if err != nil {
		return false, err
	}
	return e.canPlay(card, p.Hand), nil
}

func (e *Engine) canPlay(card deck.Card, hand []deck.Card) bool {
	top, ok := e.state.topCard()
	if !ok {
		return true
	}

	matches := card.Color == top.Color || card.Face == top.Face
	if card.Face == deck.WildDrawFour && !matches {
		return !deck.HasColor(hand, top.Color, card.ID)
	}
	return matches || card.Color == deck.Wild
}

// LegalCards returns the cards in the player's hand that CanPlayCard accepts
func (e *Engine) LegalCards(playerID string) ([]deck.Card, error) {
	p, err := e.state.findPlayer(playerID)
	if err != nil {
		return nil, err
	}
	legal := []deck.Card{}
	for _, c := range p.Hand {
		if e.canPlay(c, p.Hand) {
			legal = append(legal, c)
		}
	}
	return legal, nil
}

// checkTurn validates that the player exists, holds the turn and has not
// already acted this turn.
func (e *Engine) checkTurn(playerID string) (*Player, error) {
	p, err := e.state.findPlayer(playerID)
	if err != nil {
		return nil, err
	}
	if e.state.Players[e.state.CurrentPlayerIndex].ID != playerID {
		return nil, ErrNotYourTurn
	}
	if p.HasPlayedCard {
		return nil, ErrAlreadyPlayed
	}
	return p, nil
}

// PlayCard plays a card from the current player's hand and applies its
// effect. The card is validated before it leaves the hand, so a rejected
// play changes nothing.
//
// After the effect the turn always advances once; Skip, Draw Two and Wild
// Draw Eight advance it a second time, skipping the next player.
func (e *Engine) PlayCard(playerID string, cardID int) error {
	p, err := e.checkTurn(playerID)
	if err != nil {
		return err
	}

	idx := deck.IndexOf(p.Hand, cardID)
	if idx < 0 {
		return ErrCardNotFound
	}
	card := p.Hand[idx]
	if !e.canPlay(card, p.Hand) {
		return ErrIllegalCard
	}

	p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
	e.state.Discard = append(e.state.Discard, card)
	p.HasPlayedCard = true

	e.logger.Debug("Card played", "player", playerID, "card", card, "remaining", len(p.Hand))

	if err := e.applyEffect(card); err != nil {
		return err
	}
	return e.NextTurn()
}

func (e *Engine) applyEffect(card deck.Card) error {
	switch card.Face {
	case deck.WildDrawFour:
		return e.penalizeNext(4, false)
	case deck.WildDrawEight:
		return e.penalizeNext(8, true)
	case deck.DrawTwo:
		return e.penalizeNext(2, true)
	case deck.Reverse:
		e.state.IsReversed = !e.state.IsReversed
		if e.headsUpReverse && len(e.state.Players) == 2 {
			return e.NextTurn()
		}
	case deck.Skip:
		return e.NextTurn()
	}
	return nil
}

func (e *Engine) penalizeNext(n int, skip bool) error {
	next, err := e.nextPlayer()
	if err != nil {
		return err
	}
	drawn := e.drawCards(next, n)
	e.logger.Debug("Draw penalty", "player", next.ID, "requested", n, "drawn", drawn)
	if skip {
		return e.NextTurn()
	}
	return nil
}

// ChangeWildCardColor fixes the colour of a wild card that was just played.
// It only applies to the top of the discard pile and only while that card
// is still uncoloured.
func (e *Engine) ChangeWildCardColor(cardID int, color deck.Color) error {
	if len(e.state.Discard) == 0 {
		return ErrNoDiscard
	}
	top := &e.state.Discard[len(e.state.Discard)-1]
	if top.ID != cardID {
		return ErrWrongCard
	}
	if top.Color != deck.Wild {
		return ErrNotWild
	}
	if !color.IsOrdinary() {
		return ErrInvalidColor
	}
	top.Color = color
	e.logger.Debug("Wild color chosen", "card", cardID, "color", color)
	return nil
}

// DrawCard draws a single card for the current player instead of playing
// and ends their turn.
func (e *Engine) DrawCard(playerID string) error {
	p, err := e.checkTurn(playerID)
	if err != nil {
		return err
	}
	drawn := e.drawCards(p, 1)
	p.HasPlayedCard = true
	e.logger.Debug("Card drawn", "player", playerID, "drawn", drawn)
	return e.NextTurn()
}

// SayUno records a player's Uno declaration. It must be made while holding
// exactly two cards, and again every time the player gets back to two.
func (e *Engine) SayUno(playerID string) error {
	p, err := e.state.findPlayer(playerID)
	if err != nil {
		return err
	}
	if p.HasSaidUno {
		return ErrAlreadyDeclared
	}
	if len(p.Hand) != 2 {
		return ErrWrongHandSize
	}
	p.HasSaidUno = true
	return nil
}
