package display

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lox/unoforbots/internal/deck"
	"github.com/lox/unoforbots/internal/game"
)

// PlayerLine is one row of the player list
type PlayerLine struct {
	ID      string
	Cards   int
	Current bool
}

// Status is a snapshot of the public table state
type Status struct {
	Deck     int
	Discard  int
	Players  []PlayerLine // in play order, already reversed when play runs backwards
	Reversed bool
	TopCard  deck.Card
	HasTop   bool
	PlacedBy string // who put the top card down, empty if nobody yet
}

// StatusOf snapshots an engine. placedBy is tracked by the caller because the
// engine does not remember who played last.
func StatusOf(engine *game.Engine, placedBy string) Status {
	return StatusFromState(engine.State(), placedBy)
}

// StatusFromState builds a status from a state snapshot
func StatusFromState(state game.GameState, placedBy string) Status {
	s := Status{
		Deck:     len(state.Deck),
		Discard:  len(state.Discard),
		Reversed: state.IsReversed,
		PlacedBy: placedBy,
	}
	if n := len(state.Discard); n > 0 {
		s.TopCard, s.HasTop = state.Discard[n-1], true
	}

	for i, p := range state.Players {
		s.Players = append(s.Players, PlayerLine{ID: p.ID, Cards: len(p.Hand), Current: i == state.CurrentPlayerIndex})
	}
	if s.Reversed {
		slices.Reverse(s.Players)
	}
	return s
}

// TopCardLabel returns the label of the top card or "None"
func (s Status) TopCardLabel() string {
	if !s.HasTop {
		return "None"
	}
	return CardLabel(s.TopCard)
}

// PlacedByLabel returns who placed the top card or "None"
func (s Status) PlacedByLabel() string {
	if s.PlacedBy == "" {
		return "None"
	}
	return s.PlacedBy
}

// String renders the status as plain text
func (s Status) String() string {
	var b strings.Builder
	b.WriteString("UNO Game Status\n")
	fmt.Fprintf(&b, "Deck: %d  Discard: %d\n", s.Deck, s.Discard)
	b.WriteString("Players:\n")
	for _, p := range s.Players {
		b.WriteString(p.String())
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "Top card: %s  Placed by: %s", s.TopCardLabel(), s.PlacedByLabel())
	return b.String()
}

// String renders "> alice (3 cards)" for the current player and an indented
// line otherwise
func (p PlayerLine) String() string {
	prefix := "     "
	if p.Current {
		prefix = "> "
	}
	noun := "cards"
	if p.Cards == 1 {
		noun = "card"
	}
	return fmt.Sprintf("%s%s (%d %s)", prefix, p.ID, p.Cards, noun)
}
