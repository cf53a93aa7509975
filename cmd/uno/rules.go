package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/unoforbots/internal/deck"
	"github.com/lox/unoforbots/internal/display"
	"github.com/lox/unoforbots/internal/game"
)

// RulesCmd prints the deck composition and what each card does
type RulesCmd struct{}

var effects = []struct {
	face   deck.Face
	effect string
}{
	{deck.Zero, "no effect, one per colour"},
	{deck.One, "no effect, two per colour for 1 to 9"},
	{deck.Skip, "the next player loses their turn"},
	{deck.Reverse, "play changes direction"},
	{deck.DrawTwo, "the next player draws 2 and loses their turn"},
	{deck.WildCard, "matches anything, the player picks the colour"},
	{deck.WildDrawFour, "as Wild, the next player draws 4; only legal without a card of the current colour"},
	{deck.WildDrawEight, "cheat code only: the next player draws 8 and loses their turn"},
}

func (c *RulesCmd) Run(g *Globals) error {
	printRules(os.Stdout, display.NewRenderer(os.Stdout, g.NoColor))
	return nil
}

func printRules(w io.Writer, r *display.Renderer) {
	counts := make(map[deck.Face]int)
	for _, card := range deck.Standard() {
		counts[card.Face]++
	}

	fmt.Fprintln(w, titleStyle.Render(" UNO house rules "))
	fmt.Fprintf(w, "%d cards, %d dealt to each of up to %d players.\n\n", deck.StandardSize, game.HandSize, game.MaxPlayers)

	for _, e := range effects {
		color := deck.Red
		if e.face.IsWild() {
			color = deck.Wild
		}
		face := r.Card(deck.NewCard(0, color, e.face))
		fmt.Fprintf(w, "  %-3d %s  %s\n", counts[e.face], face, e.effect)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "A card is playable when it matches the top card's colour or face, or is wild.")
	fmt.Fprintf(w, "Call UNO when you hold two cards and play one. Forget and you draw %d.\n", game.UnoPenalty)
	fmt.Fprintln(w, "An empty draw pile is refilled from the discard pile, keeping the top card.")
	fmt.Fprintf(w, "Cheat codes: %v\n", game.Cheats())
}
