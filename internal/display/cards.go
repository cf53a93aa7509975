// Package display renders cards and game status for terminals.
package display

import (
	"fmt"
	"strings"

	"github.com/lox/unoforbots/internal/deck"
)

// ImageDir is where the card artwork lives, relative to the working directory
const ImageDir = "./assets/images/cards"

// ColorEmoji returns the circle emoji for a colour
func ColorEmoji(c deck.Color) string {
	switch c {
	case deck.Wild:
		return "⚫"
	case deck.Red:
		return "🔴"
	case deck.Green:
		return "🟢"
	case deck.Blue:
		return "🔵"
	case deck.Yellow:
		return "🟡"
	default:
		return "❔"
	}
}

// CardLabel returns a short label such as "🔴Skip" or "⚫Wild Draw Four"
func CardLabel(c deck.Card) string {
	return ColorEmoji(c.Color) + c.Face.String()
}

// CardLabels joins labels with spaces, each followed by its id so a player
// can refer to it
func CardLabels(cards []deck.Card) string {
	labels := make([]string, len(cards))
	for i, c := range cards {
		labels[i] = fmt.Sprintf("%s[%d]", CardLabel(c), c.ID)
	}
	return strings.Join(labels, " ")
}

// CardImagePath returns the artwork for a card, e.g.
// ./assets/images/cards/card-red-draw_two.png
func CardImagePath(c deck.Card) string {
	color := strings.ToLower(c.Color.String())
	face := strings.ReplaceAll(strings.ToLower(c.Face.String()), " ", "_")
	return fmt.Sprintf("%s/card-%s-%s.png", ImageDir, color, face)
}
