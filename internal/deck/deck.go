package deck

import "github.com/lox/unoforbots/internal/randutil"

const (
	// StandardSize is the number of cards in a standard deck
	StandardSize = 108

	// copiesPerColor of every face except zero
	copiesPerColor = 2
	wildCopies     = 4
)

// Standard builds the 108-card deck in a fixed order with sequential ids:
// per colour one 0, two each of 1-9, Skip, Reverse and Draw Two, then four
// Wild and four Wild Draw Four. Wild Draw Eight is not a standard card.
func Standard() []Card {
	cards := make([]Card, 0, StandardSize)
	add := func(color Color, face Face) {
		cards = append(cards, NewCard(len(cards), color, face))
	}

	for _, color := range []Color{Blue, Green, Red, Yellow} {
		for face := Zero; face <= DrawTwo; face++ {
			add(color, face)
			if face != Zero {
				add(color, face)
			}
		}
	}

	for _, face := range []Face{WildCard, WildDrawFour} {
		for i := 0; i < wildCopies; i++ {
			add(Wild, face)
		}
	}

	return cards
}

// Shuffle randomizes the order of cards in place with Fisher-Yates: for m
// from len-1 down to 1, swap m with a uniform index in [0, m].
func Shuffle(cards []Card, rng randutil.Source) {
	ShuffleSlice(cards, rng)
}

// ShuffleSlice is Shuffle for any element type; the engine also uses it for
// seat order.
func ShuffleSlice[T any](items []T, rng randutil.Source) {
	for m := len(items) - 1; m > 0; m-- {
		i := rng.IntN(m + 1)
		items[m], items[i] = items[i], items[m]
	}
}

// Clone returns a copy of a pile so callers cannot alias engine state.
func Clone(cards []Card) []Card {
	if cards == nil {
		return []Card{}
	}
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}

// IndexOf returns the index of the card with the given id, or -1.
func IndexOf(cards []Card, id int) int {
	for i, c := range cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// ColorCounts counts cards per colour. Wild cards are counted under Wild.
func ColorCounts(cards []Card) map[Color]int {
	counts := make(map[Color]int, 5)
	for _, c := range cards {
		counts[c.Color]++
	}
	return counts
}

// HasColor reports whether any card other than exclude has the given colour.
func HasColor(cards []Card, color Color, exclude int) bool {
	for _, c := range cards {
		if c.ID != exclude && c.Color == color {
			return true
		}
	}
	return false
}
