package deck

import (
	"fmt"
	"strings"
)

// Color represents a card colour. Wild is the colour of every wild card until
// a colour has been chosen for it.
type Color int

const (
	Wild Color = iota
	Blue
	Green
	Red
	Yellow
)

// OrdinaryColors are the colours a wild card can be changed to.
var OrdinaryColors = []Color{Red, Green, Blue, Yellow}

// String returns the display name of a colour
func (c Color) String() string {
	switch c {
	case Wild:
		return "Wild"
	case Blue:
		return "Blue"
	case Green:
		return "Green"
	case Red:
		return "Red"
	case Yellow:
		return "Yellow"
	default:
		return "?"
	}
}

// IsOrdinary reports whether the colour is one of the four playable colours.
func (c Color) IsOrdinary() bool {
	return c >= Blue && c <= Yellow
}

// ParseColor parses a colour name, case insensitive.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wild":
		return Wild, nil
	case "blue", "b":
		return Blue, nil
	case "green", "g":
		return Green, nil
	case "red", "r":
		return Red, nil
	case "yellow", "y":
		return Yellow, nil
	}
	return Wild, fmt.Errorf("invalid color: %q", s)
}

// Face represents what is printed on a card.
type Face int

const (
	Zero Face = iota
	One
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Skip
	Reverse
	DrawTwo
	WildCard
	WildDrawFour
	WildDrawEight
)

// String returns the display name of a face
func (f Face) String() string {
	switch {
	case f >= Zero && f <= Nine:
		return fmt.Sprintf("%d", int(f))
	case f == Skip:
		return "Skip"
	case f == Reverse:
		return "Reverse"
	case f == DrawTwo:
		return "Draw Two"
	case f == WildCard:
		return "Wild"
	case f == WildDrawFour:
		return "Wild Draw Four"
	case f == WildDrawEight:
		return "Wild Draw Eight"
	default:
		return "?"
	}
}

// IsNumber reports whether the face is 0-9.
func (f Face) IsNumber() bool {
	return f >= Zero && f <= Nine
}

// IsAction reports whether the face is Skip, Reverse or Draw Two.
func (f Face) IsAction() bool {
	return f == Skip || f == Reverse || f == DrawTwo
}

// IsWild reports whether the face belongs to the wild family.
func (f Face) IsWild() bool {
	return strings.HasPrefix(f.String(), "Wild")
}

// ParseFace parses a face name such as "7", "skip", "draw two" or "wild draw four".
func ParseFace(s string) (Face, error) {
	norm := strings.Join(strings.Fields(strings.ToLower(strings.NewReplacer("_", " ", "-", " ").Replace(s))), " ")
	if len(norm) == 1 && norm[0] >= '0' && norm[0] <= '9' {
		return Face(norm[0] - '0'), nil
	}
	for f := Skip; f <= WildDrawEight; f++ {
		if strings.ToLower(f.String()) == norm {
			return f, nil
		}
	}
	return Zero, fmt.Errorf("invalid face: %q", s)
}

// Card is a single card. ID is unique within a game; Color is mutable only
// for wild cards, when a colour is chosen after play.
type Card struct {
	ID    int
	Color Color
	Face  Face
}

// NewCard creates a card
func NewCard(id int, color Color, face Face) Card {
	return Card{ID: id, Color: color, Face: face}
}

// String returns e.g. "Red Skip" or "Wild Draw Four"
func (c Card) String() string {
	if c.Color == Wild {
		return c.Face.String()
	}
	return c.Color.String() + " " + c.Face.String()
}

// IsWild reports whether the card is from the wild family, regardless of any
// colour chosen for it.
func (c Card) IsWild() bool {
	return c.Face.IsWild()
}
