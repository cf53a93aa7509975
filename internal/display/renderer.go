package display

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/unoforbots/internal/deck"
	"github.com/muesli/termenv"
)

var cardColors = map[deck.Color]lipgloss.Color{
	deck.Wild:   lipgloss.Color("#A0A0A0"),
	deck.Red:    lipgloss.Color("#FF6B6B"),
	deck.Green:  lipgloss.Color("#96CEB4"),
	deck.Blue:   lipgloss.Color("#4D96FF"),
	deck.Yellow: lipgloss.Color("#FFD93D"),
}

// Renderer styles cards and status panels for one output
type Renderer struct {
	r *lipgloss.Renderer

	title    lipgloss.Style
	label    lipgloss.Style
	current  lipgloss.Style
	dim      lipgloss.Style
	panel    lipgloss.Style
	cards    map[deck.Color]lipgloss.Style
	disabled lipgloss.Style
}

// NewRenderer creates a renderer for w. With plain set, or when w is not a
// colour terminal, output carries no escape sequences.
func NewRenderer(w io.Writer, plain bool) *Renderer {
	r := lipgloss.NewRenderer(w)
	if plain {
		r.SetColorProfile(termenv.Ascii)
	}

	rr := &Renderer{
		r:        r,
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4")).Padding(0, 1),
		label:    r.NewStyle().Foreground(lipgloss.Color("#626262")),
		current:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD700")),
		dim:      r.NewStyle().Foreground(lipgloss.Color("#626262")),
		panel:    r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#626262")).Padding(0, 1),
		disabled: r.NewStyle().Faint(true),
		cards:    make(map[deck.Color]lipgloss.Style, len(cardColors)),
	}
	for c, fg := range cardColors {
		rr.cards[c] = r.NewStyle().Bold(true).Foreground(fg)
	}
	return rr
}

// Plain reports whether the renderer emits no colour
func (r *Renderer) Plain() bool {
	return r.r.ColorProfile() == termenv.Ascii
}

// Card renders one card label in its colour
func (r *Renderer) Card(c deck.Card) string {
	style, ok := r.cards[c.Color]
	if !ok {
		return CardLabel(c)
	}
	return style.Render(CardLabel(c))
}

// Hand renders cards with their ids. Cards not in playable are faint.
func (r *Renderer) Hand(cards, playable []deck.Card) string {
	legal := make(map[int]bool, len(playable))
	for _, c := range playable {
		legal[c.ID] = true
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		id := r.dim.Render("[" + strconv.Itoa(c.ID) + "]")
		if legal[c.ID] {
			parts[i] = r.Card(c) + id
		} else {
			parts[i] = r.disabled.Render(CardLabel(c)) + id
		}
	}
	return strings.Join(parts, " ")
}

// Status renders the status panel
func (r *Renderer) Status(s Status) string {
	var lines []string
	lines = append(lines, r.title.Render("UNO Game Status"))
	lines = append(lines, r.label.Render("Deck: ")+strconv.Itoa(s.Deck)+"  "+r.label.Render("Discard: ")+strconv.Itoa(s.Discard))

	direction := "clockwise"
	if s.Reversed {
		direction = "reversed"
	}
	lines = append(lines, r.label.Render("Players ("+direction+"):"))
	for _, p := range s.Players {
		if p.Current {
			lines = append(lines, r.current.Render(p.String()))
		} else {
			lines = append(lines, p.String())
		}
	}

	top := "None"
	if s.HasTop {
		top = r.Card(s.TopCard)
	}
	lines = append(lines, r.label.Render("Top card: ")+top+"  "+r.label.Render("Placed by: ")+s.PlacedByLabel())
	return r.panel.Render(strings.Join(lines, "\n"))
}
