package session

import (
	"testing"

	"github.com/lox/unoforbots/internal/deck"
	"github.com/lox/unoforbots/internal/game"
	"github.com/stretchr/testify/assert"
)

func TestEventFormatter(t *testing.T) {
	ef := NewEventFormatter(FormattingOptions{Perspective: "alice", ShowReasonings: true})
	redSkip := deck.NewCard(1, deck.Red, deck.Skip)

	tests := []struct {
		name  string
		event GameEvent
		want  string
	}{
		{"own turn", TurnChangedEvent{PlayerID: "alice"}, "Your turn"},
		{"other turn hidden", TurnChangedEvent{PlayerID: "bob"}, ""},
		{"play with reasoning", CardPlayedEvent{PlayerID: "bob", Card: redSkip, Reasoning: "action first"}, "bob played Red Skip (action first)"},
		{"own play", CardPlayedEvent{PlayerID: "alice", Card: redSkip}, "You played Red Skip"},
		{"single draw", CardDrawnEvent{PlayerID: "bob", Count: 1}, "bob drew a card"},
		{"penalty draw", CardDrawnEvent{PlayerID: "bob", Count: 4, Penalty: true}, "bob draws 4"},
		{"timeout draw", CardDrawnEvent{PlayerID: "bob", Count: 1, Reasoning: "Decision timeout - drawing"}, "bob timed out and draws"},
		{"empty piles", CardDrawnEvent{PlayerID: "bob"}, "bob tried to draw but no cards are left"},
		{"uno", UnoDeclaredEvent{PlayerID: "bob"}, "bob called UNO!"},
		{"uno penalty", UnoPenaltyEvent{PlayerID: "alice", Count: 2}, "You forgot to call UNO, +2 cards"},
		{"colour", WildColorChosenEvent{PlayerID: "bob", Color: deck.Green}, "bob chose Green"},
		{"own violation", RuleViolationEvent{PlayerID: "alice", Err: game.ErrIllegalCard}, "Cannot play this card"},
		{"won", GameWonEvent{Winner: "alice", Turns: 12}, "You won after 12 turns!"},
		{"abandoned", GameAbandonedEvent{Reason: ReasonQuit, Turns: 3}, "Game over: quit after 3 turns"},
		{"started", GameStartedEvent{Players: []string{"alice", "bob"}}, "Game started with alice, bob"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ef.Format(tt.event))
		})
	}
}

func TestEventFormatterCustomLabel(t *testing.T) {
	ef := NewEventFormatter(FormattingOptions{CardLabel: func(c deck.Card) string { return "<" + c.Face.String() + ">" }})
	got := ef.Format(CardPlayedEvent{PlayerID: "bob", Card: deck.NewCard(1, deck.Blue, deck.Reverse)})
	assert.Equal(t, "bob played <Reverse>", got)
}
