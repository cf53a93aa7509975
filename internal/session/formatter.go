package session

import (
	"fmt"
	"strings"

	"github.com/lox/unoforbots/internal/deck"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	ShowReasonings bool                   // include bot reasoning
	Perspective    string                 // player id addressed as "You"
	CardLabel      func(deck.Card) string // defaults to Card.String
}

// EventFormatter provides centralized formatting for game events
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	if opts.CardLabel == nil {
		opts.CardLabel = deck.Card.String
	}
	return &EventFormatter{opts: opts}
}

// Format renders an event as a single log line. Events that are not worth
// showing return an empty string.
func (ef *EventFormatter) Format(event GameEvent) string {
	switch e := event.(type) {
	case GameStartedEvent:
		line := fmt.Sprintf("Game started with %s", strings.Join(e.Players, ", "))
		if e.HasTop {
			line += fmt.Sprintf(" • opening card %s", ef.opts.CardLabel(e.TopCard))
		}
		return line
	case TurnChangedEvent:
		if e.PlayerID == ef.opts.Perspective {
			return "Your turn"
		}
		return ""
	case CardPlayedEvent:
		line := fmt.Sprintf("%s played %s", ef.name(e.PlayerID), ef.opts.CardLabel(e.Card))
		if ef.opts.ShowReasonings && e.Reasoning != "" {
			line += fmt.Sprintf(" (%s)", e.Reasoning)
		}
		return line
	case CardDrawnEvent:
		return ef.formatDraw(e)
	case UnoDeclaredEvent:
		return fmt.Sprintf("%s called UNO!", ef.name(e.PlayerID))
	case UnoPenaltyEvent:
		return fmt.Sprintf("%s forgot to call UNO, +%d cards", ef.name(e.PlayerID), e.Count)
	case WildColorChosenEvent:
		return fmt.Sprintf("%s chose %s", ef.name(e.PlayerID), e.Color)
	case RuleViolationEvent:
		if e.PlayerID == ef.opts.Perspective {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %s", e.PlayerID, e.Err)
	case CheatActivatedEvent:
		return fmt.Sprintf("%s used cheat code %s", ef.name(e.PlayerID), e.Cheat)
	case GameWonEvent:
		if e.Winner == ef.opts.Perspective {
			return fmt.Sprintf("You won after %d turns!", e.Turns)
		}
		return fmt.Sprintf("%s won after %d turns", e.Winner, e.Turns)
	case GameAbandonedEvent:
		return fmt.Sprintf("Game over: %s after %d turns", e.Reason, e.Turns)
	}
	return ""
}

func (ef *EventFormatter) formatDraw(e CardDrawnEvent) string {
	isTimeout := strings.Contains(e.Reasoning, "timeout")
	name := ef.name(e.PlayerID)
	switch {
	case isTimeout:
		return fmt.Sprintf("%s timed out and draws", name)
	case e.Count == 0:
		return fmt.Sprintf("%s tried to draw but no cards are left", name)
	case e.Penalty:
		return fmt.Sprintf("%s draws %d", name, e.Count)
	case e.Count == 1:
		return fmt.Sprintf("%s drew a card", name)
	default:
		return fmt.Sprintf("%s drew %d cards", name, e.Count)
	}
}

func (ef *EventFormatter) name(playerID string) string {
	if playerID == ef.opts.Perspective && playerID != "" {
		return "You"
	}
	return playerID
}
