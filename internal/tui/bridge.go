package tui

import (
	"github.com/lox/unoforbots/internal/display"
	"github.com/lox/unoforbots/internal/game"
	"github.com/lox/unoforbots/internal/session"
)

// Bridge feeds session events into the TUI model. Events arrive on the
// session goroutine so the engine is never read concurrently with a move.
type Bridge struct {
	model     *TUIModel
	engine    *game.Engine
	humanID   string
	formatter *session.EventFormatter
	placedBy  string
}

// NewBridge creates a bridge that narrates events from humanID's point of view
func NewBridge(model *TUIModel, engine *game.Engine, humanID string, showReasonings bool) *Bridge {
	return &Bridge{
		model:   model,
		engine:  engine,
		humanID: humanID,
		formatter: session.NewEventFormatter(session.FormattingOptions{
			ShowReasonings: showReasonings,
			Perspective:    humanID,
			CardLabel:      display.CardLabel,
		}),
	}
}

// OnEvent implements session.EventSubscriber
func (b *Bridge) OnEvent(event session.GameEvent) {
	if e, ok := event.(session.CardPlayedEvent); ok {
		b.placedBy = e.PlayerID
	}

	if line := b.formatter.Format(event); line != "" {
		switch event.(type) {
		case session.GameStartedEvent:
			b.model.AddLogEntry(HeaderStyle.Render(line))
		case session.RuleViolationEvent, session.UnoPenaltyEvent:
			b.model.AddLogEntry(ErrorStyle.Render(line))
		case session.GameWonEvent:
			b.model.AddLogEntry(SuccessStyle.Render(line))
		case session.GameAbandonedEvent, session.CheatActivatedEvent:
			b.model.AddLogEntry(WarningStyle.Render(line))
		default:
			b.model.AddLogEntry(line)
		}
	}

	if _, ok := event.(session.GameStartedEvent); ok && b.humanID != "" {
		if hand, err := b.engine.PlayerCards(b.humanID); err == nil {
			b.model.AddLogEntry("Your hand: " + display.CardLabels(hand))
		}
	}

	b.model.SetStatus(display.StatusOf(b.engine, b.placedBy))
}

// PlacedBy returns who played the current top card
func (b *Bridge) PlacedBy() string {
	return b.placedBy
}
