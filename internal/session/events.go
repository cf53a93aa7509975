package session

import (
	"sync"
	"time"

	"github.com/lox/unoforbots/internal/deck"
	"github.com/lox/unoforbots/internal/game"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for events published while a game is played
const (
	EventTypeGameStarted      EventType = "game_started"
	EventTypeTurnChanged      EventType = "turn_changed"
	EventTypeCardPlayed       EventType = "card_played"
	EventTypeCardDrawn        EventType = "card_drawn"
	EventTypeUnoDeclared      EventType = "uno_declared"
	EventTypeUnoPenalty       EventType = "uno_penalty"
	EventTypeWildColorPending EventType = "wild_color_pending"
	EventTypeWildColorChosen  EventType = "wild_color_chosen"
	EventTypeRuleViolation    EventType = "rule_violation"
	EventTypeCheatActivated   EventType = "cheat_activated"
	EventTypeGameWon          EventType = "game_won"
	EventTypeGameAbandoned    EventType = "game_abandoned"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a game
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// GameStartedEvent is published once the cards have been dealt
type GameStartedEvent struct {
	GameID    string
	Players   []string // seat order
	TopCard   deck.Card
	HasTop    bool
	timestamp time.Time
}

func (e GameStartedEvent) EventType() EventType { return EventTypeGameStarted }
func (e GameStartedEvent) Timestamp() time.Time { return e.timestamp }

// TurnChangedEvent is published whenever a new player is asked to act
type TurnChangedEvent struct {
	PlayerID   string
	Turn       int
	IsReversed bool
	timestamp  time.Time
}

func (e TurnChangedEvent) EventType() EventType { return EventTypeTurnChanged }
func (e TurnChangedEvent) Timestamp() time.Time { return e.timestamp }

// CardPlayedEvent is published when a card lands on the discard pile
type CardPlayedEvent struct {
	PlayerID  string
	Card      deck.Card
	Remaining int
	Reasoning string
	timestamp time.Time
}

func (e CardPlayedEvent) EventType() EventType { return EventTypeCardPlayed }
func (e CardPlayedEvent) Timestamp() time.Time { return e.timestamp }

// CardDrawnEvent is published when a player's hand grows, either because
// they chose to draw or because a card made them draw.
type CardDrawnEvent struct {
	PlayerID  string
	Count     int
	Penalty   bool // forced by a Draw Two or wild draw card
	Reasoning string
	timestamp time.Time
}

func (e CardDrawnEvent) EventType() EventType { return EventTypeCardDrawn }
func (e CardDrawnEvent) Timestamp() time.Time { return e.timestamp }

// UnoDeclaredEvent is published when a player calls Uno
type UnoDeclaredEvent struct {
	PlayerID  string
	timestamp time.Time
}

func (e UnoDeclaredEvent) EventType() EventType { return EventTypeUnoDeclared }
func (e UnoDeclaredEvent) Timestamp() time.Time { return e.timestamp }

// UnoPenaltyEvent is published when a player forgot to call Uno
type UnoPenaltyEvent struct {
	PlayerID  string
	Count     int
	timestamp time.Time
}

func (e UnoPenaltyEvent) EventType() EventType { return EventTypeUnoPenalty }
func (e UnoPenaltyEvent) Timestamp() time.Time { return e.timestamp }

// WildColorPendingEvent is published after a wild card is played and before
// its colour is chosen
type WildColorPendingEvent struct {
	PlayerID  string
	CardID    int
	timestamp time.Time
}

func (e WildColorPendingEvent) EventType() EventType { return EventTypeWildColorPending }
func (e WildColorPendingEvent) Timestamp() time.Time { return e.timestamp }

// WildColorChosenEvent is published once a wild card has a colour
type WildColorChosenEvent struct {
	PlayerID  string
	Card      deck.Card
	Color     deck.Color
	timestamp time.Time
}

func (e WildColorChosenEvent) EventType() EventType { return EventTypeWildColorChosen }
func (e WildColorChosenEvent) Timestamp() time.Time { return e.timestamp }

// RuleViolationEvent carries the rejection message for an action the engine
// refused
type RuleViolationEvent struct {
	PlayerID  string
	Action    game.Action
	Err       error
	timestamp time.Time
}

func (e RuleViolationEvent) EventType() EventType { return EventTypeRuleViolation }
func (e RuleViolationEvent) Timestamp() time.Time { return e.timestamp }

// CheatActivatedEvent is published when a cheat code injects a card
type CheatActivatedEvent struct {
	PlayerID  string
	Cheat     game.Cheat
	timestamp time.Time
}

func (e CheatActivatedEvent) EventType() EventType { return EventTypeCheatActivated }
func (e CheatActivatedEvent) Timestamp() time.Time { return e.timestamp }

// GameWonEvent is published when a player empties their hand
type GameWonEvent struct {
	GameID    string
	Winner    string
	Turns     int
	timestamp time.Time
}

func (e GameWonEvent) EventType() EventType { return EventTypeGameWon }
func (e GameWonEvent) Timestamp() time.Time { return e.timestamp }

// GameAbandonedEvent is published when a game stops without a winner
type GameAbandonedEvent struct {
	GameID    string
	Reason    string
	Turns     int
	timestamp time.Time
}

func (e GameAbandonedEvent) EventType() EventType { return EventTypeGameAbandoned }
func (e GameAbandonedEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus. Events are delivered
// synchronously on the publishing goroutine.
type SimpleEventBus struct {
	mu          sync.RWMutex
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	bus.mu.RLock()
	subs := make([]EventSubscriber, len(bus.subscribers))
	copy(subs, bus.subscribers)
	bus.mu.RUnlock()

	for _, subscriber := range subs {
		subscriber.OnEvent(event)
	}
}
