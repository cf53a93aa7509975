package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/unoforbots/internal/deck"
	"github.com/lox/unoforbots/internal/game"
)

// Reasons a game ends without a winner
const (
	ReasonQuit     = "quit"
	ReasonMaxTurns = "max turns reached"
)

// maxCheatsPerTurn bounds UseCheat decisions so a misbehaving agent cannot
// stall a turn forever
const maxCheatsPerTurn = 8

// Seat binds a player id to the agent that decides for it
type Seat struct {
	ID       string
	Agent    game.Agent
	Strategy string // reported in results; "human" for people
	Human    bool   // humans are asked again after a rejected action and get no think delay
}

// Config holds session settings. Zero values mean no limit and no delay.
type Config struct {
	GameID          string
	MaxTurns        int
	ThinkDelay      time.Duration // pause before each bot decision, so humans can follow along
	DecisionTimeout time.Duration // agents that take longer draw a card instead
	Clock           quartz.Clock
	Bus             EventBus
	Logger          *log.Logger
}

// SeatResult summarises one seat at the end of a game
type SeatResult struct {
	ID        string
	Strategy  string
	CardsLeft int
}

// Result is the outcome of one game
type Result struct {
	GameID    string
	Winner    string // empty when nobody won
	Turns     int
	Seats     []SeatResult // final seat order
	Recycles  int
	Penalties int
	Quit      bool
	Reason    string // why the game ended without a winner
}

// Session drives an Engine by asking each seat's agent for decisions until
// somebody wins. All engine access happens on the goroutine calling Play.
type Session struct {
	engine *game.Engine
	seats  map[string]Seat
	order  []string
	cfg    Config
	clock  quartz.Clock
	bus    EventBus
	logger *log.Logger

	turns int
}

// New creates a session for the given seats. The engine is started by Play
// unless the caller already started it.
func New(engine *game.Engine, seats []Seat, cfg Config) *Session {
	s := &Session{
		engine: engine,
		seats:  make(map[string]Seat, len(seats)),
		cfg:    cfg,
		clock:  cfg.Clock,
		bus:    cfg.Bus,
		logger: cfg.Logger,
	}
	for _, seat := range seats {
		s.seats[seat.ID] = seat
		s.order = append(s.order, seat.ID)
	}
	if s.clock == nil {
		s.clock = quartz.NewReal()
	}
	if s.bus == nil {
		s.bus = NewEventBus()
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if cfg.GameID != "" {
		s.logger = s.logger.With("game", cfg.GameID)
	}
	return s
}

// Bus returns the event bus the session publishes to
func (s *Session) Bus() EventBus {
	return s.bus
}

// Play runs the game to completion. It returns the result so far together
// with ctx.Err() if the context is cancelled first.
func (s *Session) Play(ctx context.Context) (Result, error) {
	if !s.engine.Started() {
		if err := s.engine.StartGame(s.order); err != nil {
			return Result{}, fmt.Errorf("failed to start game: %w", err)
		}
	}

	var ids []string
	for _, p := range s.engine.Players() {
		if _, ok := s.seats[p.ID]; !ok {
			return Result{}, fmt.Errorf("%w: no agent for %s", game.ErrPlayerNotFound, p.ID)
		}
		ids = append(ids, p.ID)
	}
	top, hasTop := s.engine.TopCard()
	s.bus.Publish(GameStartedEvent{GameID: s.cfg.GameID, Players: ids, TopCard: top, HasTop: hasTop, timestamp: s.clock.Now()})
	s.logger.Info("Game started", "players", ids)

	for {
		if winner, ok := s.engine.Winner(); ok {
			s.bus.Publish(GameWonEvent{GameID: s.cfg.GameID, Winner: winner, Turns: s.turns, timestamp: s.clock.Now()})
			s.logger.Info("Game won", "winner", winner, "turns", s.turns)
			return s.result(winner, ""), nil
		}
		if s.cfg.MaxTurns > 0 && s.turns >= s.cfg.MaxTurns {
			return s.abandon(ReasonMaxTurns), nil
		}
		if err := ctx.Err(); err != nil {
			return s.result("", err.Error()), err
		}

		quit, err := s.playTurn(ctx)
		if err != nil {
			return s.result("", err.Error()), err
		}
		if quit {
			return s.abandon(ReasonQuit), nil
		}
		s.turns++
	}
}

func (s *Session) abandon(reason string) Result {
	s.bus.Publish(GameAbandonedEvent{GameID: s.cfg.GameID, Reason: reason, Turns: s.turns, timestamp: s.clock.Now()})
	s.logger.Info("Game abandoned", "reason", reason, "turns", s.turns)
	return s.result("", reason)
}

func (s *Session) result(winner, reason string) Result {
	counters := s.engine.Counters()
	r := Result{
		GameID:    s.cfg.GameID,
		Winner:    winner,
		Turns:     s.turns,
		Recycles:  counters.Recycles,
		Penalties: counters.UnoPenalties,
		Quit:      reason == ReasonQuit,
	}
	if winner == "" {
		r.Reason = reason
	}
	for _, p := range s.engine.Players() {
		r.Seats = append(r.Seats, SeatResult{ID: p.ID, Strategy: s.seats[p.ID].Strategy, CardsLeft: len(p.Hand)})
	}
	return r
}

// playTurn asks the current player for decisions until one of them ends the
// turn. It reports whether the player quit.
func (s *Session) playTurn(ctx context.Context) (bool, error) {
	current, err := s.engine.CurrentPlayer()
	if err != nil {
		return false, err
	}
	seat := s.seats[current.ID]

	s.bus.Publish(TurnChangedEvent{PlayerID: seat.ID, Turn: s.turns, IsReversed: s.engine.IsReversed(), timestamp: s.clock.Now()})

	cheats := 0
	for {
		view, err := s.engine.ViewFor(seat.ID)
		if err != nil {
			return false, err
		}

		if !seat.Human {
			if err := s.sleep(ctx, s.cfg.ThinkDelay); err != nil {
				return false, err
			}
		}

		decision, err := s.decide(ctx, seat, view)
		if err != nil {
			return false, err
		}
		s.logger.Debug("Decision", "player", seat.ID, "action", decision.Action, "card", decision.CardID, "uno", decision.SayUno, "reasoning", decision.Reasoning)

		switch decision.Action {
		case game.Quit:
			return true, nil
		case game.UseCheat:
			cheats++
			if err := s.applyCheat(seat, decision.Cheat); err != nil {
				return false, err
			}
			if cheats >= maxCheatsPerTurn {
				return false, s.draw(seat, "too many cheat codes")
			}
			continue
		}

		if decision.SayUno {
			if err := s.sayUno(seat); err != nil {
				return false, err
			}
		}

		done, err := s.apply(seat, decision)
		if err != nil {
			return false, err
		}
		if done {
			return false, nil
		}
	}
}

// decide asks the agent for a decision. The timeout timer is armed before the
// agent is called.
func (s *Session) decide(ctx context.Context, seat Seat, view game.View) (game.Decision, error) {
	var timeout <-chan struct{}
	if s.cfg.DecisionTimeout > 0 {
		fired := make(chan struct{})
		timer := s.clock.AfterFunc(s.cfg.DecisionTimeout, func() {
			close(fired)
		})
		defer timer.Stop()
		timeout = fired
	}

	decisionCh := make(chan game.Decision, 1)
	go func() {
		decisionCh <- seat.Agent.MakeDecision(view)
	}()

	select {
	case decision := <-decisionCh:
		return decision, nil
	case <-timeout:
		s.logger.Warn("Decision timeout, drawing a card", "player", seat.ID, "timeout", s.cfg.DecisionTimeout)
		return game.Decision{Action: game.Draw, Reasoning: "Decision timeout - drawing"}, nil
	case <-ctx.Done():
		return game.Decision{}, ctx.Err()
	}
}

func (s *Session) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	done := make(chan struct{})
	timer := s.clock.AfterFunc(d, func() {
		close(done)
	})
	defer timer.Stop()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// apply performs a play or draw. It reports false when a human's action was
// rejected and they should be asked again.
func (s *Session) apply(seat Seat, decision game.Decision) (bool, error) {
	if decision.Action == game.Draw {
		return true, s.draw(seat, decision.Reasoning)
	}
	if decision.Action != game.Play {
		return false, fmt.Errorf("unknown action %d from %s", decision.Action, seat.ID)
	}

	hand, err := s.engine.PlayerCards(seat.ID)
	if err != nil {
		return false, err
	}
	idx := deck.IndexOf(hand, decision.CardID)

	before := s.handSizes()
	penalties := len(s.engine.Penalties())

	err = s.engine.PlayCard(seat.ID, decision.CardID)
	if game.IsRuleViolation(err) {
		s.reject(seat, game.Play, err)
		if seat.Human {
			return false, nil
		}
		return true, s.draw(seat, "fallback after rejected play")
	}
	if err != nil {
		return false, err
	}

	played := hand[idx]
	s.bus.Publish(CardPlayedEvent{
		PlayerID:  seat.ID,
		Card:      played,
		Remaining: len(hand) - 1,
		Reasoning: decision.Reasoning,
		timestamp: s.clock.Now(),
	})

	if played.IsWild() {
		if err := s.chooseColor(seat, played, decision.Color); err != nil {
			return false, err
		}
	}

	s.publishDraws(seat.ID, before, penalties)
	return true, nil
}

func (s *Session) draw(seat Seat, reasoning string) error {
	before := s.handSizes()
	penalties := len(s.engine.Penalties())

	if err := s.engine.DrawCard(seat.ID); err != nil {
		return err
	}

	drawn := s.handSizes()[seat.ID] - before[seat.ID]
	for _, p := range s.engine.Penalties()[penalties:] {
		if p.PlayerID == seat.ID {
			drawn -= p.Drawn
		}
	}
	s.bus.Publish(CardDrawnEvent{
		PlayerID:  seat.ID,
		Count:     drawn,
		Reasoning: reasoning,
		timestamp: s.clock.Now(),
	})
	s.publishDraws(seat.ID, before, penalties)
	return nil
}

// chooseColor fixes the colour of a wild card the seat just played. An
// invalid choice falls back to the colour the player holds most of.
func (s *Session) chooseColor(seat Seat, card deck.Card, color deck.Color) error {
	s.bus.Publish(WildColorPendingEvent{PlayerID: seat.ID, CardID: card.ID, timestamp: s.clock.Now()})

	err := s.engine.ChangeWildCardColor(card.ID, color)
	if errors.Is(err, game.ErrInvalidColor) {
		s.reject(seat, game.Play, err)
		color = s.fallbackColor(seat.ID)
		err = s.engine.ChangeWildCardColor(card.ID, color)
	}
	if err != nil {
		return err
	}

	card.Color = color
	s.bus.Publish(WildColorChosenEvent{PlayerID: seat.ID, Card: card, Color: color, timestamp: s.clock.Now()})
	return nil
}

func (s *Session) fallbackColor(playerID string) deck.Color {
	hand, err := s.engine.PlayerCards(playerID)
	if err != nil {
		return deck.Red
	}
	counts := deck.ColorCounts(hand)
	best := deck.OrdinaryColors[0]
	for _, c := range deck.OrdinaryColors {
		if counts[c] > counts[best] {
			best = c
		}
	}
	return best
}

func (s *Session) sayUno(seat Seat) error {
	if p, err := s.engine.CurrentPlayer(); err == nil && p.HasSaidUno {
		return nil
	}
	err := s.engine.SayUno(seat.ID)
	if game.IsRuleViolation(err) {
		s.reject(seat, game.Play, err)
		return nil
	}
	if err != nil {
		return err
	}
	s.bus.Publish(UnoDeclaredEvent{PlayerID: seat.ID, timestamp: s.clock.Now()})
	return nil
}

func (s *Session) applyCheat(seat Seat, cheat game.Cheat) error {
	err := s.engine.ActivateCheatCode(seat.ID, cheat)
	if game.IsRuleViolation(err) {
		s.reject(seat, game.UseCheat, err)
		return nil
	}
	if err != nil {
		return err
	}
	s.bus.Publish(CheatActivatedEvent{PlayerID: seat.ID, Cheat: cheat, timestamp: s.clock.Now()})
	return nil
}

func (s *Session) reject(seat Seat, action game.Action, err error) {
	s.logger.Debug("Action rejected", "player", seat.ID, "action", action, "error", err)
	s.bus.Publish(RuleViolationEvent{PlayerID: seat.ID, Action: action, Err: err, timestamp: s.clock.Now()})
}

func (s *Session) handSizes() map[string]int {
	sizes := make(map[string]int)
	for _, p := range s.engine.Players() {
		sizes[p.ID] = len(p.Hand)
	}
	return sizes
}

// publishDraws reports cards that arrived in hands as a side effect of the
// actor's move. penaltiesBefore is the length of the engine's penalty record
// when the move started.
func (s *Session) publishDraws(actor string, before map[string]int, penaltiesBefore int) {
	penalties := s.engine.Penalties()[penaltiesBefore:]
	draws, unos := attributeDraws(s.order, actor, before, s.handSizes(), penalties)
	for _, ev := range draws {
		ev.timestamp = s.clock.Now()
		s.bus.Publish(ev)
	}
	for _, ev := range unos {
		ev.timestamp = s.clock.Now()
		s.bus.Publish(ev)
		s.logger.Debug("Uno penalty", "player", ev.PlayerID, "drawn", ev.Count)
	}
}

// attributeDraws splits hand growth into forced draws and Uno penalties. A
// seat skipped while holding one undeclared card is penalised by the engine
// during the actor's move, so those cards belong to its UnoPenaltyEvent and
// not to a forced draw. The actor's own hand change is reported by the caller.
func attributeDraws(order []string, actor string, before, after map[string]int, penalties []game.Penalty) ([]CardDrawnEvent, []UnoPenaltyEvent) {
	penalized := make(map[string]int, len(penalties))
	unos := make([]UnoPenaltyEvent, 0, len(penalties))
	for _, p := range penalties {
		penalized[p.PlayerID] += p.Drawn
		unos = append(unos, UnoPenaltyEvent{PlayerID: p.PlayerID, Count: p.Drawn})
	}

	var draws []CardDrawnEvent
	for _, id := range order {
		if id == actor {
			continue
		}
		if n := after[id] - before[id] - penalized[id]; n > 0 {
			draws = append(draws, CardDrawnEvent{PlayerID: id, Count: n, Penalty: true})
		}
	}
	return draws, unos
}
