package game

import (
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/lox/unoforbots/internal/deck"
	"github.com/lox/unoforbots/internal/randutil"
)

const (
	// HandSize is the number of cards dealt to each player
	HandSize = 7

	// MaxPlayers is the most players a standard deck can deal a full hand to
	MaxPlayers = deck.StandardSize / HandSize

	// UnoPenalty is drawn by a player left on one card without declaring
	UnoPenalty = 2
)

// Counters tracks rare events for statistics
type Counters struct {
	Recycles     int // discard pile reshuffled into the deck
	UnoPenalties int // penalty draws for a missing Uno declaration
	ShortDraws   int // draws that yielded nothing because no cards were left
}

// Penalty is one Uno penalty: who was left on one card without declaring
// and how many cards they actually drew
type Penalty struct {
	PlayerID string
	Drawn    int
}

// Engine owns one game. It is not safe for concurrent use: callers serialise
// access, typically one engine per game driven by one goroutine.
type Engine struct {
	state    GameState
	rng      randutil.Source
	logger   *log.Logger
	injected map[int]bool
	counters Counters
	penalty  []Penalty

	shuffleSeats   bool
	openingCard    bool
	headsUpReverse bool
}

// Option configures an Engine
type Option func(*Engine)

// WithRNG sets the random source used for shuffling and debug card ids
func WithRNG(rng randutil.Source) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithLogger sets the logger; by default the engine is silent
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) { e.logger = logger.WithPrefix("engine") }
}

// WithShuffleSeats shuffles the seat order when the game starts
func WithShuffleSeats() Option {
	return func(e *Engine) { e.shuffleSeats = true }
}

// WithOpeningCard turns the first non-wild card of the deck face up after
// dealing. Its effect is not applied.
func WithOpeningCard() Option {
	return func(e *Engine) { e.openingCard = true }
}

// WithHeadsUpReverse makes Reverse act as a Skip when only two players are
// seated.
func WithHeadsUpReverse() Option {
	return func(e *Engine) { e.headsUpReverse = true }
}

// New creates an empty engine. Call StartGame to deal.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:   log.New(io.Discard),
		injected: make(map[int]bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = randutil.NewRandom()
	}
	e.Reset()
	return e
}

// Reset clears the game back to the empty state
func (e *Engine) Reset() {
	e.state = GameState{
		Players: []Player{},
		Deck:    []deck.Card{},
		Discard: []deck.Card{},
	}
	e.injected = make(map[int]bool)
	e.counters = Counters{}
	e.penalty = nil
}

// StartGame seats the given players, shuffles a fresh deck and deals each
// player HandSize cards from the front of the deck.
func (e *Engine) StartGame(playerIDs []string) error {
	if len(playerIDs) == 0 {
		return ErrNoPlayers
	}
	if len(playerIDs) > MaxPlayers {
		return fmt.Errorf("%w: %d players, at most %d", ErrTooManyPlayers, len(playerIDs), MaxPlayers)
	}
	seen := make(map[string]bool, len(playerIDs))
	for _, id := range playerIDs {
		if seen[id] {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayer, id)
		}
		seen[id] = true
	}

	e.Reset()

	players := make([]Player, len(playerIDs))
	for i, id := range playerIDs {
		players[i] = newPlayer(id)
	}
	if e.shuffleSeats {
		deck.ShuffleSlice(players, e.rng)
	}

	cards := deck.Standard()
	deck.Shuffle(cards, e.rng)

	for i := range players {
		players[i].Hand = append(players[i].Hand, cards[:HandSize]...)
		cards = cards[HandSize:]
	}

	e.state.Players = players
	e.state.Deck = append([]deck.Card{}, cards...)

	if e.openingCard {
		e.flipOpeningCard()
	}

	e.logger.Debug("Game started", "players", len(players), "deck", len(e.state.Deck), "discard", len(e.state.Discard))
	return nil
}

func (e *Engine) flipOpeningCard() {
	for i := len(e.state.Deck) - 1; i >= 0; i-- {
		card := e.state.Deck[i]
		if card.IsWild() {
			continue
		}
		e.state.Deck = append(e.state.Deck[:i], e.state.Deck[i+1:]...)
		e.state.Discard = append(e.state.Discard, card)
		e.logger.Debug("Opening card", "card", card)
		return
	}
}

// Started reports whether StartGame has seated any players
func (e *Engine) Started() bool {
	return len(e.state.Players) > 0
}

// IsReversed reports whether play proceeds backwards through the seats
func (e *Engine) IsReversed() bool {
	return e.state.IsReversed
}

// CurrentPlayer returns a copy of the player whose turn it is
func (e *Engine) CurrentPlayer() (Player, error) {
	if len(e.state.Players) == 0 {
		return Player{}, ErrNoPlayers
	}
	return e.state.Players[e.state.CurrentPlayerIndex].Clone(), nil
}

// CurrentPlayerIndex returns the seat index of the current player
func (e *Engine) CurrentPlayerIndex() int {
	return e.state.CurrentPlayerIndex
}

// Players returns copies of all players in seat order
func (e *Engine) Players() []Player {
	players := make([]Player, len(e.state.Players))
	for i, p := range e.state.Players {
		players[i] = p.Clone()
	}
	return players
}

// PlayerCards returns a copy of a player's hand
func (e *Engine) PlayerCards(playerID string) ([]deck.Card, error) {
	p, err := e.state.findPlayer(playerID)
	if err != nil {
		return nil, err
	}
	return deck.Clone(p.Hand), nil
}

// TopCard returns the active card, or false when nothing has been played
func (e *Engine) TopCard() (deck.Card, bool) {
	return e.state.topCard()
}

// DeckCards returns a copy of the draw pile
func (e *Engine) DeckCards() []deck.Card {
	return deck.Clone(e.state.Deck)
}

// DiscardCards returns a copy of the discard pile, top card last
func (e *Engine) DiscardCards() []deck.Card {
	return deck.Clone(e.state.Discard)
}

// State returns a deep copy of the whole game state
func (e *Engine) State() GameState {
	return e.state.Clone()
}

// Counters returns recycle and penalty counts since the game started
func (e *Engine) Counters() Counters {
	return e.counters
}

// Penalties returns every Uno penalty since the game started, oldest first
func (e *Engine) Penalties() []Penalty {
	return slices.Clone(e.penalty)
}

// IsWinner reports whether the player has emptied their hand
func (e *Engine) IsWinner(playerID string) (bool, error) {
	p, err := e.state.findPlayer(playerID)
	if err != nil {
		return false, err
	}
	return len(p.Hand) == 0, nil
}

// Winner returns the first player with an empty hand
func (e *Engine) Winner() (string, bool) {
	for _, p := range e.state.Players {
		if len(p.Hand) == 0 {
			return p.ID, true
		}
	}
	return "", false
}

// TotalCards counts every standard card in the deck, the discard pile and
// all hands. Cards injected through cheat codes are not counted, so a
// consistent game always reports deck.StandardSize.
func (e *Engine) TotalCards() int {
	total := 0
	count := func(cards []deck.Card) {
		for _, c := range cards {
			if !e.injected[c.ID] {
				total++
			}
		}
	}
	count(e.state.Deck)
	count(e.state.Discard)
	for _, p := range e.state.Players {
		count(p.Hand)
	}
	return total
}

// InjectedCards returns the ids of cards created by cheat codes
func (e *Engine) InjectedCards() []int {
	ids := make([]int, 0, len(e.injected))
	for id := range e.injected {
		ids = append(ids, id)
	}
	return ids
}

// drawCards moves up to n cards from the deck into the player's hand,
// recycling the discard pile when the deck runs out. It returns how many
// cards were actually drawn, which is fewer than n only when both piles are
// exhausted.
func (e *Engine) drawCards(p *Player, n int) int {
	drawn := 0
	for i := 0; i < n; i++ {
		if len(e.state.Deck) == 0 {
			e.recycle()
		}
		if len(e.state.Deck) == 0 {
			e.counters.ShortDraws++
			continue
		}
		last := len(e.state.Deck) - 1
		card := e.state.Deck[last]
		e.state.Deck = e.state.Deck[:last]
		p.Hand = append(p.Hand, card)
		drawn++
	}
	return drawn
}

// recycle shuffles every discard except the top card into a new deck and
// resets the colour of wild cards.
func (e *Engine) recycle() {
	if len(e.state.Discard) <= 1 {
		return
	}
	top := e.state.Discard[len(e.state.Discard)-1]
	pile := deck.Clone(e.state.Discard[:len(e.state.Discard)-1])
	for i := range pile {
		if pile[i].Face.IsWild() {
			pile[i].Color = deck.Wild
		}
	}
	deck.Shuffle(pile, e.rng)

	e.state.Deck = pile
	e.state.Discard = []deck.Card{top}
	e.counters.Recycles++
	e.logger.Debug("Recycled discard pile", "deck", len(pile), "top", top)
}
