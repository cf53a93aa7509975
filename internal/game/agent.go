package game

import "github.com/lox/unoforbots/internal/deck"

// Action is what an agent chose to do with its turn
type Action int

const (
	Play Action = iota
	Draw
	Quit
	UseCheat // debug: activate a cheat code, then decide again
)

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case Play:
		return "play"
	case Draw:
		return "draw"
	case Quit:
		return "quit"
	case UseCheat:
		return "cheat"
	default:
		return "unknown"
	}
}

// Decision represents a player's decision with reasoning
type Decision struct {
	Action    Action
	CardID    int        // card to play
	Color     deck.Color // colour for a wild card
	SayUno    bool       // declare Uno before acting
	Cheat     Cheat      // code for UseCheat
	Reasoning string     // human-readable explanation
}

// OpponentView is what a player can see of another seat
type OpponentView struct {
	ID        string
	CardCount int
}

// View represents the read-only state of the game for decision making
type View struct {
	PlayerID     string
	Hand         []deck.Card
	LegalCards   []deck.Card
	TopCard      deck.Card
	HasTopCard   bool
	Opponents    []OpponentView // seat order, excluding the viewer
	NextPlayerID string
	IsReversed   bool
	DeckSize     int
	DiscardSize  int
}

// Agent represents any entity (human or AI) that can make decisions for a player.
// Agents receive an immutable view and return decisions; the session applies them.
type Agent interface {
	MakeDecision(view View) Decision
}

// ViewFor builds the view of the game seen by one player
func (e *Engine) ViewFor(playerID string) (View, error) {
	p, err := e.state.findPlayer(playerID)
	if err != nil {
		return View{}, err
	}
	legal, err := e.LegalCards(playerID)
	if err != nil {
		return View{}, err
	}

	view := View{
		PlayerID:    playerID,
		Hand:        deck.Clone(p.Hand),
		LegalCards:  legal,
		IsReversed:  e.state.IsReversed,
		DeckSize:    len(e.state.Deck),
		DiscardSize: len(e.state.Discard),
	}
	view.TopCard, view.HasTopCard = e.state.topCard()

	for _, other := range e.state.Players {
		if other.ID == playerID {
			continue
		}
		view.Opponents = append(view.Opponents, OpponentView{ID: other.ID, CardCount: len(other.Hand)})
	}
	if next, err := e.NextPlayer(); err == nil {
		view.NextPlayerID = next.ID
	}
	return view, nil
}
