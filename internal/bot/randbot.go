package bot

import (
	"github.com/charmbracelet/log"
	"github.com/lox/unoforbots/internal/deck"
	"github.com/lox/unoforbots/internal/game"
	"github.com/lox/unoforbots/internal/randutil"
)

// RandBot plays a uniformly random legal card
type RandBot struct {
	rng    randutil.Source
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng randutil.Source, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger}
}

func (r *RandBot) MakeDecision(view game.View) game.Decision {
	if len(view.LegalCards) == 0 {
		return game.Decision{Action: game.Draw, Reasoning: "rand-bot no legal card"}
	}

	card := view.LegalCards[r.rng.IntN(len(view.LegalCards))]
	decision := game.Decision{
		Action:    game.Play,
		CardID:    card.ID,
		SayUno:    shouldSayUno(view),
		Reasoning: "rand-bot random card",
	}
	if card.IsWild() {
		decision.Color = deck.OrdinaryColors[r.rng.IntN(len(deck.OrdinaryColors))]
	}
	return decision
}
