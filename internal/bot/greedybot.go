package bot

import (
	"github.com/charmbracelet/log"
	"github.com/lox/unoforbots/internal/game"
)

// GreedyBot sheds its most valuable cards first and keeps wild cards for
// last. It attacks with draw cards when the next player is about to win.
type GreedyBot struct {
	scorer *CardScorer
	sayUno bool
	name   string
	logger *log.Logger
}

// NewGreedyBot creates a GreedyBot that always calls Uno
func NewGreedyBot(logger *log.Logger) *GreedyBot {
	return &GreedyBot{scorer: NewCardScorer(greedyRules()), sayUno: true, name: "greedy-bot", logger: logger}
}

// NewForgetfulBot creates a GreedyBot that never calls Uno, so it pays the
// penalty every time it gets down to one card
func NewForgetfulBot(logger *log.Logger) *GreedyBot {
	return &GreedyBot{scorer: NewCardScorer(greedyRules()), sayUno: false, name: "forgetful-bot", logger: logger}
}

func (g *GreedyBot) MakeDecision(view game.View) game.Decision {
	situation := Recognize(view)

	card, reasoning, ok := g.scorer.Best(situation)
	if !ok {
		return game.Decision{Action: game.Draw, Reasoning: g.name + " no legal card"}
	}
	if reasoning == "" {
		reasoning = "matching card"
	}

	decision := game.Decision{
		Action:    game.Play,
		CardID:    card.ID,
		SayUno:    g.sayUno && shouldSayUno(view),
		Reasoning: g.name + " " + reasoning,
	}
	if card.IsWild() {
		decision.Color = bestColor(view.Hand, card.ID)
	}

	g.logger.Debug("Greedy decision", "player", view.PlayerID, "card", card, "threatened", situation.Threatened, "reasoning", reasoning)
	return decision
}
