package bot

import (
	"sort"
	"strings"

	"github.com/lox/unoforbots/internal/deck"
	"github.com/lox/unoforbots/internal/game"
)

// threatCards is the hand size at which an opponent is about to go out
const threatCards = 2

// Situation captures what matters about the table when choosing a card
type Situation struct {
	View          game.View
	NextCardCount int  // cards held by the player after us, -1 when unknown
	Threatened    bool // the next player is close to going out
}

// Recognize builds the Situation for a view
func Recognize(view game.View) Situation {
	s := Situation{View: view, NextCardCount: -1}
	for _, opp := range view.Opponents {
		if opp.ID == view.NextPlayerID {
			s.NextCardCount = opp.CardCount
		}
	}
	s.Threatened = s.NextCardCount >= 0 && s.NextCardCount <= threatCards
	return s
}

// CardRule scores a candidate card in a situation
type CardRule struct {
	Name      string
	Condition func(Situation, deck.Card) bool
	Score     int
	Bonus     func(deck.Card) int // used instead of Score when set
	Reasoning string
	Priority  int // higher priority rules are reported first
}

// CardScorer ranks legal cards by applying every matching rule
type CardScorer struct {
	rules []CardRule
}

// NewCardScorer creates a scorer with the given rules
func NewCardScorer(rules []CardRule) *CardScorer {
	sorted := make([]CardRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})
	return &CardScorer{rules: sorted}
}

// Score returns the total score of a card and the reasoning of the rules
// that applied
func (cs *CardScorer) Score(s Situation, card deck.Card) (int, string) {
	total := 0
	var reasons []string
	for _, rule := range cs.rules {
		if rule.Condition(s, card) {
			if rule.Bonus != nil {
				total += rule.Bonus(card)
			} else {
				total += rule.Score
			}
			if rule.Reasoning != "" {
				reasons = append(reasons, rule.Reasoning)
			}
		}
	}
	return total, strings.Join(reasons, ", ")
}

// Best returns the highest scoring legal card. Ties keep hand order.
func (cs *CardScorer) Best(s Situation) (deck.Card, string, bool) {
	var (
		best      deck.Card
		bestScore int
		reasoning string
		found     bool
	)
	for _, card := range s.View.LegalCards {
		score, why := cs.Score(s, card)
		if !found || score > bestScore {
			best, bestScore, reasoning, found = card, score, why, true
		}
	}
	return best, reasoning, found
}

// greedyRules shed action cards and high numbers first and hold wild cards
// back until nothing else is playable.
func greedyRules() []CardRule {
	return []CardRule{
		{
			Name: "attack",
			Condition: func(s Situation, c deck.Card) bool {
				return s.Threatened && (c.Face == deck.DrawTwo || c.Face == deck.Skip || c.Face == deck.WildDrawFour || c.Face == deck.WildDrawEight)
			},
			Score:     120,
			Reasoning: "next player is close to going out",
			Priority:  100,
		},
		{
			Name:      "action first",
			Condition: func(_ Situation, c deck.Card) bool { return c.Face.IsAction() },
			Score:     20,
			Reasoning: "action card",
			Priority:  50,
		},
		{
			Name:      "shed high numbers",
			Condition: func(_ Situation, c deck.Card) bool { return c.Face.IsNumber() },
			Bonus:     func(c deck.Card) int { return int(c.Face) },
			Reasoning: "highest number",
			Priority:  40,
		},
		{
			Name:      "save wilds",
			Condition: func(_ Situation, c deck.Card) bool { return c.IsWild() },
			Score:     -100,
			Reasoning: "only wild cards left",
			Priority:  30,
		},
		{
			Name:      "plain wild before draw cards",
			Condition: func(s Situation, c deck.Card) bool { return c.Face == deck.WildCard && !s.Threatened },
			Score:     5,
			Priority:  20,
		},
	}
}

// bestColor picks the ordinary colour the hand holds most of, ignoring the
// card being played. Ties go to the first colour in deck.OrdinaryColors.
func bestColor(hand []deck.Card, playing int) deck.Color {
	counts := make(map[deck.Color]int)
	for _, c := range hand {
		if c.ID != playing {
			counts[c.Color]++
		}
	}
	best := deck.OrdinaryColors[0]
	for _, color := range deck.OrdinaryColors {
		if counts[color] > counts[best] {
			best = color
		}
	}
	return best
}

// shouldSayUno reports whether a player holding this hand must declare
// before playing
func shouldSayUno(view game.View) bool {
	return len(view.Hand) == 2
}
