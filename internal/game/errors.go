package game

import (
	"errors"
	"fmt"
)

// ErrInvalidState marks integration errors: referencing a player that does not
// exist or acting on a game that was never set up. These indicate a bug in
// the caller and are not meant to be shown to players.
var ErrInvalidState = errors.New("invalid game state")

var (
	ErrPlayerNotFound  = fmt.Errorf("%w: player not found", ErrInvalidState)
	ErrNoPlayers       = fmt.Errorf("%w: no players in the game", ErrInvalidState)
	ErrTooManyPlayers  = fmt.Errorf("%w: not enough cards to deal to every player", ErrInvalidState)
	ErrDuplicatePlayer = fmt.Errorf("%w: duplicate player id", ErrInvalidState)
)

// RuleError is a rule violation. Its message is suitable for showing to the
// player whose action was rejected; Code is stable for programmatic use.
type RuleError struct {
	Code    string
	Message string
}

func (e *RuleError) Error() string { return e.Message }

// Rule violations. Compare with errors.Is.
var (
	ErrNotYourTurn     = &RuleError{Code: "not_your_turn", Message: "Not the player's turn"}
	ErrAlreadyPlayed   = &RuleError{Code: "already_played", Message: "Player has already played a card"}
	ErrCardNotFound    = &RuleError{Code: "card_not_found", Message: "Card not found in player's hand"}
	ErrIllegalCard     = &RuleError{Code: "illegal_card", Message: "Cannot play this card"}
	ErrNoDiscard       = &RuleError{Code: "no_discard", Message: "No cards in discard pile"}
	ErrWrongCard       = &RuleError{Code: "wrong_card", Message: "Last card is not this one"}
	ErrNotWild         = &RuleError{Code: "not_wild", Message: "Last card is not a Wild card"}
	ErrInvalidColor    = &RuleError{Code: "invalid_color", Message: "Wild cards can only be changed to Red, Green, Blue or Yellow"}
	ErrAlreadyDeclared = &RuleError{Code: "already_declared", Message: "Player has already called UNO"}
	ErrWrongHandSize   = &RuleError{Code: "wrong_hand_size", Message: "Player cannot call UNO unless they have exactly two cards"}
	ErrGameNotStarted  = &RuleError{Code: "game_not_started", Message: "Game has not started yet"}
	ErrUnknownCheat    = &RuleError{Code: "unknown_cheat", Message: "Invalid cheat code"}
)

// IsRuleViolation reports whether err is a rule violation rather than an
// invalid-state error.
func IsRuleViolation(err error) bool {
	var re *RuleError
	return errors.As(err, &re)
}
