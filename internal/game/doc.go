// Package game implements the core UNO rules engine.
//
// The main type is Engine, which owns one game: the deck, the discard pile,
// every player's hand, the turn pointer and the direction of play. It is a
// synchronous state machine; each call either applies a complete transition
// or returns an error without changing anything.
//
// # Basic Usage
//
//	e := game.New()
//	if err := e.StartGame([]string{"alice", "bob"}); err != nil {
//	    return err
//	}
//	hand, _ := e.PlayerCards("alice")
//	if err := e.PlayCard("alice", hand[0].ID); game.IsRuleViolation(err) {
//	    // show err.Error() to alice
//	}
//	if won, _ := e.IsWinner("alice"); won {
//	    // end the game
//	}
//
// # Errors
//
// Rule violations (wrong turn, illegal card, bad Uno call, ...) are *RuleError
// values meant for the player. Errors wrapping ErrInvalidState indicate a
// caller bug such as an unknown player id.
//
// # Deterministic Testing
//
// Shuffling and debug card ids use an injected random source:
//
//	e := game.New(game.WithRNG(randutil.New(42)))
//
// # Turn order
//
// NextTurn is the only place the turn pointer moves. Skip, Draw Two and Wild
// Draw Eight call it twice. Reverse only flips the direction, which makes no
// difference to who plays next with two players; WithHeadsUpReverse makes a
// heads-up Reverse skip like it does at a real table.
package game
