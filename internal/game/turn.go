package game

// NextPlayerIndex returns the seat that plays after the current one given
// the direction of play.
func (e *Engine) NextPlayerIndex() (int, error) {
	n := len(e.state.Players)
	if n == 0 {
		return 0, ErrNoPlayers
	}
	cur := e.state.CurrentPlayerIndex
	if e.state.IsReversed {
		return (cur - 1 + n) % n, nil
	}
	return (cur + 1) % n, nil
}

// NextPlayer returns a copy of the player who plays after the current one
func (e *Engine) NextPlayer() (Player, error) {
	idx, err := e.NextPlayerIndex()
	if err != nil {
		return Player{}, err
	}
	return e.state.Players[idx].Clone(), nil
}

func (e *Engine) nextPlayer() (*Player, error) {
	idx, err := e.NextPlayerIndex()
	if err != nil {
		return nil, err
	}
	return &e.state.Players[idx], nil
}

// NextTurn ends the current player's turn. A player left on one card who
// did not call Uno draws the penalty first. Every turn change goes through
// here, so skips are expressed as repeated calls.
func (e *Engine) NextTurn() error {
	next, err := e.NextPlayerIndex()
	if err != nil {
		return err
	}

	cur := &e.state.Players[e.state.CurrentPlayerIndex]
	if len(cur.Hand) == 1 && !cur.HasSaidUno {
		drawn := e.drawCards(cur, UnoPenalty)
		e.counters.UnoPenalties++
		e.penalty = append(e.penalty, Penalty{PlayerID: cur.ID, Drawn: drawn})
		e.logger.Debug("Uno penalty", "player", cur.ID, "drawn", drawn)
	}

	cur.HasPlayedCard = false
	cur.HasSaidUno = false
	e.state.CurrentPlayerIndex = next
	return nil
}
