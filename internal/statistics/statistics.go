package statistics

import (
	"fmt"
	"math"
	"sort"
)

// GameResult represents the outcome of a single simulated game
type GameResult struct {
	GameID         string
	Seed           int64  // RNG seed for this game (for replay)
	Winner         string // empty when the game was abandoned
	WinnerSeat     int    // seat index of the winner, -1 when nobody won
	WinnerStrategy string
	Strategies     []string // strategy per seat, in seat order
	Turns          int
	Recycles       int // discard pile reshuffles
	Penalties      int // Uno penalties
	Abandoned      bool
}

// SeatStats tracks statistics for a specific seat
type SeatStats struct {
	Games int
	Wins  int
}

// StrategyStats tracks statistics for one bot strategy across seats
type StrategyStats struct {
	Seats int // seats played, a strategy can hold several seats per game
	Wins  int
}

// Statistics tracks simulation statistics. Turn counts are the sample.
type Statistics struct {
	Games     int
	Completed int // games with a winner
	Abandoned int

	SumTurns  float64
	SumTurns2 float64   // Sum of squares for variance calculation
	Values    []float64 // turns per game, for median/percentile calculation
	MaxTurns  int

	Recycles  int
	Penalties int

	SeatResults     map[int]*SeatStats
	StrategyResults map[string]*StrategyStats
}

// Mean returns the mean number of turns per game
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumTurns / float64(s.Games)
}

// Variance returns the sample variance of turns per game
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumTurns2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of turns per game
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	se := s.StdError()
	margin := 1.96 * se // 95% confidence
	return mean - margin, mean + margin
}

// Add incorporates a new game result into the statistics
func (s *Statistics) Add(result GameResult) {
	if s.SeatResults == nil {
		s.SeatResults = make(map[int]*SeatStats)
	}
	if s.StrategyResults == nil {
		s.StrategyResults = make(map[string]*StrategyStats)
	}

	turns := float64(result.Turns)
	s.Games++
	s.SumTurns += turns
	s.SumTurns2 += turns * turns
	s.Values = append(s.Values, turns)
	if result.Turns > s.MaxTurns {
		s.MaxTurns = result.Turns
	}

	s.Recycles += result.Recycles
	s.Penalties += result.Penalties

	for seat, strategy := range result.Strategies {
		s.seat(seat).Games++
		s.strategy(strategy).Seats++
	}

	if result.Abandoned || result.Winner == "" {
		s.Abandoned++
		return
	}
	s.Completed++
	s.seat(result.WinnerSeat).Wins++
	s.strategy(result.WinnerStrategy).Wins++
}

func (s *Statistics) seat(i int) *SeatStats {
	ss, ok := s.SeatResults[i]
	if !ok {
		ss = &SeatStats{}
		s.SeatResults[i] = ss
	}
	return ss
}

func (s *Statistics) strategy(name string) *StrategyStats {
	ss, ok := s.StrategyResults[name]
	if !ok {
		ss = &StrategyStats{}
		s.StrategyResults[name] = ss
	}
	return ss
}

// Median returns the median number of turns
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// SeatWinRate returns the fraction of games won from a seat
func (s *Statistics) SeatWinRate(seat int) float64 {
	ss, ok := s.SeatResults[seat]
	if !ok || ss.Games == 0 {
		return 0
	}
	return float64(ss.Wins) / float64(ss.Games)
}

// StrategyWinRate returns wins per seat played for a strategy
func (s *Statistics) StrategyWinRate(strategy string) float64 {
	ss, ok := s.StrategyResults[strategy]
	if !ok || ss.Seats == 0 {
		return 0
	}
	return float64(ss.Wins) / float64(ss.Seats)
}

// Seats returns the seat indexes seen, in order
func (s *Statistics) Seats() []int {
	seats := make([]int, 0, len(s.SeatResults))
	for seat := range s.SeatResults {
		seats = append(seats, seat)
	}
	sort.Ints(seats)
	return seats
}

// Strategies returns the strategy names seen, sorted
func (s *Statistics) Strategies() []string {
	names := make([]string, 0, len(s.StrategyResults))
	for name := range s.StrategyResults {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate performs comprehensive validation of statistics data
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}

	if len(s.Values) != s.Games {
		return fmt.Errorf("values array length (%d) does not match games count (%d)",
			len(s.Values), s.Games)
	}

	if s.Completed+s.Abandoned != s.Games {
		return fmt.Errorf("completed (%d) plus abandoned (%d) does not match games count (%d)",
			s.Completed, s.Abandoned, s.Games)
	}

	seatWins := 0
	for seat, ss := range s.SeatResults {
		if ss.Wins > ss.Games {
			return fmt.Errorf("seat %d won %d of %d games", seat, ss.Wins, ss.Games)
		}
		seatWins += ss.Wins
	}
	if seatWins != s.Completed {
		return fmt.Errorf("seat wins total (%d) does not match completed games (%d)", seatWins, s.Completed)
	}

	strategyWins := 0
	for _, ss := range s.StrategyResults {
		strategyWins += ss.Wins
	}
	if strategyWins != s.Completed {
		return fmt.Errorf("strategy wins total (%d) does not match completed games (%d)", strategyWins, s.Completed)
	}

	return nil
}
