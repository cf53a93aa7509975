package statistics

// Report is the machine-readable summary written by `uno simulate --out`
type Report struct {
	Games     int        `json:"games"`
	Completed int        `json:"completed"`
	Abandoned int        `json:"abandoned"`
	Seed      int64      `json:"seed"`
	MeanTurns float64    `json:"mean_turns"`
	Median    float64    `json:"median_turns"`
	StdDev    float64    `json:"stddev_turns"`
	StdError  float64    `json:"stderr_turns"`
	CI95      [2]float64 `json:"ci95_turns"`
	P5        float64    `json:"p5_turns"`
	P95       float64    `json:"p95_turns"`
	MaxTurns  int        `json:"max_turns"`
	Recycles  int        `json:"recycles"`
	Penalties int        `json:"uno_penalties"`

	Seats      []SeatReport     `json:"seats"`
	Strategies []StrategyReport `json:"strategies"`
}

// SeatReport is the per-seat part of a Report
type SeatReport struct {
	Seat    int     `json:"seat"`
	Games   int     `json:"games"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"win_rate"`
}

// StrategyReport is the per-strategy part of a Report
type StrategyReport struct {
	Strategy string  `json:"strategy"`
	Seats    int     `json:"seats"`
	Wins     int     `json:"wins"`
	WinRate  float64 `json:"win_rate"`
}

// Report builds the summary of the statistics so far
func (s *Statistics) Report(seed int64) Report {
	low, high := s.ConfidenceInterval95()
	r := Report{
		Games:     s.Games,
		Completed: s.Completed,
		Abandoned: s.Abandoned,
		Seed:      seed,
		MeanTurns: s.Mean(),
		Median:    s.Median(),
		StdDev:    s.StdDev(),
		StdError:  s.StdError(),
		CI95:      [2]float64{low, high},
		P5:        s.Percentile(0.05),
		P95:       s.Percentile(0.95),
		MaxTurns:  s.MaxTurns,
		Recycles:  s.Recycles,
		Penalties: s.Penalties,
	}
	for _, seat := range s.Seats() {
		ss := s.SeatResults[seat]
		r.Seats = append(r.Seats, SeatReport{Seat: seat, Games: ss.Games, Wins: ss.Wins, WinRate: s.SeatWinRate(seat)})
	}
	for _, name := range s.Strategies() {
		ss := s.StrategyResults[name]
		r.Strategies = append(r.Strategies, StrategyReport{Strategy: name, Seats: ss.Seats, Wins: ss.Wins, WinRate: s.StrategyWinRate(name)})
	}
	return r
}
