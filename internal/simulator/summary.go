package simulator

import (
	"fmt"
	"io"
	"strings"

	"github.com/lox/unoforbots/internal/statistics"
)

// PrintSummary prints a comprehensive summary of simulation results
func PrintSummary(w io.Writer, stats *statistics.Statistics, seats []string) {
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== FINAL RESULTS (%s) ===\n", strings.Join(seats, " vs "))
	fmt.Fprintf(w, "Games played: %d (%d won, %d abandoned)\n", stats.Games, stats.Completed, stats.Abandoned)

	fmt.Fprintf(w, "\n=== GAME LENGTH ===\n")
	fmt.Fprintf(w, "Mean: %.2f turns\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.1f turns\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.2f turns\n", stats.StdDev())
	fmt.Fprintf(w, "Std Error: %.3f turns\n", stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%.2f, %.2f] turns\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.0f, P25=%.0f, P75=%.0f, P95=%.0f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))
	fmt.Fprintf(w, "Longest game: %d turns\n", stats.MaxTurns)

	fmt.Fprintf(w, "\n=== DECK & PENALTIES ===\n")
	fmt.Fprintf(w, "Discard pile recycled: %d times (%.2f per game)\n", stats.Recycles, perGame(stats.Recycles, stats.Games))
	fmt.Fprintf(w, "Uno penalties: %d (%.2f per game)\n", stats.Penalties, perGame(stats.Penalties, stats.Games))

	fmt.Fprintf(w, "\n=== STRATEGY ANALYSIS ===\n")
	for _, name := range stats.Strategies() {
		ss := stats.StrategyResults[name]
		fmt.Fprintf(w, "%-10s %d seats, %d wins, %.1f%% win rate\n", name, ss.Seats, ss.Wins, stats.StrategyWinRate(name)*100)
	}

	fmt.Fprintf(w, "\n=== POSITION ANALYSIS ===\n")
	for _, seat := range stats.Seats() {
		ss := stats.SeatResults[seat]
		fmt.Fprintf(w, "Seat %d: %d games, %d wins, %.1f%% win rate\n", seat+1, ss.Games, ss.Wins, stats.SeatWinRate(seat)*100)
	}
}

func perGame(n, games int) float64 {
	if games == 0 {
		return 0
	}
	return float64(n) / float64(games)
}
