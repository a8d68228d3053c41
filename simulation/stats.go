package simulation

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Summary aggregates a batch of results.
type Summary struct {
	Games        int
	Draws        int
	DrawRate     float64
	WinsBySymbol map[string]int
	WinsByName   map[string]int
	WinRate      map[string]float64 // Keyed by symbol
	AverageMoves float64
	TotalTime    time.Duration
	AverageTime  time.Duration
	LongestGame  int
	ShortestGame int
}

// Summarize reduces results to a Summary. An empty batch yields a zero value.
func Summarize(results []Result) Summary {
	summary := Summary{
		Games:        len(results),
		WinsBySymbol: map[string]int{},
		WinsByName:   map[string]int{},
		WinRate:      map[string]float64{},
	}
	if len(results) == 0 {
		return summary
	}

	totalMoves := 0
	summary.ShortestGame = results[0].Moves
	for _, result := range results {
		totalMoves += result.Moves
		summary.TotalTime += result.Duration
		if result.Moves > summary.LongestGame {
			summary.LongestGame = result.Moves
		}
		if result.Moves < summary.ShortestGame {
			summary.ShortestGame = result.Moves
		}
		if result.Draw {
			summary.Draws++
			continue
		}
		summary.WinsBySymbol[result.Winner]++
		summary.WinsByName[result.WinnerName]++
	}

	summary.DrawRate = float64(summary.Draws) / float64(summary.Games)
	for symbol, wins := range summary.WinsBySymbol {
		summary.WinRate[symbol] = float64(wins) / float64(summary.Games)
	}
	summary.AverageMoves = float64(totalMoves) / float64(summary.Games)
	summary.AverageTime = summary.TotalTime / time.Duration(summary.Games)
	return summary
}

// Log reports the summary at info level.
func (s Summary) Log() {
	log.Info().Msgf("played %d games in %s (average %s, %.1f moves)",
		s.Games, s.TotalTime, s.AverageTime, s.AverageMoves)
	log.Info().Msgf("draws: %d (%.1f%%)", s.Draws, s.DrawRate*100)
	for symbol, wins := range s.WinsBySymbol {
		log.Info().Msgf("%s won %d games (%.1f%%)", symbol, wins, s.WinRate[symbol]*100)
	}
}
