package ai

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mensly/4dttt/game"
)

// MoveStat counts how one candidate move fared under one signature.
type MoveStat struct {
	Wins  int `json:"wins"`
	Plays int `json:"plays"`
}

// Stats maps pattern signature -> flat cell index -> outcome counts. It is
// the offline product of BuildStats over simulated games.
type Stats map[string]map[int]MoveStat

// Learned plays the historically most successful move for the current board
// signature. Signatures it has never seen fall through to the heuristic
// ladder.
type Learned struct {
	stats    Stats
	fallback *Simple
}

func NewLearned(options ...Option) *Learned {
	s := newSettings(options)
	stats := s.stats
	if stats == nil {
		stats = Stats{}
	}
	return &Learned{
		stats:    stats,
		fallback: NewSimple(options...),
	}
}

func (l *Learned) ChooseMove(snap game.Snapshot, symbol string) (game.Coordinate, error) {
	free := snap.Board.EmptyCoordinates()
	if len(free) == 0 {
		return game.Coordinate{}, game.ErrNoLegalMove
	}

	if seat, ok := seatOf(snap.Players, symbol); ok {
		signature := game.PatternSignature(snap.Board, snap.Players, seat)
		if c, ok := l.bestKnownMove(signature, free); ok {
			return c, nil
		}
	}
	return l.fallback.ChooseMove(snap, symbol)
}

// bestKnownMove picks the free cell with the highest observed win rate, more
// plays deciding equal rates and the lowest coordinate deciding full ties.
func (l *Learned) bestKnownMove(signature string, free []game.Coordinate) (game.Coordinate, bool) {
	moves, ok := l.stats[signature]
	if !ok {
		return game.Coordinate{}, false
	}

	var best game.Coordinate
	var bestStat MoveStat
	found := false
	for _, c := range free {
		stat, ok := moves[c.Index()]
		if !ok || stat.Plays == 0 {
			continue
		}
		if !found || betterStat(stat, bestStat) {
			best, bestStat = c, stat
			found = true
		}
	}
	return best, found
}

// betterStat compares win rates by cross multiplication to stay exact in
// integers.
func betterStat(a, b MoveStat) bool {
	left := a.Wins * b.Plays
	right := b.Wins * a.Plays
	if left != right {
		return left > right
	}
	return a.Plays > b.Plays
}

func seatOf(players []game.Player, symbol string) (int, bool) {
	for i, p := range players {
		if p.Symbol == symbol {
			return i, true
		}
	}
	return 0, false
}

// LoadStats reads a statistics table from a JSON file, gunzipping when the
// path ends in .gz.
func LoadStats(path string) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stats file: %w", err)
	}
	defer f.Close()

	var stats Stats
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read gzip stats file: %w", err)
		}
		defer zr.Close()
		err = json.NewDecoder(zr).Decode(&stats)
		if err != nil {
			return nil, fmt.Errorf("failed to decode stats: %w", err)
		}
		return stats, nil
	}

	err = json.NewDecoder(f).Decode(&stats)
	if err != nil {
		return nil, fmt.Errorf("failed to decode stats: %w", err)
	}
	return stats, nil
}

// SaveStats writes a statistics table as JSON, gzipping when the path ends
// in .gz.
func SaveStats(path string, stats Stats) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create stats file: %w", err)
	}
	defer f.Close()

	if strings.HasSuffix(path, ".gz") {
		zw := gzip.NewWriter(f)
		if err := json.NewEncoder(zw).Encode(stats); err != nil {
			return fmt.Errorf("failed to encode stats: %w", err)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("failed to flush gzip stats: %w", err)
		}
		return nil
	}

	if err := json.NewEncoder(f).Encode(stats); err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}
	return nil
}
