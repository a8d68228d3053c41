package ai

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mensly/4dttt/game"
)

func TestBuildStats(t *testing.T) {
	t.Run("counting each move under the mover's view", func(t *testing.T) {
		record := Record{
			Symbols: []string{"X", "O", "A", "B"},
			Moves: []RecordedMove{
				{Symbol: "X", Coordinate: game.CoordinateAt(5)},
				{Symbol: "O", Coordinate: game.CoordinateAt(10)},
			},
			Winner: "X",
		}

		stats := BuildStats([]Record{record})

		emptySig := strings.Repeat(".", game.Cells)
		require.Contains(t, stats, emptySig)
		require.Equal(t, MoveStat{Wins: 1, Plays: 1}, stats[emptySig][5], "The winner's move should count as a win")

		// The second mover sees the previous seat's cell as its last letter
		second := []byte(emptySig)
		second[5] = 'D'
		require.Equal(t, MoveStat{Wins: 0, Plays: 1}, stats[string(second)][10], "The loser's move should count as a play only")
	})

	t.Run("aggregating across games", func(t *testing.T) {
		first := Record{
			Symbols: []string{"X", "O", "A", "B"},
			Moves:   []RecordedMove{{Symbol: "X", Coordinate: game.CoordinateAt(40)}},
			Winner:  "X",
		}
		second := Record{
			Symbols: []string{"X", "O", "A", "B"},
			Moves:   []RecordedMove{{Symbol: "X", Coordinate: game.CoordinateAt(40)}},
			Winner:  "O",
		}

		stats := BuildStats([]Record{first, second})

		require.Equal(t, MoveStat{Wins: 1, Plays: 2}, stats[strings.Repeat(".", game.Cells)][40])
	})

	t.Run("stopping at a corrupt move", func(t *testing.T) {
		record := Record{
			Symbols: []string{"X", "O", "A", "B"},
			Moves: []RecordedMove{
				{Symbol: "X", Coordinate: game.CoordinateAt(5)},
				{Symbol: "O", Coordinate: game.CoordinateAt(5)}, // Same cell twice
				{Symbol: "A", Coordinate: game.CoordinateAt(6)},
			},
			Winner: "X",
		}

		stats := BuildStats([]Record{record})

		total := 0
		for _, moves := range stats {
			for _, stat := range moves {
				total += stat.Plays
			}
		}
		require.Equal(t, 1, total, "Counting should stop where the replay breaks")
	})
}

func TestLearnedChooseMove(t *testing.T) {
	emptySig := strings.Repeat(".", game.Cells)

	t.Run("playing the best known move", func(t *testing.T) {
		stats := Stats{emptySig: {5: {Wins: 2, Plays: 2}, 7: {Wins: 1, Plays: 2}}}
		l := NewLearned(WithStats(stats))
		snap := testSnapshot(t, nil, "X", "O", "A", "B")

		got, err := l.ChooseMove(snap, "X")

		require.NoError(t, err)
		require.Equal(t, game.CoordinateAt(5), got, "The higher win rate should be picked")
	})

	t.Run("breaking equal rates by more plays", func(t *testing.T) {
		stats := Stats{emptySig: {5: {Wins: 1, Plays: 2}, 7: {Wins: 2, Plays: 4}}}
		l := NewLearned(WithStats(stats))
		snap := testSnapshot(t, nil, "X", "O", "A", "B")

		got, err := l.ChooseMove(snap, "X")

		require.NoError(t, err)
		require.Equal(t, game.CoordinateAt(7), got, "More evidence should win an equal rate")
	})

	t.Run("breaking full ties by the lowest cell", func(t *testing.T) {
		stats := Stats{emptySig: {7: {Wins: 1, Plays: 2}, 5: {Wins: 1, Plays: 2}}}
		l := NewLearned(WithStats(stats))
		snap := testSnapshot(t, nil, "X", "O", "A", "B")

		got, err := l.ChooseMove(snap, "X")

		require.NoError(t, err)
		require.Equal(t, game.CoordinateAt(5), got)
	})

	t.Run("ignoring stats for occupied cells", func(t *testing.T) {
		sig := []byte(emptySig)
		sig[5] = 'B'
		stats := Stats{string(sig): {5: {Wins: 9, Plays: 9}}}
		l := NewLearned(WithStats(stats))
		snap := testSnapshot(t, map[int]string{5: "O"}, "X", "O", "A", "B")

		got, err := l.ChooseMove(snap, "X")

		require.NoError(t, err)
		require.Equal(t, game.CoordinateAt(40), got, "Occupied cells should fall through to the heuristic")
	})

	t.Run("skipping unplayed entries", func(t *testing.T) {
		stats := Stats{emptySig: {5: {Wins: 0, Plays: 0}}}
		l := NewLearned(WithStats(stats))
		snap := testSnapshot(t, nil, "X", "O", "A", "B")

		got, err := l.ChooseMove(snap, "X")

		require.NoError(t, err)
		require.Equal(t, game.CoordinateAt(40), got)
	})

	t.Run("falling back on unknown boards", func(t *testing.T) {
		l := NewLearned()
		snap := testSnapshot(t, nil, "X", "O", "A", "B")

		got, err := l.ChooseMove(snap, "X")

		require.NoError(t, err)
		require.Equal(t, game.CoordinateAt(40), got, "The heuristic ladder should decide")
	})

	t.Run("failing on a full board", func(t *testing.T) {
		_, err := NewLearned().ChooseMove(fullSnapshot(t), "X")

		require.ErrorIs(t, err, game.ErrNoLegalMove)
	})
}

func TestStatsRoundTrip(t *testing.T) {
	stats := Stats{
		strings.Repeat(".", game.Cells): {5: {Wins: 2, Plays: 3}, 40: {Wins: 1, Plays: 1}},
	}

	t.Run("through a plain json file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "stats.json")

		require.NoError(t, SaveStats(path, stats))
		got, err := LoadStats(path)

		require.NoError(t, err)
		require.Equal(t, stats, got)
	})

	t.Run("through a gzipped file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "stats.json.gz")

		require.NoError(t, SaveStats(path, stats))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.True(t, len(data) > 2 && data[0] == 0x1f && data[1] == 0x8b, "File should actually be gzipped")

		got, err := LoadStats(path)
		require.NoError(t, err)
		require.Equal(t, stats, got)
	})

	t.Run("failing on a missing file", func(t *testing.T) {
		_, err := LoadStats(filepath.Join(t.TempDir(), "missing.json"))

		require.Error(t, err)
	})
}
