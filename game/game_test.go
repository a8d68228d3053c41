package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func testPlayers(n int) []Player {
	symbols := []string{"X", "O", "A", "B", "C"}
	players := make([]Player, n)
	for i := 0; i < n; i++ {
		players[i] = Player{
			ID:     fmt.Sprintf("p%d", i+1),
			Name:   fmt.Sprintf("Player%d", i+1),
			Symbol: symbols[i],
		}
	}
	return players
}

func startedGame(t *testing.T, n int) *Game {
	t.Helper()
	g, err := NewGameWithPlayers(testPlayers(n)...)
	require.NoError(t, err)
	require.NoError(t, g.Start())
	return g
}

func TestAddPlayer(t *testing.T) {
	t.Run("seating up to five players", func(t *testing.T) {
		g := NewGame()
		for _, p := range testPlayers(MaxPlayers) {
			require.NoError(t, g.AddPlayer(p))
		}

		err := g.AddPlayer(Player{ID: "p6", Name: "Player6", Symbol: "D"})

		require.ErrorIs(t, err, ErrGameFull)
		require.Len(t, g.Players(), MaxPlayers)
	})

	t.Run("rejecting bad symbols", func(t *testing.T) {
		g := NewGame()

		require.ErrorIs(t, g.AddPlayer(Player{ID: "p1", Symbol: ""}), ErrInvalidSymbol)
		require.ErrorIs(t, g.AddPlayer(Player{ID: "p1", Symbol: "XYZ"}), ErrInvalidSymbol)
		require.NoError(t, g.AddPlayer(Player{ID: "p1", Symbol: "XO"}), "Two characters should be allowed")
		require.NoError(t, g.AddPlayer(Player{ID: "p2", Symbol: "✕"}), "A single multibyte rune should be allowed")
	})

	t.Run("rejecting a taken symbol", func(t *testing.T) {
		g := NewGame()
		require.NoError(t, g.AddPlayer(Player{ID: "p1", Symbol: "X"}))

		err := g.AddPlayer(Player{ID: "p2", Symbol: "X"})

		require.ErrorIs(t, err, ErrDuplicateSymbol)
		require.Len(t, g.Players(), 1)
	})

	t.Run("rejecting seating after the game started", func(t *testing.T) {
		g := startedGame(t, MinPlayers)

		err := g.AddPlayer(Player{ID: "p9", Symbol: "D"})

		require.ErrorIs(t, err, ErrGameStarted)
	})
}

func TestStart(t *testing.T) {
	t.Run("requiring at least four players", func(t *testing.T) {
		g, err := NewGameWithPlayers(testPlayers(3)...)
		require.NoError(t, err)

		err = g.Start()

		require.ErrorIs(t, err, ErrInsufficientPlayers)
		require.Equal(t, StatusWaiting, g.Status(), "A failed start should leave the game waiting")
	})

	t.Run("starting with four players", func(t *testing.T) {
		g, err := NewGameWithPlayers(testPlayers(4)...)
		require.NoError(t, err)

		require.NoError(t, g.Start())

		require.Equal(t, StatusPlaying, g.Status())
		current, ok := g.CurrentPlayer()
		require.True(t, ok)
		require.Equal(t, "X", current.Symbol, "The first seat should act first")
	})

	t.Run("starting with five players", func(t *testing.T) {
		g := startedGame(t, 5)

		require.Equal(t, StatusPlaying, g.Status())
		require.Len(t, g.Players(), 5)
	})

	t.Run("rejecting a second start", func(t *testing.T) {
		g := startedGame(t, 4)

		err := g.Start()

		require.ErrorIs(t, err, ErrGameStarted)
	})
}

func TestNewGameWithPlayers(t *testing.T) {
	players := testPlayers(4)
	players[3].Symbol = "X"

	_, err := NewGameWithPlayers(players...)

	require.ErrorIs(t, err, ErrDuplicateSymbol)
}

func TestApplyMove(t *testing.T) {
	t.Run("rejecting moves before the game starts", func(t *testing.T) {
		g, err := NewGameWithPlayers(testPlayers(4)...)
		require.NoError(t, err)

		err = g.ApplyMove("p1", Coordinate{0, 0, 0, 0})

		require.ErrorIs(t, err, ErrGameNotInProgress)
	})

	t.Run("rejecting a move out of turn", func(t *testing.T) {
		g := startedGame(t, 4)

		err := g.ApplyMove("p2", Coordinate{0, 0, 0, 0})

		require.ErrorIs(t, err, ErrNotYourTurn)
		current, _ := g.CurrentPlayer()
		require.Equal(t, "p1", current.ID, "The turn should not move on a failed attempt")
		require.Equal(t, 0, g.MoveCount())
	})

	t.Run("rejecting an occupied cell without any state change", func(t *testing.T) {
		g := startedGame(t, 4)
		c := Coordinate{1, 1, 1, 1}
		require.NoError(t, g.ApplyMove("p1", c))

		err := g.ApplyMove("p2", c)

		require.ErrorIs(t, err, ErrCellOccupied)
		require.Equal(t, "X", g.Snapshot().Board.At(c), "The cell should keep its original symbol")
		require.Equal(t, 1, g.MoveCount(), "No move should be recorded")
		current, _ := g.CurrentPlayer()
		require.Equal(t, "p2", current.ID, "The failed player should stay on turn")
	})

	t.Run("rejecting an out of range coordinate", func(t *testing.T) {
		g := startedGame(t, 4)

		err := g.ApplyMove("p1", Coordinate{0, 0, 0, 3})

		require.ErrorIs(t, err, ErrInvalidPosition)
		require.Equal(t, 0, g.MoveCount())
	})

	t.Run("recording a move and passing the turn", func(t *testing.T) {
		g := startedGame(t, 4)
		c := Coordinate{2, 1, 0, 2}

		require.NoError(t, g.ApplyMove("p1", c))

		require.Equal(t, "X", g.Snapshot().Board.At(c))
		history := g.History()
		require.Len(t, history, 1)
		require.Equal(t, Move{PlayerID: "p1", Symbol: "X", Coordinate: c, Seq: 1}, history[0])
		current, _ := g.CurrentPlayer()
		require.Equal(t, "p2", current.ID)
	})
}

func TestTurnRotation(t *testing.T) {
	cells := []int{1, 3, 2, 0, 5, 7, 4, 8, 6, 12}
	for _, seats := range []int{4, 5} {
		t.Run(fmt.Sprintf("rotating strictly through %d seats", seats), func(t *testing.T) {
			g := startedGame(t, seats)

			// Two cells per player at most, so the game cannot end
			for i := 0; i < seats+2; i++ {
				current, ok := g.CurrentPlayer()
				require.True(t, ok)
				require.Equal(t, fmt.Sprintf("p%d", i%seats+1), current.ID, "Move %d should belong to seat %d", i, i%seats)
				require.NoError(t, g.ApplyMove(current.ID, CoordinateAt(cells[i])))
			}
		})
	}
}

func TestWinEndsGame(t *testing.T) {
	g := startedGame(t, 4)

	// Player X collects (0,0,0,0), (0,1,0,0), (0,2,0,0) while the other
	// players fill cells that neither win nor touch that line.
	script := []int{0, 54, 27, 80, 9, 63, 36, 8, 18}
	for k, cell := range script {
		require.Equal(t, StatusPlaying, g.Status(), "Game should still be running before move %d", k+1)
		current, ok := g.CurrentPlayer()
		require.True(t, ok)
		require.NoError(t, g.ApplyMove(current.ID, CoordinateAt(cell)))
	}

	require.Equal(t, StatusFinished, g.Status(), "The ninth move should finish the game")
	winner, ok := g.Winner()
	require.True(t, ok)
	require.Equal(t, "X", winner.Symbol)
	line, ok := g.WinningLine()
	require.True(t, ok)
	require.Equal(t, Line{CoordinateAt(0), CoordinateAt(9), CoordinateAt(18)}, line)
	require.Equal(t, len(script), g.MoveCount())

	t.Run("freezing the finished game", func(t *testing.T) {
		err := g.ApplyMove("p2", Coordinate{2, 2, 2, 2})
		require.ErrorIs(t, err, ErrGameNotInProgress)
		require.Equal(t, len(script), g.MoveCount(), "No move should be recorded after the end")

		_, ok := g.CurrentPlayer()
		require.False(t, ok, "A finished game has no player on turn")

		require.ErrorIs(t, g.Start(), ErrGameStarted, "A finished game should not restart")
	})
}

// drawScript fills the whole board without ever giving any of four
// round-robin players three colinear cells.
var drawScript = []int{
	1, 3, 2, 0, 5, 7, 4, 8, 6, 12, 9, 10, 11, 13, 14, 15, 19, 17, 18, 16,
	23, 22, 20, 21, 30, 24, 27, 25, 43, 26, 31, 32, 46, 28, 36, 33, 48, 29, 38, 34,
	51, 35, 39, 37, 56, 42, 47, 40, 60, 49, 52, 41, 68, 50, 59, 44, 69, 53, 65, 45,
	70, 55, 66, 54, 72, 58, 67, 57, 74, 62, 73, 61, 76, 64, 78, 63, 77, 75, 80, 71,
	79,
}

func TestDrawEndsGame(t *testing.T) {
	g := startedGame(t, 4)

	for k, cell := range drawScript {
		current, ok := g.CurrentPlayer()
		require.True(t, ok, "Game should still be running before move %d", k+1)
		require.NoError(t, g.ApplyMove(current.ID, CoordinateAt(cell)))
	}

	require.Equal(t, StatusFinished, g.Status())
	require.Equal(t, Cells, g.MoveCount())
	require.True(t, g.Snapshot().Board.Full())

	_, ok := g.Winner()
	require.False(t, ok, "A full board without a line should be a draw")
	_, ok = g.WinningLine()
	require.False(t, ok)
}

func TestHistory(t *testing.T) {
	g := startedGame(t, 4)
	cells := []int{1, 3, 2, 0}
	for _, cell := range cells {
		current, _ := g.CurrentPlayer()
		require.NoError(t, g.ApplyMove(current.ID, CoordinateAt(cell)))
	}

	history := g.History()
	require.Len(t, history, len(cells))
	for i, move := range history {
		require.Equal(t, i+1, move.Seq, "Sequence numbers should start at 1")
		require.Equal(t, CoordinateAt(cells[i]), move.Coordinate)
	}

	history[0].Symbol = "tampered"
	require.Equal(t, "X", g.History()[0].Symbol, "History should be a detached copy")
}

func TestSnapshot(t *testing.T) {
	t.Run("detaching the board", func(t *testing.T) {
		g := startedGame(t, 4)
		snap := g.Snapshot()

		require.NoError(t, snap.Board.Place("O", Coordinate{0, 0, 0, 0}))

		require.Equal(t, "", g.Snapshot().Board.At(Coordinate{0, 0, 0, 0}), "Writing to a snapshot should not touch the game")
	})

	t.Run("detaching the seat list", func(t *testing.T) {
		g := startedGame(t, 4)
		snap := g.Snapshot()

		snap.Players[0].Symbol = "tampered"

		require.Equal(t, "X", g.Players()[0].Symbol)
	})

	t.Run("reporting the player on turn", func(t *testing.T) {
		g := startedGame(t, 4)
		require.NoError(t, g.ApplyMove("p1", Coordinate{1, 1, 1, 1}))

		snap := g.Snapshot()

		require.Equal(t, StatusPlaying, snap.Status)
		require.Equal(t, 1, snap.MoveCount)
		current, ok := snap.CurrentPlayer()
		require.True(t, ok)
		require.Equal(t, "p2", current.ID)
		require.Nil(t, snap.Winner)
	})

	t.Run("carrying the outcome once finished", func(t *testing.T) {
		g := startedGame(t, 4)
		for _, cell := range []int{0, 54, 27, 80, 9, 63, 36, 8, 18} {
			current, _ := g.CurrentPlayer()
			require.NoError(t, g.ApplyMove(current.ID, CoordinateAt(cell)))
		}

		snap := g.Snapshot()

		require.Equal(t, StatusFinished, snap.Status)
		require.NotNil(t, snap.Winner)
		require.Equal(t, "X", snap.Winner.Symbol)
		require.NotNil(t, snap.WinningLine)
		_, ok := snap.CurrentPlayer()
		require.False(t, ok)
	})
}
