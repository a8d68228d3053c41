package ai

import (
	"golang.org/x/exp/rand"

	"github.com/mensly/4dttt/game"
)

// Simple is the heuristic strategy. In strict priority order it takes a cell
// that wins outright, blocks a cell any opponent could win on, then prefers
// the free cell crossed by the most winning lines with ties broken by the
// lowest flat index. Only when every free cell is equally connected does it
// pick uniformly at random.
type Simple struct {
	checker *game.WinChecker
	rng     *rand.Rand
}

func NewSimple(options ...Option) *Simple {
	s := newSettings(options)
	return &Simple{
		checker: game.DefaultWinChecker(),
		rng:     rand.New(rand.NewSource(s.seed)),
	}
}

func (s *Simple) ChooseMove(snap game.Snapshot, symbol string) (game.Coordinate, error) {
	free := snap.Board.EmptyCoordinates()
	if len(free) == 0 {
		return game.Coordinate{}, game.ErrNoLegalMove
	}

	// Win now if any cell completes an own line
	for _, c := range free {
		if s.checker.CompletesLine(snap.Board, c, symbol) {
			return c, nil
		}
	}

	// Block the first cell any opponent could win on
	for _, c := range free {
		for _, p := range snap.Players {
			if p.Symbol == symbol {
				continue
			}
			if s.checker.CompletesLine(snap.Board, c, p.Symbol) {
				return c, nil
			}
		}
	}

	// Prefer the most connected cell; free is in flat-index order, so the
	// first maximum is also the lowest coordinate
	best := free[0]
	bestScore := s.checker.LineCountThrough(best)
	allEqual := true
	for _, c := range free[1:] {
		score := s.checker.LineCountThrough(c)
		if score != bestScore {
			allEqual = false
		}
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	if !allEqual {
		return best, nil
	}

	return free[s.rng.Intn(len(free))], nil
}
