package ai

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mensly/4dttt/game"
)

// Score sentinels. Leaf evaluations stay within (-1000, 1000) because the
// board only has 272 lines, so a found win or loss always dominates.
const (
	WinScore  = 1000
	LossScore = -1000
	DrawScore = 0

	DefaultDepth = 2
)

// Minimax searches a depth-limited game tree with alpha-beta pruning. The
// 4-5 player game collapses into two roles: the acting symbol maximizes and
// every other symbol shares a single adversarial minimizing ply. That is an
// approximation of the real N-player game, kept because exact N-player search
// is both intractable at this branching factor and game-theoretically murky.
// Root candidates are independent subtrees, searched in parallel one worker
// per candidate board copy; moves inside the tree backtrack on an undo stack
// instead of cloning per node.
type Minimax struct {
	checker   *game.WinChecker
	depth     int
	workers   int
	collector Collector
}

func NewMinimax(options ...Option) *Minimax {
	s := newSettings(options)
	return &Minimax{
		checker:   game.DefaultWinChecker(),
		depth:     s.depth,
		workers:   s.workers,
		collector: s.collector,
	}
}

func (m *Minimax) ChooseMove(snap game.Snapshot, symbol string) (game.Coordinate, error) {
	m.collector.Start(m.depth, m.workers)

	free := snap.Board.EmptyCoordinates()
	if len(free) == 0 {
		return game.Coordinate{}, game.ErrNoLegalMove
	}
	opponents := opponentSymbols(snap.Players, symbol)

	// Take an immediate win, then a forced block, before any search
	for _, c := range free {
		if m.checker.CompletesLine(snap.Board, c, symbol) {
			m.collector.SetFastPath(true)
			return c, nil
		}
	}
	for _, c := range free {
		for _, opponent := range opponents {
			if m.checker.CompletesLine(snap.Board, c, opponent) {
				m.collector.SetFastPath(true)
				return c, nil
			}
		}
	}

	candidates := m.ordered(free)
	scores := make([]int, len(candidates))

	task := make(chan int, len(candidates))
	for i := range candidates {
		task <- i
	}
	close(task)

	var wg sync.WaitGroup
	for w := 0; w < m.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			board := snap.Board.Clone()
			for i := range task {
				scores[i] = m.scoreCandidate(board, candidates[i], symbol, opponents)
			}
		}()
	}
	wg.Wait()

	// First maximum wins ties: candidates are ordered most connected first,
	// then lowest coordinate, so the result is deterministic regardless of
	// worker scheduling
	best := 0
	for i := 1; i < len(candidates); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return candidates[best], nil
}

// scoreCandidate plays one root move on the worker's own board and searches
// the reply tree under it.
func (m *Minimax) scoreCandidate(board *game.Board, c game.Coordinate, symbol string, opponents []string) int {
	mustPlace(board, symbol, c)
	defer board.Unplace(c)
	m.collector.AddNode()

	if _, won := m.checker.WinAt(board, c); won {
		return WinScore
	}
	if board.Full() {
		return DrawScore
	}
	return m.search(board, symbol, opponents, m.depth-1, LossScore-1, WinScore+1, false)
}

// search is plain depth-limited alpha-beta over the two collapsed roles. The
// minimizing ply tries every free cell for every opposing symbol.
func (m *Minimax) search(board *game.Board, symbol string, opponents []string, depth, alpha, beta int, maximizing bool) int {
	if depth <= 0 {
		return m.evaluate(board, symbol, opponents)
	}
	free := m.ordered(board.EmptyCoordinates())
	if len(free) == 0 {
		return DrawScore
	}

	if maximizing {
		best := LossScore - 1
		for _, c := range free {
			mustPlace(board, symbol, c)
			m.collector.AddNode()

			var score int
			if _, won := m.checker.WinAt(board, c); won {
				score = WinScore
			} else {
				score = m.search(board, symbol, opponents, depth-1, alpha, beta, false)
			}
			board.Unplace(c)

			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
			if alpha >= beta {
				m.collector.AddCutoff()
				break
			}
		}
		return best
	}

	best := WinScore + 1
	for _, c := range free {
		for _, opponent := range opponents {
			mustPlace(board, opponent, c)
			m.collector.AddNode()

			var score int
			if _, won := m.checker.WinAt(board, c); won {
				score = LossScore
			} else {
				score = m.search(board, symbol, opponents, depth-1, alpha, beta, true)
			}
			board.Unplace(c)

			if score < best {
				best = score
			}
			if best < beta {
				beta = best
			}
			if alpha >= beta {
				m.collector.AddCutoff()
				return best
			}
		}
	}
	return best
}

// evaluate scores a cutoff position as the acting symbol's near-wins minus
// every opponent's.
func (m *Minimax) evaluate(board *game.Board, symbol string, opponents []string) int {
	score := m.checker.NearWins(board, symbol)
	for _, opponent := range opponents {
		score -= m.checker.NearWins(board, opponent)
	}
	return score
}

// ordered sorts candidates by winning-line count descending so likely strong
// moves are searched first and pruning bites earlier. The input is in
// flat-index order and the sort is stable, so equally connected cells keep
// the lowest coordinate first.
func (m *Minimax) ordered(free []game.Coordinate) []game.Coordinate {
	out := make([]game.Coordinate, len(free))
	copy(out, free)
	sort.SliceStable(out, func(i, j int) bool {
		return m.checker.LineCountThrough(out[i]) > m.checker.LineCountThrough(out[j])
	})
	return out
}

func opponentSymbols(players []game.Player, symbol string) []string {
	opponents := []string{}
	for _, p := range players {
		if p.Symbol != symbol {
			opponents = append(opponents, p.Symbol)
		}
	}
	return opponents
}

func mustPlace(board *game.Board, symbol string, c game.Coordinate) {
	if err := board.Place(symbol, c); err != nil {
		panic(fmt.Sprintf("search placed an illegal move at %s: %v", c, err))
	}
}
