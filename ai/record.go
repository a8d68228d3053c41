package ai

import "github.com/mensly/4dttt/game"

// Record is the training interchange for one finished game: the symbols in
// seating order, every move as played, and the terminal outcome. Winner is
// empty for a draw.
type Record struct {
	Symbols []string       `json:"symbols"`
	Moves   []RecordedMove `json:"moves"`
	Winner  string         `json:"winner,omitempty"`
	Draw    bool           `json:"draw"`
}

type RecordedMove struct {
	Symbol     string          `json:"symbol"`
	Coordinate game.Coordinate `json:"coordinate"`
}

// BuildStats reduces a record corpus into per-signature move statistics.
// Replaying each game, every move is keyed by the mover's view of the board
// just before it was played; the move counts as a win when the mover went on
// to win that game.
func BuildStats(records []Record) Stats {
	stats := Stats{}
	for _, record := range records {
		players := make([]game.Player, len(record.Symbols))
		seats := make(map[string]int, len(record.Symbols))
		for i, symbol := range record.Symbols {
			players[i] = game.Player{Symbol: symbol}
			seats[symbol] = i
		}

		board := game.NewBoard()
		for _, move := range record.Moves {
			seat, ok := seats[move.Symbol]
			if !ok {
				break
			}
			signature := game.PatternSignature(board, players, seat)
			if err := board.Place(move.Symbol, move.Coordinate); err != nil {
				break // Corrupt record, keep what was counted so far
			}

			moves := stats[signature]
			if moves == nil {
				moves = map[int]MoveStat{}
				stats[signature] = moves
			}
			stat := moves[move.Coordinate.Index()]
			stat.Plays++
			if record.Winner == move.Symbol {
				stat.Wins++
			}
			moves[move.Coordinate.Index()] = stat
		}
	}
	return stats
}
