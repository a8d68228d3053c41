package game

import "unicode/utf8"

// Seat limits.
const (
	MinPlayers = 4
	MaxPlayers = 5
)

type Status int

const (
	StatusWaiting Status = iota
	StatusPlaying
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusPlaying:
		return "playing"
	case StatusFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Move is one history entry: who played where, in order. Seq starts at 1.
type Move struct {
	PlayerID   string     `json:"player_id"`
	Symbol     string     `json:"symbol"`
	Coordinate Coordinate `json:"coordinate"`
	Seq        int        `json:"seq"`
}

// Game is the turn-based state machine: WAITING until started, PLAYING while
// moves are applied, FINISHED forever once a line completes or the board
// fills. Exactly one caller mutates a Game at a time; serializing concurrent
// clients is the transport layer's problem, not the engine's.
type Game struct {
	players     []Player
	board       *Board
	checker     *WinChecker
	status      Status
	turn        int
	history     []Move
	winner      *Player
	winningLine *Line
}

// NewGame returns a WAITING game with no seats taken.
func NewGame() *Game {
	return &Game{
		board:   NewBoard(),
		checker: DefaultWinChecker(),
	}
}

// NewGameWithPlayers seats the given players in order on a fresh game.
func NewGameWithPlayers(players ...Player) (*Game, error) {
	g := NewGame()
	for _, p := range players {
		if err := g.AddPlayer(p); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// AddPlayer seats p. Seating is only possible before Start.
func (g *Game) AddPlayer(p Player) error {
	if g.status != StatusWaiting {
		return ErrGameStarted
	}
	if len(g.players) >= MaxPlayers {
		return ErrGameFull
	}
	if n := utf8.RuneCountInString(p.Symbol); n < 1 || n > 2 {
		return ErrInvalidSymbol
	}
	for _, seated := range g.players {
		if seated.Symbol == p.Symbol {
			return ErrDuplicateSymbol
		}
	}
	g.players = append(g.players, p)
	return nil
}

// Start moves the game from WAITING to PLAYING with the first seat to act.
// The seat list is validated as a whole here: 4 or 5 players, all symbols
// distinct.
func (g *Game) Start() error {
	if g.status != StatusWaiting {
		return ErrGameStarted
	}
	if len(g.players) < MinPlayers || len(g.players) > MaxPlayers {
		return ErrInsufficientPlayers
	}
	taken := map[string]bool{}
	for _, p := range g.players {
		if taken[p.Symbol] {
			return ErrDuplicateSymbol
		}
		taken[p.Symbol] = true
	}

	g.board = NewBoard()
	g.history = nil
	g.turn = 0
	g.winner = nil
	g.winningLine = nil
	g.status = StatusPlaying
	return nil
}

// ApplyMove plays the current player's move at c. All validation happens
// before any write, so a failed move leaves the game exactly as it was. On
// success the move is recorded, the board is asked for a completed line, and
// the game either finishes (win or full-board draw) or passes the turn to the
// next seat.
func (g *Game) ApplyMove(playerID string, c Coordinate) error {
	if g.status != StatusPlaying {
		return ErrGameNotInProgress
	}
	current := g.players[g.turn]
	if current.ID != playerID {
		return ErrNotYourTurn
	}
	if err := g.board.Place(current.Symbol, c); err != nil {
		return err
	}

	g.history = append(g.history, Move{
		PlayerID:   current.ID,
		Symbol:     current.Symbol,
		Coordinate: c,
		Seq:        len(g.history) + 1,
	})

	if line, ok := g.checker.WinAt(g.board, c); ok {
		winner := current
		g.winner = &winner
		g.winningLine = &line
		g.status = StatusFinished
		return nil
	}
	if g.board.Full() {
		g.status = StatusFinished
		return nil
	}
	g.turn = (g.turn + 1) % len(g.players)
	return nil
}

func (g *Game) Status() Status {
	return g.status
}

// Players returns the seats in turn order.
func (g *Game) Players() []Player {
	players := make([]Player, len(g.players))
	copy(players, g.players)
	return players
}

// CurrentPlayer returns the seat to act, or false outside PLAYING.
func (g *Game) CurrentPlayer() (Player, bool) {
	if g.status != StatusPlaying {
		return Player{}, false
	}
	return g.players[g.turn], true
}

// Winner returns the winning player, or false while unfinished or drawn.
func (g *Game) Winner() (Player, bool) {
	if g.winner == nil {
		return Player{}, false
	}
	return *g.winner, true
}

// WinningLine returns the line that ended the game, or false if there is
// none.
func (g *Game) WinningLine() (Line, bool) {
	if g.winningLine == nil {
		return Line{}, false
	}
	return *g.winningLine, true
}

// History returns the moves played so far, in order.
func (g *Game) History() []Move {
	history := make([]Move, len(g.history))
	copy(history, g.history)
	return history
}

func (g *Game) MoveCount() int {
	return len(g.history)
}

// Snapshot is a read-only view of a game. The board is a detached copy, so a
// strategy may probe it freely without touching the live game.
type Snapshot struct {
	Status      Status
	Board       *Board
	Players     []Player
	Turn        int
	MoveCount   int
	Winner      *Player
	WinningLine *Line
}

// CurrentPlayer returns the seat to act, or false outside PLAYING.
func (s Snapshot) CurrentPlayer() (Player, bool) {
	if s.Status != StatusPlaying || s.Turn >= len(s.Players) {
		return Player{}, false
	}
	return s.Players[s.Turn], true
}

// Snapshot captures the game for strategies and external callers.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Status:    g.status,
		Board:     g.board.Clone(),
		Players:   g.Players(),
		Turn:      g.turn,
		MoveCount: len(g.history),
	}
	if g.winner != nil {
		winner := *g.winner
		snap.Winner = &winner
	}
	if g.winningLine != nil {
		line := *g.winningLine
		snap.WinningLine = &line
	}
	return snap
}
