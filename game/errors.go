package game

import "errors"

// Sentinel errors for every way a board, game or strategy call can be
// rejected. Callers match them with errors.Is; the engine returns them
// unwrapped and never logs or retries on its own.
var (
	ErrInvalidPosition     = errors.New("position out of range")
	ErrCellOccupied        = errors.New("cell already occupied")
	ErrNotYourTurn         = errors.New("not your turn")
	ErrGameNotInProgress   = errors.New("game not in progress")
	ErrInsufficientPlayers = errors.New("need 4 or 5 players")
	ErrDuplicateSymbol     = errors.New("symbol already taken")
	ErrInvalidSymbol       = errors.New("symbol must be 1 or 2 characters")
	ErrGameFull            = errors.New("game is full")
	ErrGameStarted         = errors.New("game already started")
	ErrNoLegalMove         = errors.New("no legal move available")
)
