package game

// Player is one seat at the table. Symbol marks the player's cells on the
// board and must be unique within a game.
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Bot    bool   `json:"bot"`
}
