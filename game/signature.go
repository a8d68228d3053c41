package game

// PatternSignature encodes the board as an 81-byte key for learned move
// statistics. Cells map to seat-relative letters: the acting player's cells
// become 'A', the seat after them 'B', and so on around the table; free cells
// become '.'. Two boards that look alike from their acting players' seats
// share a signature even when the actual symbols differ, which lets
// statistics gathered under one symbol assignment transfer to another.
func PatternSignature(b *Board, players []Player, actor int) string {
	letters := make(map[string]byte, len(players))
	for seat := range players {
		letters[players[seat].Symbol] = byte('A' + (seat-actor+len(players))%len(players))
	}

	var signature [Cells]byte
	for i, symbol := range b.cells {
		if symbol == "" {
			signature[i] = '.'
			continue
		}
		letter, ok := letters[symbol]
		if !ok {
			letter = '?'
		}
		signature[i] = letter
	}
	return string(signature[:])
}
