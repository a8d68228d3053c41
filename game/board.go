package game

// Board is the 81-cell grid. The zero value is an empty board. A board is
// exclusively owned by one Game; anything that needs a hypothetical mutation
// works on a Clone.
type Board struct {
	cells [Cells]string
}

func NewBoard() *Board {
	return &Board{}
}

// At returns the symbol at c, or the empty string for a free cell. c must be
// valid.
func (b *Board) At(c Coordinate) string {
	return b.cells[c.Index()]
}

// Place writes symbol at c. Validation happens before the write: a failed
// Place leaves the board untouched.
func (b *Board) Place(symbol string, c Coordinate) error {
	if !c.Valid() {
		return ErrInvalidPosition
	}
	i := c.Index()
	if b.cells[i] != "" {
		return ErrCellOccupied
	}
	b.cells[i] = symbol
	return nil
}

// Unplace frees the cell at c. A live Game never unplaces; this exists so
// search can backtrack on a cloned board without reallocating per node.
func (b *Board) Unplace(c Coordinate) {
	b.cells[c.Index()] = ""
}

// Clone returns an independent deep copy.
func (b *Board) Clone() *Board {
	clone := *b
	return &clone
}

// MoveCount counts occupied cells.
func (b *Board) MoveCount() int {
	count := 0
	for _, symbol := range b.cells {
		if symbol != "" {
			count++
		}
	}
	return count
}

// Full reports whether no free cell remains.
func (b *Board) Full() bool {
	return b.MoveCount() == Cells
}

// EmptyCoordinates lists the free cells in ascending flat-index order.
func (b *Board) EmptyCoordinates() []Coordinate {
	free := []Coordinate{}
	for i, symbol := range b.cells {
		if symbol == "" {
			free = append(free, CoordinateAt(i))
		}
	}
	return free
}

// Grid returns the board in nested [w][x][y][z] form for external callers
// that want the 4D shape rather than the flat one.
func (b *Board) Grid() [AxisSize][AxisSize][AxisSize][AxisSize]string {
	var grid [AxisSize][AxisSize][AxisSize][AxisSize]string
	for i, symbol := range b.cells {
		c := CoordinateAt(i)
		grid[c.W][c.X][c.Y][c.Z] = symbol
	}
	return grid
}
