package game

import "fmt"

// Board geometry: 4 axes, 3 cells per axis.
const (
	Axes     = 4
	AxisSize = 3
	Cells    = AxisSize * AxisSize * AxisSize * AxisSize
)

// Coordinate addresses one cell of the 3x3x3x3 board. Each component must be
// in {0, 1, 2} for the coordinate to be valid.
type Coordinate struct {
	W int `json:"w"`
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Valid reports whether every component is within the board.
func (c Coordinate) Valid() bool {
	return c.W >= 0 && c.W < AxisSize &&
		c.X >= 0 && c.X < AxisSize &&
		c.Y >= 0 && c.Y < AxisSize &&
		c.Z >= 0 && c.Z < AxisSize
}

// Index flattens a valid coordinate to an array index in [0, 80].
func (c Coordinate) Index() int {
	return c.W*27 + c.X*9 + c.Y*3 + c.Z
}

// CoordinateAt is the inverse of Index.
func CoordinateAt(index int) Coordinate {
	return Coordinate{
		W: index / 27,
		X: index / 9 % AxisSize,
		Y: index / 3 % AxisSize,
		Z: index % AxisSize,
	}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", c.W, c.X, c.Y, c.Z)
}
