package game

import "sync"

// Line is one winning line: 3 distinct colinear cells, stored in ascending
// flat-index order.
type Line [3]Coordinate

// WinChecker holds every straight 3-cell line of the board plus an inverted
// index from cell to the lines through it. Built once and read-only
// afterwards, so it is safe to share across games and goroutines without
// locking.
type WinChecker struct {
	lines   []Line
	through [Cells][]int // flat cell index -> indices into lines
}

var (
	sharedChecker *WinChecker
	checkerOnce   sync.Once
)

// DefaultWinChecker returns the process-wide checker, building it on first
// use.
func DefaultWinChecker() *WinChecker {
	checkerOnce.Do(func() {
		sharedChecker = NewWinChecker()
	})
	return sharedChecker
}

// NewWinChecker enumerates the winning lines. Every direction vector with
// components in {-1,0,1} is walked 3 steps from every cell; walks that leave
// the board are discarded and the same geometric line reached from either end
// collapses onto one canonical, sorted form. The 3x3x3x3 board yields exactly
// 272 lines this way.
func NewWinChecker() *WinChecker {
	checker := &WinChecker{}
	seen := map[[3]int]bool{}

	for start := 0; start < Cells; start++ {
		origin := CoordinateAt(start)
		for dw := -1; dw <= 1; dw++ {
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					for dz := -1; dz <= 1; dz++ {
						if dw == 0 && dx == 0 && dy == 0 && dz == 0 {
							continue
						}
						line, ok := walk(origin, dw, dx, dy, dz)
						if !ok {
							continue
						}
						key := [3]int{line[0].Index(), line[1].Index(), line[2].Index()}
						if seen[key] {
							continue
						}
						seen[key] = true
						index := len(checker.lines)
						checker.lines = append(checker.lines, line)
						for _, c := range line {
							checker.through[c.Index()] = append(checker.through[c.Index()], index)
						}
					}
				}
			}
		}
	}
	return checker
}

// walk takes 3 steps from origin along the direction and returns the cells
// sorted by flat index, or false if any step leaves the board.
func walk(origin Coordinate, dw, dx, dy, dz int) (Line, bool) {
	var line Line
	for step := 0; step < 3; step++ {
		c := Coordinate{
			W: origin.W + step*dw,
			X: origin.X + step*dx,
			Y: origin.Y + step*dy,
			Z: origin.Z + step*dz,
		}
		if !c.Valid() {
			return Line{}, false
		}
		line[step] = c
	}
	// 3 cells, insertion sort by flat index
	if line[0].Index() > line[1].Index() {
		line[0], line[1] = line[1], line[0]
	}
	if line[1].Index() > line[2].Index() {
		line[1], line[2] = line[2], line[1]
	}
	if line[0].Index() > line[1].Index() {
		line[0], line[1] = line[1], line[0]
	}
	return line, true
}

// Lines returns the full line table. Callers must treat it as read-only.
func (wc *WinChecker) Lines() []Line {
	return wc.lines
}

// LinesThrough returns the indices of the lines passing through c. Callers
// must treat the slice as read-only.
func (wc *WinChecker) LinesThrough(c Coordinate) []int {
	return wc.through[c.Index()]
}

// LineCountThrough reports how many winning lines cross c. The center cell
// sits on 40 lines, corners on 15.
func (wc *WinChecker) LineCountThrough(c Coordinate) int {
	return len(wc.through[c.Index()])
}

// WinAt reports whether the move last played at c completed a line. Only the
// lines through c are inspected, which is equivalent to scanning the whole
// table because a completing line necessarily contains the cell just played.
func (wc *WinChecker) WinAt(b *Board, c Coordinate) (Line, bool) {
	symbol := b.At(c)
	if symbol == "" {
		return Line{}, false
	}
	for _, index := range wc.through[c.Index()] {
		line := wc.lines[index]
		if b.At(line[0]) == symbol && b.At(line[1]) == symbol && b.At(line[2]) == symbol {
			return line, true
		}
	}
	return Line{}, false
}

// Scan checks the full table and returns the first completed line and its
// symbol. WinAt is the fast path; Scan exists for callers without a last
// move, and as the reference the fast path is tested against.
func (wc *WinChecker) Scan(b *Board) (Line, string, bool) {
	for _, line := range wc.lines {
		symbol := b.At(line[0])
		if symbol != "" && b.At(line[1]) == symbol && b.At(line[2]) == symbol {
			return line, symbol, true
		}
	}
	return Line{}, "", false
}

// CompletesLine reports whether placing symbol on the free cell c would
// finish a line, without mutating the board.
func (wc *WinChecker) CompletesLine(b *Board, c Coordinate, symbol string) bool {
	if b.At(c) != "" {
		return false
	}
	for _, index := range wc.through[c.Index()] {
		held := 0
		for _, cell := range wc.lines[index] {
			if cell == c {
				continue
			}
			if b.At(cell) != symbol {
				held = -1
				break
			}
			held++
		}
		if held == 2 {
			return true
		}
	}
	return false
}

// NearWins counts the lines where symbol holds exactly 2 cells and the third
// is free.
func (wc *WinChecker) NearWins(b *Board, symbol string) int {
	count := 0
	for _, line := range wc.lines {
		held, free := 0, 0
		for _, cell := range line {
			switch b.At(cell) {
			case symbol:
				held++
			case "":
				free++
			}
		}
		if held == 2 && free == 1 {
			count++
		}
	}
	return count
}
