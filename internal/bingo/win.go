package bingo

import "fmt"

// LineKind names the shape of a winning line.
type LineKind string

const (
	LineRow      LineKind = "row"
	LineColumn   LineKind = "column"
	LineDiagonal LineKind = "diagonal"
)

// Line identifies one of the twelve winning lines. For diagonals, Index 0
// runs from the top-left corner and Index 1 from the top-right.
type Line struct {
	Kind  LineKind `json:"kind"`
	Index int      `json:"index"`
}

func (l Line) String() string {
	switch l.Kind {
	case LineRow:
		return fmt.Sprintf("row %d", l.Index+1)
	case LineColumn:
		return fmt.Sprintf("column %c", letters[l.Index])
	case LineDiagonal:
		if l.Index == 0 {
			return "diagonal \\"
		}
		return "diagonal /"
	}
	return string(l.Kind)
}

func (l Line) cells() [Size][2]int {
	var out [Size][2]int
	for i := 0; i < Size; i++ {
		switch l.Kind {
		case LineRow:
			out[i] = [2]int{l.Index, i}
		case LineColumn:
			out[i] = [2]int{i, l.Index}
		case LineDiagonal:
			if l.Index == 0 {
				out[i] = [2]int{i, i}
			} else {
				out[i] = [2]int{i, Size - 1 - i}
			}
		}
	}
	return out
}

// Lines lists the twelve winning lines: five rows, five columns, then the two
// diagonals.
func Lines() []Line {
	lines := make([]Line, 0, 2*Size+2)
	for i := 0; i < Size; i++ {
		lines = append(lines, Line{Kind: LineRow, Index: i})
	}
	for i := 0; i < Size; i++ {
		lines = append(lines, Line{Kind: LineColumn, Index: i})
	}
	return append(lines, Line{Kind: LineDiagonal, Index: 0}, Line{Kind: LineDiagonal, Index: 1})
}

// WinningLine returns the first fully marked line on the card.
func WinningLine(c Card) (Line, bool) {
	for _, l := range Lines() {
		complete := true
		for _, rc := range l.cells() {
			if !c[rc[0]][rc[1]].Marked {
				complete = false
				break
			}
		}
		if complete {
			return l, true
		}
	}
	return Line{}, false
}

// IsWinning reports whether any row, column or full diagonal is marked.
func IsWinning(c Card) bool {
	_, ok := WinningLine(c)
	return ok
}
