// Package bingo holds the pure 75-ball bingo rules: dealing a card, checking
// it for a completed line, and drawing the next number from the remaining pool.
package bingo

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
)

const (
	// Size is the width and height of a card.
	Size = 5
	// MaxNumber is the highest number that can be called.
	MaxNumber = 75
	// Free is the value held by the free center cell.
	Free = 0

	columnSpan = MaxNumber / Size
	center     = Size / 2
)

const letters = "BINGO"

// Cell is one square of a card.
type Cell struct {
	Value  int
	Marked bool
	Row    int
	Col    int
}

// IsFree reports whether c is the free center square.
func (c Cell) IsFree() bool {
	return c.Value == Free
}

// MarshalJSON renders the free square's value as "FREE".
func (c Cell) MarshalJSON() ([]byte, error) {
	type cell struct {
		Value  any  `json:"value"`
		Marked bool `json:"marked"`
		Row    int  `json:"row"`
		Col    int  `json:"col"`
	}

	var v any = c.Value
	if c.IsFree() {
		v = "FREE"
	}

	return json.Marshal(cell{Value: v, Marked: c.Marked, Row: c.Row, Col: c.Col})
}

// Card is a player's private 5x5 grid, indexed [row][col].
type Card [Size][Size]Cell

// ColumnRange returns the inclusive range of values allowed in column col.
func ColumnRange(col int) (lo, hi int) {
	lo = col*columnSpan + 1
	return lo, lo + columnSpan - 1
}

// Letter returns the column letter (B, I, N, G or O) that n is called under.
func Letter(n int) string {
	if n < 1 || n > MaxNumber {
		return ""
	}
	return string(letters[(n-1)/columnSpan])
}

// Label formats n the way a caller announces it, e.g. "B-7".
func Label(n int) string {
	return fmt.Sprintf("%s-%d", Letter(n), n)
}

// NewCard deals a card: five distinct values per column drawn from that
// column's range, with the center square free and already marked.
func NewCard(r *rand.Rand) Card {
	var card Card

	for col := 0; col < Size; col++ {
		lo, _ := ColumnRange(col)

		seen := make(map[int]bool, Size)
		values := make([]int, 0, Size)
		for len(values) < Size {
			n := lo + r.IntN(columnSpan)
			if seen[n] {
				continue
			}
			seen[n] = true
			values = append(values, n)
		}

		for row := 0; row < Size; row++ {
			card[row][col] = Cell{Value: values[row], Row: row, Col: col}
		}
	}

	card[center][center].Value = Free
	card[center][center].Marked = true

	return card
}

// Cell returns the square at row, col.
func (c *Card) Cell(row, col int) (Cell, bool) {
	if row < 0 || row >= Size || col < 0 || col >= Size {
		return Cell{}, false
	}
	return c[row][col], true
}

// Mark covers the square at row, col. It reports false for coordinates off
// the card.
func (c *Card) Mark(row, col int) bool {
	if row < 0 || row >= Size || col < 0 || col >= Size {
		return false
	}
	c[row][col].Marked = true
	return true
}

// Find returns the coordinates of value n on the card.
func (c *Card) Find(n int) (row, col int, ok bool) {
	if n < 1 || n > MaxNumber {
		return 0, 0, false
	}

	col = (n - 1) / columnSpan
	for row := 0; row < Size; row++ {
		if c[row][col].Value == n {
			return row, col, true
		}
	}

	return 0, 0, false
}
