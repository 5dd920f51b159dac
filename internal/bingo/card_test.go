package bingo

import (
	"encoding/json"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestNewCardColumns(t *testing.T) {
	r := testRand(1)

	for i := 0; i < 500; i++ {
		card := NewCard(r)

		free := 0
		for col := 0; col < Size; col++ {
			lo, hi := ColumnRange(col)
			seen := map[int]bool{}
			for row := 0; row < Size; row++ {
				cell := card[row][col]
				require.Equal(t, row, cell.Row)
				require.Equal(t, col, cell.Col)

				if cell.IsFree() {
					free++
					require.Equal(t, center, row, "free square off center")
					require.Equal(t, center, col, "free square off center")
					require.True(t, cell.Marked, "free square must start marked")
					continue
				}

				require.False(t, cell.Marked)
				require.GreaterOrEqual(t, cell.Value, lo)
				require.LessOrEqual(t, cell.Value, hi)
				require.False(t, seen[cell.Value], "duplicate %d in column %d", cell.Value, col)
				seen[cell.Value] = true
			}
		}
		require.Equal(t, 1, free)
	}
}

func TestColumnRange(t *testing.T) {
	tests := []struct {
		col    int
		lo, hi int
	}{
		{0, 1, 15},
		{1, 16, 30},
		{2, 31, 45},
		{3, 46, 60},
		{4, 61, 75},
	}

	for _, tt := range tests {
		lo, hi := ColumnRange(tt.col)
		assert.Equal(t, tt.lo, lo, "column %d", tt.col)
		assert.Equal(t, tt.hi, hi, "column %d", tt.col)
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "B-7", Label(7))
	assert.Equal(t, "N-31", Label(31))
	assert.Equal(t, "O-75", Label(75))
	assert.Equal(t, "", Letter(0))
	assert.Equal(t, "", Letter(76))
}

func TestCardMarkAndFind(t *testing.T) {
	card := NewCard(testRand(7))

	v := card[0][3].Value
	row, col, ok := card.Find(v)
	require.True(t, ok)
	assert.Equal(t, 0, row)
	assert.Equal(t, 3, col)

	require.True(t, card.Mark(0, 3))
	cell, ok := card.Cell(0, 3)
	require.True(t, ok)
	assert.True(t, cell.Marked)

	assert.False(t, card.Mark(5, 0))
	assert.False(t, card.Mark(-1, 2))
	_, ok = card.Cell(2, 9)
	assert.False(t, ok)
}

func TestCellJSON(t *testing.T) {
	card := NewCard(testRand(3))

	raw, err := json.Marshal(card[center][center])
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":"FREE","marked":true,"row":2,"col":2}`, string(raw))

	raw, err = json.Marshal(Cell{Value: 12, Row: 1, Col: 0})
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":12,"marked":false,"row":1,"col":0}`, string(raw))
}
