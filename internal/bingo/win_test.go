package bingo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func blankCard() Card {
	card := NewCard(testRand(11))
	for row := range card {
		for col := range card[row] {
			card[row][col].Marked = false
		}
	}
	return card
}

func TestIsWinning(t *testing.T) {
	tests := []struct {
		name  string
		marks [][2]int
		want  bool
		line  Line
	}{
		{name: "nothing marked", want: false},
		{name: "free square only", marks: [][2]int{{2, 2}}, want: false},
		{
			name:  "top row",
			marks: [][2]int{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}},
			want:  true,
			line:  Line{Kind: LineRow, Index: 0},
		},
		{
			name:  "middle row through free square",
			marks: [][2]int{{2, 0}, {2, 1}, {2, 2}, {2, 3}, {2, 4}},
			want:  true,
			line:  Line{Kind: LineRow, Index: 2},
		},
		{
			name:  "column G",
			marks: [][2]int{{0, 3}, {1, 3}, {2, 3}, {3, 3}, {4, 3}},
			want:  true,
			line:  Line{Kind: LineColumn, Index: 3},
		},
		{
			name:  "main diagonal",
			marks: [][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 4}},
			want:  true,
			line:  Line{Kind: LineDiagonal, Index: 0},
		},
		{
			name:  "anti diagonal",
			marks: [][2]int{{0, 4}, {1, 3}, {2, 2}, {3, 1}, {4, 0}},
			want:  true,
			line:  Line{Kind: LineDiagonal, Index: 1},
		},
		{
			name:  "four of a row",
			marks: [][2]int{{4, 0}, {4, 1}, {4, 2}, {4, 3}},
			want:  false,
		},
		{
			name:  "four corners are not a line",
			marks: [][2]int{{0, 0}, {0, 4}, {4, 0}, {4, 4}, {2, 2}},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := blankCard()
			for _, m := range tt.marks {
				card.Mark(m[0], m[1])
			}

			assert.Equal(t, tt.want, IsWinning(card))

			line, ok := WinningLine(card)
			assert.Equal(t, tt.want, ok)
			if tt.want {
				assert.Equal(t, tt.line, line)
			}
		})
	}
}

func TestLines(t *testing.T) {
	lines := Lines()
	assert.Len(t, lines, 12)

	assert.Equal(t, "row 1", lines[0].String())
	assert.Equal(t, "column B", lines[5].String())
	assert.Equal(t, "column O", lines[9].String())
	assert.Equal(t, "diagonal \\", lines[10].String())
	assert.Equal(t, "diagonal /", lines[11].String())
}
