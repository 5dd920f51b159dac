package room

import (
	"context"
	"time"

	"github.com/Seednode/bingohub/internal/bingo"
)

const botTimeout = 10 * time.Second

var avatars = []string{
	"🐶", "🐱", "🐭", "🐹", "🐰", "🦊", "🐻", "🐼", "🐨", "🐯",
	"🦁", "🐮", "🐷", "🐸", "🐵", "🐔", "🐧", "🐦", "🐤", "🦆",
}

var botNames = []string{
	"An", "Bình", "Chi", "Dũng", "Giang", "Hà", "Khánh", "Lan", "Minh", "Nga",
	"Alex", "Sam", "Jordan", "Taylor", "Casey", "Riley", "Morgan", "Jamie",
}

// BotName picks a display name for a bot using the client's randomness.
func (c *Client) BotName() string {
	return botNames[c.intN(len(botNames))]
}

// autoMark marks every called number on a bot's card, declaring the win if
// one of the marks completes a line.
func (c *Client) autoMark(epoch uint64) {
	c.mu.Lock()
	sess := c.session
	if epoch != c.epoch || sess == nil || sess.Status != StatusPlaying || sess.Winner != nil {
		c.mu.Unlock()
		return
	}

	var todo [][2]int
	for r := range bingo.Size {
		for col := range bingo.Size {
			cell := c.card[r][col]
			if cell.Marked {
				continue
			}
			if cell.IsFree() || sess.IsCalled(cell.Value) {
				todo = append(todo, [2]int{r, col})
			}
		}
	}
	c.mu.Unlock()

	if len(todo) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), botTimeout)
	defer cancel()

	for _, rc := range todo {
		won, err := c.Mark(ctx, rc[0], rc[1])
		if err != nil {
			c.log.Debugw("bot mark failed", "row", rc[0], "col", rc[1], "error", err)
			return
		}
		if won {
			return
		}
	}
}
