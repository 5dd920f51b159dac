// Package phrase produces the caller's flourish for a drawn number.
package phrase

import (
	"context"
	"fmt"

	"github.com/Seednode/bingohub/internal/bingo"
)

// Generator returns a short phrase to announce number n in lang.
type Generator interface {
	Generate(ctx context.Context, n int, lang string) (string, error)
}

// Static answers from the traditional calls without any network use.
type Static struct{}

var traditional = map[int]string{
	1: "Kelly's eye", 2: "One little duck", 3: "Cup of tea", 4: "Knock at the door",
	5: "Man alive", 6: "Half a dozen", 7: "Lucky seven", 8: "Garden gate",
	9: "Doctor's orders", 10: "Cock and hen", 11: "Legs eleven", 12: "One dozen",
	13: "Unlucky for some", 14: "Valentine's Day", 15: "Young and keen", 16: "Sweet sixteen",
	17: "Dancing queen", 18: "Coming of age", 19: "Goodbye teens", 20: "One score",
	21: "Key of the door", 22: "Two little ducks", 23: "Thee and me", 24: "Two dozen",
	25: "Duck and dive", 26: "Pick and mix", 27: "Gateway to heaven", 28: "In a state",
	29: "Rise and shine", 30: "Dirty Gertie", 31: "Get up and run", 32: "Buckle my shoe",
	33: "All the threes", 34: "Ask for more", 35: "Jump and jive", 36: "Three dozen",
	37: "More than eleven", 38: "Christmas cake", 39: "Steps", 40: "Naughty forty",
	41: "Time for fun", 42: "Winnie the Pooh", 43: "Down on your knees", 44: "Droopy drawers",
	45: "Halfway there", 46: "Up to tricks", 47: "Four and seven", 48: "Four dozen",
	49: "PC", 50: "Half a century", 51: "Tweak of the thumb", 52: "Danny La Rue",
	53: "Stuck in the tree", 54: "Clean the floor", 55: "Snakes alive", 56: "Was she worth it?",
	57: "Heinz varieties", 58: "Make them wait", 59: "Brighton line", 60: "Five dozen",
	61: "Baker's bun", 62: "Tickety-boo", 63: "Tickle me", 64: "Red raw",
	65: "Old age pension", 66: "Clickety click", 67: "Stairway to heaven", 68: "Saving grace",
	69: "Either way up", 70: "Three score and ten", 71: "Bang on the drum", 72: "Six dozen",
	73: "Queen bee", 74: "Candy store", 75: "Strive and strive",
}

var folk = map[int]string{
	1:  "Số 1 là con gà con",
	2:  "Số 2 con vịt bầu",
	7:  "Số 7 bảy nổi ba chìm",
	9:  "Số 9 chín bỏ làm mười",
	10: "Số 10 mười phân vẹn mười",
	15: "Số 15 trăng rằm",
	22: "Số 22 hai con vịt",
	33: "Số 33 ba ba",
	45: "Số 45 bốn lăm",
	50: "Số 50 nửa trăm",
	75: "Số 75 về đích",
}

// Generate never fails. Numbers without a known call are announced plainly.
func (Static) Generate(_ context.Context, n int, lang string) (string, error) {
	if lang == "vi" {
		if p, ok := folk[n]; ok {
			return p, nil
		}
		return fmt.Sprintf("Cột %s, số %d", bingo.Letter(n), n), nil
	}

	if p, ok := traditional[n]; ok {
		return fmt.Sprintf("%s, %s", p, bingo.Label(n)), nil
	}
	return bingo.Label(n), nil
}
