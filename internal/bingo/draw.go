package bingo

import (
	"errors"
	"math/rand/v2"
)

// ErrExhausted is returned by Draw once every number has been called.
var ErrExhausted = errors.New("no numbers remain to call")

// Remaining returns the numbers in 1..MaxNumber that are not in called, in
// ascending order.
func Remaining(called []int) []int {
	var seen [MaxNumber + 1]bool
	for _, n := range called {
		if n >= 1 && n <= MaxNumber {
			seen[n] = true
		}
	}

	out := make([]int, 0, MaxNumber)
	for n := 1; n <= MaxNumber; n++ {
		if !seen[n] {
			out = append(out, n)
		}
	}
	return out
}

// Draw picks uniformly among the numbers not yet called.
func Draw(called []int, r *rand.Rand) (int, error) {
	remaining := Remaining(called)
	if len(remaining) == 0 {
		return 0, ErrExhausted
	}
	return remaining[r.IntN(len(remaining))], nil
}
