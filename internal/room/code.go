package room

import (
	"crypto/rand"
	"strings"
)

// CodeLength is the number of characters in a room code. 36^6 codes keep
// collisions between open rooms negligible; Create still retries on one.
const CodeLength = 6

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewCode returns a random room code.
func NewCode() (string, error) {
	// Bytes at or above this bound are rejected so every symbol is equally likely.
	const bound = 256 - 256%len(codeAlphabet)

	out := make([]byte, 0, CodeLength)
	buf := make([]byte, 2*CodeLength)
	for len(out) < CodeLength {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= bound {
				continue
			}
			out = append(out, codeAlphabet[int(b)%len(codeAlphabet)])
			if len(out) == CodeLength {
				break
			}
		}
	}

	return string(out), nil
}

// NormalizeCode upper-cases a typed room code and strips surrounding space
// and separators. It reports false if the result cannot be a room code.
func NormalizeCode(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.NewReplacer("-", "", " ", "").Replace(s)

	if len(s) != CodeLength {
		return "", false
	}
	for _, r := range s {
		if !strings.ContainsRune(codeAlphabet, r) {
			return "", false
		}
	}
	return s, true
}
