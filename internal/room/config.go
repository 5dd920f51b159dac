package room

import (
	"fmt"

	"golang.org/x/text/language"
)

const (
	MinCallSpeed = 2
	MaxCallSpeed = 10
)

// Config is the host-controlled part of a room.
type Config struct {
	AutoCall bool `json:"autoCall"`
	// CallSpeed is the auto-call period in seconds.
	CallSpeed int    `json:"callSpeed"`
	Language  string `json:"language"`
}

func DefaultConfig() Config {
	return Config{
		AutoCall:  true,
		CallSpeed: 4,
		Language:  "vi",
	}
}

// ConfigPatch lists the settings a host wants to change. Nil fields are kept.
type ConfigPatch struct {
	AutoCall  *bool   `json:"autoCall,omitempty"`
	CallSpeed *int    `json:"callSpeed,omitempty"`
	Language  *string `json:"language,omitempty"`
}

func (c Config) apply(p ConfigPatch) Config {
	if p.AutoCall != nil {
		c.AutoCall = *p.AutoCall
	}
	if p.CallSpeed != nil {
		c.CallSpeed = *p.CallSpeed
	}
	if p.Language != nil {
		c.Language = *p.Language
	}
	return c
}

// Normalize clamps the call speed into range and canonicalizes the language.
func (c Config) Normalize() (Config, error) {
	c.CallSpeed = min(max(c.CallSpeed, MinCallSpeed), MaxCallSpeed)

	lang, err := NormalizeLanguage(c.Language)
	if err != nil {
		return c, err
	}
	c.Language = lang

	return c, nil
}

var (
	languages = []language.Tag{language.Vietnamese, language.English}
	matcher   = language.NewMatcher(languages)
)

// NormalizeLanguage maps a BCP 47 tag onto a supported language ("vi" or
// "en").
func NormalizeLanguage(tag string) (string, error) {
	t, err := language.Parse(tag)
	if err != nil {
		return "", fmt.Errorf("%w: language %q: %w", ErrInvalidConfig, tag, err)
	}

	_, idx, conf := matcher.Match(t)
	if conf == language.No {
		return "", fmt.Errorf("%w: unsupported language %q", ErrInvalidConfig, tag)
	}

	base, _ := languages[idx].Base()
	return base.String(), nil
}

const (
	msgJoined    = "joined"
	msgLeft      = "left"
	msgStarted   = "started"
	msgWon       = "won"
	msgExhausted = "exhausted"
)

var messages = map[string]map[string]string{
	"en": {
		msgJoined:    "%s joined the room!",
		msgLeft:      "%s left the room.",
		msgStarted:   "Game started! Good luck!",
		msgWon:       "%s WON BINGO with %s!",
		msgExhausted: "Every number has been called. No winner this round.",
	},
	"vi": {
		msgJoined:    "%s đã tham gia phòng!",
		msgLeft:      "%s đã rời phòng.",
		msgStarted:   "Trò chơi bắt đầu! Chúc may mắn!",
		msgWon:       "%s ĐÃ CHIẾN THẮNG BINGO!!! (%s)",
		msgExhausted: "Đã gọi hết số. Ván này không có người thắng.",
	},
}

func message(lang, key string, args ...any) string {
	table, ok := messages[lang]
	if !ok {
		table = messages["en"]
	}
	return fmt.Sprintf(table[key], args...)
}
