package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		c, err := NewCode()
		require.NoError(t, err)
		require.Len(t, c, CodeLength)

		norm, ok := NormalizeCode(c)
		require.True(t, ok)
		require.Equal(t, c, norm)

		seen[c] = true
	}
	assert.Greater(t, len(seen), 990)
}

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"abc123", "ABC123", true},
		{"  ABC-123 ", "ABC123", true},
		{"ABC 123", "ABC123", true},
		{"ABC12", "", false},
		{"ABC1234", "", false},
		{"ABC12!", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := NormalizeCode(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  bool
	}{
		{"vi", "vi", false},
		{"vi-VN", "vi", false},
		{"en", "en", false},
		{"en-GB", "en", false},
		{"fr", "", true},
		{"", "", true},
		{"not a tag", "", true},
	}

	for _, tt := range tests {
		got, err := NormalizeLanguage(tt.in)
		if tt.err {
			assert.ErrorIs(t, err, ErrInvalidConfig, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestConfigNormalize(t *testing.T) {
	cfg, err := Config{CallSpeed: 1, Language: "EN"}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, MinCallSpeed, cfg.CallSpeed)
	assert.Equal(t, "en", cfg.Language)

	cfg, err = Config{CallSpeed: 99, Language: "vi"}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, MaxCallSpeed, cfg.CallSpeed)

	speed := 7
	on := true
	cfg = DefaultConfig().apply(ConfigPatch{CallSpeed: &speed, AutoCall: &on})
	assert.Equal(t, 7, cfg.CallSpeed)
	assert.True(t, cfg.AutoCall)
	assert.Equal(t, "vi", cfg.Language)
}

func TestMessageFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, "Ann joined the room!", message("xx", msgJoined, "Ann"))
	assert.Equal(t, "Ann đã tham gia phòng!", message("vi", msgJoined, "Ann"))
}
