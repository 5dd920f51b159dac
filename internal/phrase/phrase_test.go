package phrase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		n    int
		lang string
		want string
	}{
		{22, "en", "Two little ducks, I-22"},
		{1, "en", "Kelly's eye, B-1"},
		{75, "en", "Strive and strive, O-75"},
		{1, "vi", "Số 1 là con gà con"},
		{38, "vi", "Cột N, số 38"},
	}

	for _, tt := range tests {
		got, err := Static{}.Generate(ctx, tt.n, tt.lang)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	for n := 1; n <= 75; n++ {
		got, err := Static{}.Generate(ctx, n, "en")
		require.NoError(t, err)
		assert.NotEmpty(t, got)
	}
}

type completion struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func fakeAPI(t *testing.T, status int, content string, got *completion) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		if got != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"nope","type":"server_error"}}`))
			return
		}

		body, _ := json.Marshal(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "test-model",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		})
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestOpenAI(t *testing.T) {
	var req completion
	srv := fakeAPI(t, http.StatusOK, `  "Two little ducks"  `, &req)

	gen := NewOpenAI("test-key", "test-model", srv.URL, nil)
	got, err := gen.Generate(context.Background(), 22, "en")
	require.NoError(t, err)
	assert.Equal(t, "Two little ducks", got)

	assert.Equal(t, "test-model", req.Model)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, "user", req.Messages[0].Role)
	assert.True(t, strings.Contains(req.Messages[0].Content, "number 22"))
}

func TestOpenAIVietnamesePrompt(t *testing.T) {
	var req completion
	srv := fakeAPI(t, http.StatusOK, "Hai con vịt", &req)

	got, err := NewOpenAI("test-key", "", srv.URL, nil).Generate(context.Background(), 22, "vi")
	require.NoError(t, err)
	assert.Equal(t, "Hai con vịt", got)
	assert.Equal(t, DefaultModel, req.Model)
	assert.Contains(t, req.Messages[0].Content, "lô tô: 22")
}

func TestOpenAIFallback(t *testing.T) {
	srv := fakeAPI(t, http.StatusInternalServerError, "", nil)

	_, err := NewOpenAI("test-key", "m", srv.URL, nil).Generate(context.Background(), 22, "en")
	assert.Error(t, err)

	got, err := NewOpenAI("test-key", "m", srv.URL, Static{}).Generate(context.Background(), 22, "en")
	require.NoError(t, err)
	assert.Equal(t, "Two little ducks, I-22", got)

	empty := fakeAPI(t, http.StatusOK, "   ", nil)
	got, err = NewOpenAI("test-key", "m", empty.URL, Static{}).Generate(context.Background(), 7, "en")
	require.NoError(t, err)
	assert.Equal(t, "Lucky seven, B-7", got)
}
