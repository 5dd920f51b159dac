package phrase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const DefaultModel = "gpt-4o-mini"

var errEmpty = errors.New("model returned no phrase")

// OpenAI asks a chat-completions model for a witty call. Any failure falls
// through to Fallback when one is set.
type OpenAI struct {
	client   openai.Client
	model    string
	Fallback Generator
}

// NewOpenAI builds a generator. baseURL may be empty to use the default API.
func NewOpenAI(apiKey, model, baseURL string, fallback Generator) *OpenAI {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if model == "" {
		model = DefaultModel
	}

	return &OpenAI{
		client:   openai.NewClient(opts...),
		model:    model,
		Fallback: fallback,
	}
}

func prompt(n int, lang string) string {
	if lang == "vi" {
		return fmt.Sprintf("Tạo một câu nói vần điệu ngắn gọn, hài hước hoặc dân gian Việt Nam liên quan đến số lô tô: %d. "+
			"Chỉ trả về câu nói đó, không giải thích. Ví dụ số 1: \"Số 1 là con gà con\".", n)
	}
	return fmt.Sprintf("Generate a short, witty, or traditional bingo call phrase for the number %d. "+
		"Return only the phrase. Example for 22: \"Two little ducks\".", n)
}

func (o *OpenAI) Generate(ctx context.Context, n int, lang string) (string, error) {
	text, err := o.complete(ctx, n, lang)
	if err != nil && o.Fallback != nil && ctx.Err() == nil {
		return o.Fallback.Generate(ctx, n, lang)
	}
	return text, err
}

func (o *OpenAI) complete(ctx context.Context, n int, lang string) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt(n, lang)),
		},
		Model:     openai.ChatModel(o.model),
		MaxTokens: openai.Int(60),
	})
	if err != nil {
		return "", fmt.Errorf("phrase for %d: %w", n, err)
	}
	if len(resp.Choices) == 0 {
		return "", errEmpty
	}

	text := strings.Trim(strings.TrimSpace(resp.Choices[0].Message.Content), `"`)
	if text == "" {
		return "", errEmpty
	}

	return text, nil
}
