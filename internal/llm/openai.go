package llm

import (
	"context"
	"fmt"
	"strings"

	"ai-doc-assistant/config"
	"ai-doc-assistant/pkg/apperror/status"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}
type chatChoice struct {
	Index   int `json:"index"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}
type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

// OpenAI is the chat-completions backend, selectable via llm.provider.
type OpenAI struct {
	client openai.Client
}

func NewOpenAI() *OpenAI {
	return &OpenAI{client: openai.NewClient(option.WithAPIKey(config.Cfg.OpenAI.Key))}
}

func (o *OpenAI) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	req := chatRequest{
		Model:       config.Cfg.OpenAI.Model,
		Temperature: opts.Temperature,
		MaxTokens:   int(opts.MaxOutputTokens),
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
	}

	var out chatResponse
	if err := o.client.Post(ctx, "/chat/completions", req, &out); err != nil {
		return "", classify(err)
	}
	if len(out.Choices) == 0 {
		return "", status.New(status.ModelMalformed, fmt.Errorf("no choices returned"))
	}
	text := strings.TrimSpace(out.Choices[0].Message.Content)
	if text == "" {
		return "", status.New(status.ModelMalformed, fmt.Errorf("empty completion"))
	}
	return text, nil
}
