package llm

import (
	"context"
	"fmt"
	"strings"

	"ai-doc-assistant/config"
	"ai-doc-assistant/pkg/apperror/status"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini wraps the Google generative model client.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGemini(ctx context.Context) (*Gemini, error) {
	key := config.Cfg.Gemini.Key
	if key == "" {
		return nil, fmt.Errorf("gemini key not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(key))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  client.GenerativeModel(config.Cfg.Gemini.Model),
	}, nil
}

func (g *Gemini) Close() error {
	return g.client.Close()
}

func (g *Gemini) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	// Concurrent calls share g.model, so options go on a per-call copy.
	model := *g.model
	model.SetTemperature(opts.Temperature)
	if opts.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(opts.MaxOutputTokens)
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", status.New(status.ModelMalformed, fmt.Errorf("gemini returned no candidates"))
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", status.New(status.ModelMalformed, fmt.Errorf("gemini response is empty or blocked"))
	}
	return out, nil
}
