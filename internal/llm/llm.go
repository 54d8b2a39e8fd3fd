package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ai-doc-assistant/config"
	"ai-doc-assistant/pkg/apperror/status"

	"google.golang.org/api/googleapi"
)

// Options tune one generation call.
type Options struct {
	Temperature     float32
	MaxOutputTokens int32
}

// Generator is the model-call collaborator. Implementations own all network
// I/O to the model service; the pipeline treats Generate as a blocking call
// with an externally enforced timeout and never retries.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}

// New builds the Generator selected by config.
func New(ctx context.Context) (Generator, error) {
	switch config.Cfg.LLM.Provider {
	case "openai":
		return NewOpenAI(), nil
	case "gemini":
		return NewGemini(ctx)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", config.Cfg.LLM.Provider)
	}
}

// classify maps a transport failure onto the pipeline's model-call taxonomy.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return status.New(status.ModelTimeout, err)
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == 429 {
		return status.New(status.ModelQuota, err)
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "quota") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "resource exhausted") ||
		strings.Contains(msg, "429") {
		return status.New(status.ModelQuota, err)
	}

	return status.New(status.ModelMalformed, err)
}
