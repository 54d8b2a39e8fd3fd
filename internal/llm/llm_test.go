package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"ai-doc-assistant/pkg/apperror/status"

	"google.golang.org/api/googleapi"
)

func TestClassifyTimeout(t *testing.T) {
	err := classify(context.DeadlineExceeded)
	if !status.Is(err, status.ModelTimeout) {
		t.Fatalf("expected ModelTimeout, got %v", err)
	}

	wrapped := classify(fmt.Errorf("call failed: %w", context.DeadlineExceeded))
	if !status.Is(wrapped, status.ModelTimeout) {
		t.Fatalf("wrapped deadline should still classify as timeout, got %v", wrapped)
	}
}

func TestClassifyQuota(t *testing.T) {
	gerr := &googleapi.Error{Code: 429, Message: "too many requests"}
	if err := classify(gerr); !status.Is(err, status.ModelQuota) {
		t.Fatalf("expected ModelQuota for 429, got %v", err)
	}

	for _, msg := range []string{
		"quota exceeded for project",
		"rate limit reached",
		"resource exhausted",
	} {
		if err := classify(errors.New(msg)); !status.Is(err, status.ModelQuota) {
			t.Errorf("expected ModelQuota for %q, got %v", msg, err)
		}
	}
}

func TestClassifyMalformedDefault(t *testing.T) {
	err := classify(errors.New("connection reset by peer"))
	if !status.Is(err, status.ModelMalformed) {
		t.Fatalf("expected ModelMalformed, got %v", err)
	}
}

func TestClassifyNil(t *testing.T) {
	if err := classify(nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestClassifyRecoverability(t *testing.T) {
	if !status.Recoverable(status.Code(classify(context.DeadlineExceeded))) {
		t.Error("timeouts should be recoverable")
	}
	if status.Recoverable(status.Code(classify(errors.New("bad response")))) {
		t.Error("malformed responses should not be recoverable")
	}
}
