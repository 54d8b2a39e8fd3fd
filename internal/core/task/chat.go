package task

import (
	"context"
	"fmt"
	"strings"

	"ai-doc-assistant/internal/core/session"
	"ai-doc-assistant/internal/llm"
	"ai-doc-assistant/pkg/apperror/status"
)

func (d *Dispatcher) chat(ctx context.Context, sess *session.Session, req ChatRequest) (*Result, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, status.New(status.InvalidStructure, fmt.Errorf("empty chat message"))
	}
	if doc := sess.Document(); doc == nil || strings.TrimSpace(doc.Text) == "" {
		return nil, status.New(status.EmptyContext, fmt.Errorf("no document loaded"))
	}

	sess.AppendUser(message)
	contextText := sess.BuildContext(true)

	var b strings.Builder
	b.WriteString("You are a document assistant. Answer the user's last question using only the document and conversation below. ")
	b.WriteString("If the document does not contain the answer, say so.\n\n")
	b.WriteString(contextText)
	b.WriteString("\nAssistant:")

	out, err := d.gen.Generate(ctx, b.String(), llm.Options{
		Temperature:     0.7,
		MaxOutputTokens: 1024,
	})
	if err != nil {
		// The user turn stays appended so the input is not lost; no
		// assistant turn is added for a failed call.
		return nil, taskErr(KindChat, err)
	}

	reply := strings.TrimSpace(out)
	sess.AppendAssistant(reply)

	return &Result{
		Kind:  KindChat,
		Reply: reply,
	}, nil
}
