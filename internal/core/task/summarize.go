package task

import (
	"context"
	"fmt"
	"strings"

	"ai-doc-assistant/internal/core/session"
	"ai-doc-assistant/internal/llm"
	"ai-doc-assistant/pkg/apperror/status"
)

var lengthInstruction = map[SummaryLength]string{
	LengthShort:  "Write a concise summary of 2-3 sentences.",
	LengthMedium: "Write a summary of one solid paragraph (5-8 sentences).",
	LengthLong:   "Write a detailed summary of several paragraphs covering all major points.",
}

// Lead-in phrases models like to prepend; the summary should start with
// content, not throat-clearing.
var summaryLeadIns = []string{
	"here is a summary",
	"here is the summary",
	"here's a summary",
	"here's the summary",
	"sure, here is",
	"sure, here's",
	"summary:",
}

func (d *Dispatcher) summarize(ctx context.Context, sess *session.Session, req SummarizeRequest) (*Result, error) {
	contextText := sess.BuildContext(false)
	if strings.TrimSpace(contextText) == "" {
		return nil, status.New(status.EmptyContext, fmt.Errorf("no document loaded"))
	}

	instruction, ok := lengthInstruction[req.Length]
	if !ok {
		instruction = lengthInstruction[LengthMedium]
	}

	var b strings.Builder
	b.WriteString("You are a document assistant. Summarize the document below.\n")
	b.WriteString(instruction)
	b.WriteString("\n")
	if len(req.Focus) > 0 {
		b.WriteString("Pay particular attention to: ")
		b.WriteString(strings.Join(req.Focus, ", "))
		b.WriteString(".\n")
	}
	b.WriteString("Respond with the summary only, no preamble.\n\nDocument:\n")
	b.WriteString(contextText)

	out, err := d.gen.Generate(ctx, b.String(), llm.Options{
		Temperature:     0.2,
		MaxOutputTokens: 1024,
	})
	if err != nil {
		return nil, taskErr(KindSummarize, err)
	}

	return &Result{
		Kind:    KindSummarize,
		Summary: stripLeadIn(out),
	}, nil
}

// stripLeadIn drops a boilerplate opening line when the model adds one anyway.
func stripLeadIn(s string) string {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	for _, phrase := range summaryLeadIns {
		if !strings.HasPrefix(lower, phrase) {
			continue
		}
		if idx := strings.IndexAny(s, ":\n"); idx >= 0 && idx < 120 {
			return strings.TrimSpace(s[idx+1:])
		}
	}
	return s
}
