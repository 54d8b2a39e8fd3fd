package session

import (
	"strings"
	"unicode/utf8"

	"ai-doc-assistant/internal/core/document"
)

// Build assembles the context string sent to the model: the document text,
// then as much recent history as fits, oldest-kept-first. The result never
// exceeds budget.MaxChars characters and is deterministic for identical
// (document, history, budget) inputs.
//
// The document takes priority: when it fits the budget it is included whole
// and the remainder goes to history; when it alone exceeds the budget it is
// truncated from the tail (earliest content wins) and history gets nothing.
// Older turns that do not fit are dropped silently.
//
// Budget.DocFloor is not consulted here: the document-first rules above
// already guarantee the document at least that share of the budget in every
// case (whole when it fits, the entire budget when it does not), so the
// floor never binds.
func Build(doc *document.Document, history []Turn, budget Budget, includeHistory bool) string {
	maxChars := budget.MaxChars
	if maxChars <= 0 {
		return ""
	}

	var docText string
	if doc != nil {
		docText = doc.Text
	}
	docRunes := []rune(docText)
	if len(docRunes) >= maxChars {
		return string(docRunes[:maxChars])
	}

	if !includeHistory || len(history) == 0 {
		return docText
	}

	// Walk newest to oldest, charging each turn its rendered length plus one
	// separator, then emit the kept turns back in chronological order.
	remaining := maxChars - len(docRunes)
	var kept []string
	for i := len(history) - 1; i >= 0; i-- {
		line := renderTurn(history[i])
		cost := utf8.RuneCountInString(line) + 1
		if cost > remaining {
			break
		}
		kept = append(kept, line)
		remaining -= cost
	}

	parts := make([]string, 0, len(kept)+1)
	if docText != "" {
		parts = append(parts, docText)
	}
	for i := len(kept) - 1; i >= 0; i-- {
		parts = append(parts, kept[i])
	}
	return strings.Join(parts, "\n")
}

func renderTurn(t Turn) string {
	switch t.Role {
	case RoleAssistant:
		return "Assistant: " + t.Content
	default:
		return "User: " + t.Content
	}
}
