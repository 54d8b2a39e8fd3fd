package session

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"ai-doc-assistant/internal/core/document"
)

func docOf(text string) *document.Document {
	return &document.Document{Text: text, SourceFormat: document.FormatTXT}
}

func TestBuildDocumentFits(t *testing.T) {
	doc := docOf("Short document.")
	got := Build(doc, nil, Budget{MaxChars: 100}, true)
	if got != "Short document." {
		t.Errorf("unexpected context %q", got)
	}
}

func TestBuildTruncatesOversizedDocument(t *testing.T) {
	doc := docOf(strings.Repeat("a", 200))
	history := []Turn{{Role: RoleUser, Content: "question"}}

	got := Build(doc, history, Budget{MaxChars: 50}, true)
	if got != strings.Repeat("a", 50) {
		t.Errorf("expected first 50 chars of the document only, got %q", got)
	}
}

func TestBuildNeverExceedsBudget(t *testing.T) {
	doc := docOf(strings.Repeat("x", 80))
	var history []Turn
	for i := 0; i < 30; i++ {
		history = append(history, Turn{Role: RoleUser, Content: fmt.Sprintf("message number %d", i)})
		history = append(history, Turn{Role: RoleAssistant, Content: fmt.Sprintf("reply number %d", i)})
	}

	for _, budget := range []int{10, 50, 100, 150, 500, 5000} {
		got := Build(doc, history, Budget{MaxChars: budget}, true)
		if n := utf8.RuneCountInString(got); n > budget {
			t.Errorf("budget %d exceeded: got %d chars", budget, n)
		}
	}
}

func TestBuildKeepsNewestHistoryChronologically(t *testing.T) {
	doc := docOf("doc")
	history := []Turn{
		{Role: RoleUser, Content: "oldest question"},
		{Role: RoleAssistant, Content: "oldest answer"},
		{Role: RoleUser, Content: "newest question"},
	}

	// Budget large enough for the document and the two newest turns only.
	budget := utf8.RuneCountInString("doc") +
		utf8.RuneCountInString("User: newest question") + 1 +
		utf8.RuneCountInString("Assistant: oldest answer") + 1

	got := Build(doc, history, Budget{MaxChars: budget}, true)
	if strings.Contains(got, "oldest question") {
		t.Errorf("oldest turn should have been dropped: %q", got)
	}
	ansIdx := strings.Index(got, "oldest answer")
	qIdx := strings.Index(got, "newest question")
	if ansIdx == -1 || qIdx == -1 || ansIdx > qIdx {
		t.Errorf("kept turns out of order: %q", got)
	}
}

func TestBuildDeterministic(t *testing.T) {
	doc := docOf("stable document")
	history := []Turn{{Role: RoleUser, Content: "hi"}, {Role: RoleAssistant, Content: "hello"}}
	budget := Budget{MaxChars: 100}

	first := Build(doc, history, budget, true)
	for i := 0; i < 5; i++ {
		if got := Build(doc, history, budget, true); got != first {
			t.Fatalf("nondeterministic build: %q vs %q", got, first)
		}
	}
}

func TestBuildExcludesHistoryWhenAsked(t *testing.T) {
	doc := docOf("doc text")
	history := []Turn{{Role: RoleUser, Content: "should not appear"}}

	got := Build(doc, history, Budget{MaxChars: 1000}, false)
	if got != "doc text" {
		t.Errorf("history leaked into context: %q", got)
	}
}

func TestSetDocumentClearsHistory(t *testing.T) {
	s := New(Budget{MaxChars: 1000})
	s.SetDocument(docOf("first"))
	s.AppendUser("question about first")
	s.AppendAssistant("answer")

	s.SetDocument(docOf("second"))
	if len(s.History()) != 0 {
		t.Errorf("history survived document replacement")
	}
}

func TestDropPendingUserTurn(t *testing.T) {
	s := New(Budget{MaxChars: 1000})
	s.SetDocument(docOf("doc"))

	if s.DropPendingUserTurn() {
		t.Error("nothing to drop on empty history")
	}

	s.AppendUser("q")
	s.AppendAssistant("a")
	if s.DropPendingUserTurn() {
		t.Error("must not drop an assistant-terminated history")
	}

	s.AppendUser("pending")
	if !s.DropPendingUserTurn() {
		t.Error("expected pending user turn to be dropped")
	}
	if got := len(s.History()); got != 2 {
		t.Errorf("expected 2 turns after drop, got %d", got)
	}
}
