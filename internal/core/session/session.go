package session

import (
	"time"

	"ai-doc-assistant/internal/core/document"

	"github.com/google/uuid"
)

// Role identifies the author of a chat turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in the chat history.
type Turn struct {
	Role    Role
	Content string
	At      time.Time
}

// Budget bounds the context string assembled for one model call. MaxChars is
// a character (rune) budget; DocFloor is the minimum share of it guaranteed
// to the document before history is admitted.
type Budget struct {
	MaxChars int
	DocFloor float64
}

// Session owns the active document and the ordered chat history for one
// interactive session. All mutation goes through its methods; the design
// assumes at most one task in flight per session.
type Session struct {
	id      uuid.UUID
	doc     *document.Document
	history []Turn
	budget  Budget
}

func New(budget Budget) *Session {
	return &Session{
		id:     uuid.New(),
		budget: budget,
	}
}

func (s *Session) ID() uuid.UUID { return s.id }

func (s *Session) Budget() Budget { return s.budget }

// SetDocument installs a new document, replacing any previous one. The chat
// history refers to the old document, so it is cleared.
func (s *Session) SetDocument(doc *document.Document) {
	s.doc = doc
	s.history = nil
}

func (s *Session) Document() *document.Document { return s.doc }

// History returns a copy of the chat history in chronological order.
func (s *Session) History() []Turn {
	out := make([]Turn, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Session) AppendUser(content string) {
	s.history = append(s.history, Turn{Role: RoleUser, Content: content, At: time.Now()})
}

func (s *Session) AppendAssistant(content string) {
	s.history = append(s.history, Turn{Role: RoleAssistant, Content: content, At: time.Now()})
}

// DropPendingUserTurn removes the trailing user turn, if any. After a failed
// model call the user turn stays appended so input is not lost; callers that
// prefer to roll back instead use this.
func (s *Session) DropPendingUserTurn() bool {
	n := len(s.history)
	if n == 0 || s.history[n-1].Role != RoleUser {
		return false
	}
	s.history = s.history[:n-1]
	return true
}

func (s *Session) ClearHistory() {
	s.history = nil
}

// BuildContext assembles the bounded context for the session's document and
// history under the session budget.
func (s *Session) BuildContext(includeHistory bool) string {
	return Build(s.doc, s.history, s.budget, includeHistory)
}
