package sessions

import (
	"errors"
	"sync"

	"ai-doc-assistant/config"
	"ai-doc-assistant/internal/core/session"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrBusy     = errors.New("session has a task in flight")
)

type entry struct {
	sess *session.Session
	busy bool
}

// Registry holds live sessions. Each session runs at most one task at a time;
// Acquire enforces that.
type Registry struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*entry
}

func NewRegistry() *Registry {
	return &Registry{entries: map[uuid.UUID]*entry{}}
}

// Create registers a new session under the configured context budget.
func (r *Registry) Create() *session.Session {
	sess := session.New(session.Budget{
		MaxChars: config.Cfg.Context.MaxChars,
		DocFloor: config.Cfg.Context.DocFloor,
	})
	r.mu.Lock()
	r.entries[sess.ID()] = &entry{sess: sess}
	r.mu.Unlock()
	return sess
}

// Acquire returns the session and marks it busy. The release func must be
// called when the task finishes.
func (r *Registry) Acquire(id uuid.UUID) (*session.Session, func(), error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, nil, ErrNotFound
	}
	if e.busy {
		return nil, nil, ErrBusy
	}
	e.busy = true

	release := func() {
		r.mu.Lock()
		e.busy = false
		r.mu.Unlock()
	}
	return e.sess, release, nil
}

func (r *Registry) Get(id uuid.UUID) (*session.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	return e.sess, true
}

func (r *Registry) Remove(id uuid.UUID) {
	r.mu.Lock()
	delete(r.entries, id)
	r.mu.Unlock()
}
