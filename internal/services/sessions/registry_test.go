package sessions

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestAcquireEnforcesSingleTask(t *testing.T) {
	r := NewRegistry()
	sess := r.Create()

	_, release, err := r.Acquire(sess.ID())
	if err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}

	if _, _, err := r.Acquire(sess.ID()); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}

	release()
	_, release2, err := r.Acquire(sess.ID())
	if err != nil {
		t.Fatalf("acquire after release failed: %v", err)
	}
	release2()
}

func TestAcquireUnknownSession(t *testing.T) {
	r := NewRegistry()
	if _, _, err := r.Acquire(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	r := NewRegistry()
	sess := r.Create()
	r.Remove(sess.ID())
	if _, ok := r.Get(sess.ID()); ok {
		t.Fatal("session still present after remove")
	}
}
