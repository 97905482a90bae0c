package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/astrochat/internal/common"
)

// Registry keeps the live sessions of this process.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session), now: time.Now}
}

// WithClock replaces the time source. Used by tests.
func (r *Registry) WithClock(now func() time.Time) *Registry {
	r.now = now
	return r
}

// Open starts a new session for userID valid for ttl.
func (r *Registry) Open(userID int64, email string, ttl time.Duration) *Session {
	s := New(uuid.NewString(), userID, email, r.now().Add(ttl))

	r.mu.Lock()
	r.sessions[s.id] = s
	r.mu.Unlock()

	return s
}

// Get returns the live session with id. Expired sessions are dropped.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, common.ErrSessionNotFound
	}
	if s.Expired(r.now()) {
		delete(r.sessions, id)
		s.InvalidateProfile()
		return nil, common.ErrSessionNotFound
	}
	return s, nil
}

// Close ends the session and clears its cache. Closing an unknown id is a no-op.
func (r *Registry) Close(id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		s.InvalidateProfile()
	}
}

// Len returns the number of tracked sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
