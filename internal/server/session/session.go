// Package session holds the per-login context objects and the in-process
// registry that vends them.
package session

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/astrochat/internal/server/models"
)

// Session is the state of one interactive login. It carries a single-slot
// profile cache tagged with the user id it belongs to.
type Session struct {
	id        string
	userID    int64
	email     string
	expiresAt time.Time

	mu      sync.Mutex
	cached  bool
	ownerID int64
	profile models.ProfileFields
}

// New returns a session for userID. Most callers should go through a Registry.
func New(id string, userID int64, email string, expiresAt time.Time) *Session {
	return &Session{id: id, userID: userID, email: email, expiresAt: expiresAt}
}

func (s *Session) ID() string           { return s.id }
func (s *Session) UserID() int64        { return s.userID }
func (s *Session) Email() string        { return s.email }
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.expiresAt)
}

// SetCachedProfile replaces the cached profile with fields owned by userID.
func (s *Session) SetCachedProfile(userID int64, fields models.ProfileFields) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cached = true
	s.ownerID = userID
	s.profile = fields
}

// CachedProfile returns the cached profile only when it is tagged with userID.
func (s *Session) CachedProfile(userID int64) (models.ProfileFields, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cached || s.ownerID != userID {
		return models.ProfileFields{}, false
	}
	return s.profile, true
}

// InvalidateProfile empties the cache slot.
func (s *Session) InvalidateProfile() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cached = false
	s.ownerID = 0
	s.profile = models.ProfileFields{}
}
