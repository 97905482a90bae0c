package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/astrochat/internal/common"
	"github.com/dmitrijs2005/astrochat/internal/server/models"
)

var fields = models.ProfileFields{
	DateOfBirth: "1990-01-01", TimeOfBirth: "10:00", PlaceOfBirth: "Pune",
	FavoriteColor: "Blue", Rashi: "Leo", Language: "English", Gender: "Male",
}

func TestSession_CacheTaggedByUser(t *testing.T) {
	s := New("sid", 1, "a@x.com", time.Now().Add(time.Hour))

	_, ok := s.CachedProfile(1)
	assert.False(t, ok, "empty cache is a miss")

	s.SetCachedProfile(1, fields)
	got, ok := s.CachedProfile(1)
	require.True(t, ok)
	assert.Equal(t, fields, got)

	_, ok = s.CachedProfile(2)
	assert.False(t, ok, "other user must never see the cached profile")

	other := fields
	other.Rashi = "Virgo"
	s.SetCachedProfile(2, other)
	_, ok = s.CachedProfile(1)
	assert.False(t, ok, "single slot replaced")
	got, ok = s.CachedProfile(2)
	require.True(t, ok)
	assert.Equal(t, "Virgo", got.Rashi)

	s.InvalidateProfile()
	_, ok = s.CachedProfile(2)
	assert.False(t, ok)
}

func TestSession_ConcurrentAccess(t *testing.T) {
	s := New("sid", 1, "", time.Now().Add(time.Hour))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetCachedProfile(1, fields)
		}()
		go func() {
			defer wg.Done()
			if got, ok := s.CachedProfile(1); ok {
				assert.Equal(t, fields, got)
			}
		}()
	}
	wg.Wait()
}

func TestRegistry_Lifecycle(t *testing.T) {
	now := time.Unix(1_000_000, 0)
	r := NewRegistry().WithClock(func() time.Time { return now })

	s := r.Open(7, "a@x.com", time.Minute)
	require.NotEmpty(t, s.ID())
	assert.Equal(t, int64(7), s.UserID())
	assert.Equal(t, "a@x.com", s.Email())
	assert.Equal(t, now.Add(time.Minute), s.ExpiresAt())

	got, err := r.Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)

	s2 := r.Open(7, "a@x.com", time.Minute)
	assert.NotEqual(t, s.ID(), s2.ID())
	assert.Equal(t, 2, r.Len())

	s.SetCachedProfile(7, fields)
	r.Close(s.ID())
	_, ok := s.CachedProfile(7)
	assert.False(t, ok, "close clears the cache")
	_, err = r.Get(s.ID())
	assert.ErrorIs(t, err, common.ErrSessionNotFound)

	r.Close("unknown")
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_ExpiredSessionDropped(t *testing.T) {
	now := time.Unix(1_000_000, 0)
	r := NewRegistry().WithClock(func() time.Time { return now })

	s := r.Open(1, "", time.Minute)

	now = now.Add(time.Minute)
	_, err := r.Get(s.ID())
	require.NoError(t, err, "valid up to and including the expiry instant")

	now = now.Add(time.Second)
	_, err = r.Get(s.ID())
	assert.ErrorIs(t, err, common.ErrSessionNotFound)
	assert.Equal(t, 0, r.Len())
}
