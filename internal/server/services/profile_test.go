package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/astrochat/internal/common"
	"github.com/dmitrijs2005/astrochat/internal/server/session"
)

func newProfileService(repo *fakeProfilesRepo) *ProfileService {
	return NewProfileService(nil, &fakeRepoManager{p: repo}, discardLogger())
}

func newSession(userID int64) *session.Session {
	return session.New("sid", userID, "", time.Now().Add(time.Hour))
}

func TestSaveAndGetProfile(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProfilesRepo()
	s := newProfileService(repo)

	ok, err := s.IsProfileComplete(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.GetProfile(ctx, 1)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, s.SaveProfile(ctx, 1, birthProfile))

	ok, err = s.IsProfileComplete(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	p, err := s.GetProfile(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.UserID)
	assert.Equal(t, birthProfile, p.ProfileFields)
}

func TestProfile_StorageErrors(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProfilesRepo()
	repo.upsertErr, repo.getErr, repo.existsErr = errDB, errDB, errDB
	s := newProfileService(repo)

	assert.ErrorIs(t, s.SaveProfile(ctx, 1, birthProfile), common.ErrorStorage)
	_, err := s.GetProfile(ctx, 1)
	assert.ErrorIs(t, err, common.ErrorStorage)
	_, err = s.IsProfileComplete(ctx, 1)
	assert.ErrorIs(t, err, common.ErrorStorage)
}

func TestGetProfileSmart_ReadsThroughOnce(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProfilesRepo()
	s := newProfileService(repo)
	sess := newSession(1)

	require.NoError(t, s.SaveProfile(ctx, 1, birthProfile))

	for i := 0; i < 3; i++ {
		p, err := s.GetProfileSmart(ctx, sess, 1)
		require.NoError(t, err)
		assert.Equal(t, birthProfile, p.ProfileFields)
	}
	assert.Equal(t, int64(1), repo.reads.Load(), "only the first read hits the store")
}

func TestGetProfileSmart_NeverServesOtherUser(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProfilesRepo()
	s := newProfileService(repo)
	sess := newSession(1)

	require.NoError(t, s.SaveProfile(ctx, 1, birthProfile))
	_, err := s.GetProfileSmart(ctx, sess, 1)
	require.NoError(t, err)

	_, err = s.GetProfileSmart(ctx, sess, 2)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	cached, ok := sess.CachedProfile(1)
	assert.True(t, ok, "a miss does not evict the slot")
	assert.Equal(t, birthProfile, cached)
}

func TestGetProfileSmart_MissDoesNotPopulate(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProfilesRepo()
	s := newProfileService(repo)
	sess := newSession(1)

	_, err := s.GetProfileSmart(ctx, sess, 1)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, ok := sess.CachedProfile(1)
	assert.False(t, ok)

	repo.getErr = errDB
	_, err = s.GetProfileSmart(ctx, sess, 1)
	assert.ErrorIs(t, err, common.ErrorStorage)
	_, ok = sess.CachedProfile(1)
	assert.False(t, ok)
}

func TestGetProfileSmart_NilSession(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProfilesRepo()
	s := newProfileService(repo)
	require.NoError(t, s.SaveProfile(ctx, 1, birthProfile))

	_, err := s.GetProfileSmart(ctx, nil, 1)
	require.NoError(t, err)
	_, err = s.GetProfileSmart(ctx, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), repo.reads.Load())
}

// Registration, login and onboarding against a real schema.
func TestScenario_RegisterLoginOnboard(t *testing.T) {
	ctx := context.Background()
	db, users, _, profilesSvc, _ := newSQLiteServices(t)

	_, err := users.CreateUser(ctx, "a", "a@x.com", "pw1")
	require.NoError(t, err)

	_, err = users.CreateUser(ctx, "a2", "a@x.com", "pw2")
	assert.ErrorIs(t, err, common.ErrorConflict)

	_, err = users.VerifyUser(ctx, "a@x.com", "wrong")
	assert.Equal(t, common.KindInvalid, common.KindOf(err))

	n, err := users.VerifyUser(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	ok, err := profilesSvc.IsProfileComplete(ctx, n)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, profilesSvc.SaveProfile(ctx, n, birthProfile))

	ok, err = profilesSvc.IsProfileComplete(ctx, n)
	require.NoError(t, err)
	assert.True(t, ok)

	p, err := profilesSvc.GetProfile(ctx, n)
	require.NoError(t, err)
	assert.Equal(t, birthProfile, p.ProfileFields)

	updated := birthProfile
	updated.PlaceOfBirth = "Mumbai"
	require.NoError(t, profilesSvc.SaveProfile(ctx, n, updated))

	var rows int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_profiles WHERE user_id = ?`, n).Scan(&rows))
	assert.Equal(t, 1, rows)

	p, err = profilesSvc.GetProfile(ctx, n)
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", p.PlaceOfBirth)
}
