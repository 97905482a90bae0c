package resettokens

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/astrochat/internal/common"
	"github.com/dmitrijs2005/astrochat/internal/testutil"
)

func TestSQLiteRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLiteDB(t)
	_, err := db.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, salt) VALUES ('alice', 'a@x.com', 'h', 's')`)
	require.NoError(t, err)

	repo := NewSQLiteRepository(db)

	st, err := repo.Find(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Empty(t, st.Token)
	assert.Nil(t, st.Expiry)

	ok, err := repo.Set(ctx, "a@x.com", "tok1", 1000)
	require.NoError(t, err)
	require.True(t, ok)

	// reissue overwrites
	ok, err = repo.Set(ctx, "a@x.com", "tok2", 2000)
	require.NoError(t, err)
	require.True(t, ok)

	st, err = repo.Find(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "tok2", st.Token)
	require.NotNil(t, st.Expiry)
	assert.Equal(t, int64(2000), *st.Expiry)

	ok, err = repo.Consume(ctx, "a@x.com", "tok1", 1500, "h2", "s2")
	require.NoError(t, err)
	assert.False(t, ok, "stale token must not be consumed")

	ok, err = repo.Consume(ctx, "a@x.com", "tok2", 2001, "h2", "s2")
	require.NoError(t, err)
	assert.False(t, ok, "expired token must not be consumed")

	ok, err = repo.Consume(ctx, "a@x.com", "tok2", 2000, "h2", "s2")
	require.NoError(t, err)
	assert.True(t, ok)

	st, err = repo.Find(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Empty(t, st.Token)
	assert.Nil(t, st.Expiry)

	var hash, salt string
	require.NoError(t, db.QueryRowContext(ctx, `SELECT password_hash, salt FROM users WHERE email = 'a@x.com'`).Scan(&hash, &salt))
	assert.Equal(t, "h2", hash)
	assert.Equal(t, "s2", salt)

	ok, err = repo.Consume(ctx, "a@x.com", "tok2", 2000, "h3", "s3")
	require.NoError(t, err)
	assert.False(t, ok, "token is single-use")
}

func TestSQLiteRepository_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(testutil.NewSQLiteDB(t))

	ok, err := repo.Set(ctx, "ghost@x.com", "tok", 1)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.Find(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
