package resettokens

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/astrochat/internal/dbx"
	"github.com/dmitrijs2005/astrochat/internal/server/models"
)

// SQLiteRepository implements reset token storage for the embedded SQLite store.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Set(ctx context.Context, email, token string, expiry int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET reset_token = ?, reset_token_expiry = ? WHERE email = ?`,
		token, expiry, email)
	if err != nil {
		return false, fmt.Errorf("error performing sql request: %w", err)
	}
	return affectedOne(res)
}

func (r *SQLiteRepository) Find(ctx context.Context, email string) (*models.ResetToken, error) {
	return scanToken(r.db.QueryRowContext(ctx,
		`SELECT id, reset_token, reset_token_expiry FROM users WHERE email = ?`, email))
}

func (r *SQLiteRepository) Consume(ctx context.Context, email, token string, now int64, passwordHash, salt string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET password_hash = ?, salt = ?, reset_token = NULL, reset_token_expiry = NULL
		WHERE email = ? AND reset_token = ? AND reset_token_expiry >= ?
	`, passwordHash, salt, email, token, now)
	if err != nil {
		return false, fmt.Errorf("error performing sql request: %w", err)
	}
	return affectedOne(res)
}
