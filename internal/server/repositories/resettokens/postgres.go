package resettokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/astrochat/internal/common"
	"github.com/dmitrijs2005/astrochat/internal/dbx"
	"github.com/dmitrijs2005/astrochat/internal/server/models"
)

// PostgresRepository implements reset token storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Set overwrites the reset token and its expiry for email.
func (r *PostgresRepository) Set(ctx context.Context, email, token string, expiry int64) (bool, error) {
	query :=
		`UPDATE users SET reset_token = $1, reset_token_expiry = $2
		 WHERE email = $3`

	res, err := r.db.ExecContext(ctx, query, token, expiry, email)
	if err != nil {
		return false, fmt.Errorf("error performing sql request: %w", err)
	}
	return affectedOne(res)
}

// Find returns the stored reset state for email.
func (r *PostgresRepository) Find(ctx context.Context, email string) (*models.ResetToken, error) {
	query :=
		`SELECT id, reset_token, reset_token_expiry FROM users
		 WHERE email = $1`

	return scanToken(r.db.QueryRowContext(ctx, query, email))
}

// Consume rotates the password and clears the token if it is still valid at now.
func (r *PostgresRepository) Consume(ctx context.Context, email, token string, now int64, passwordHash, salt string) (bool, error) {
	query :=
		`UPDATE users
		 SET password_hash = $1, salt = $2, reset_token = NULL, reset_token_expiry = NULL
		 WHERE email = $3 AND reset_token = $4 AND reset_token_expiry >= $5`

	res, err := r.db.ExecContext(ctx, query, passwordHash, salt, email, token, now)
	if err != nil {
		return false, fmt.Errorf("error performing sql request: %w", err)
	}
	return affectedOne(res)
}

func scanToken(row *sql.Row) (*models.ResetToken, error) {
	var (
		t      models.ResetToken
		token  sql.NullString
		expiry sql.NullInt64
	)
	if err := row.Scan(&t.UserID, &token, &expiry); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	t.Token = token.String
	if expiry.Valid {
		v := expiry.Int64
		t.Expiry = &v
	}
	return &t, nil
}

func affectedOne(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n == 1, nil
}
