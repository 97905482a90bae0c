// Package profiles provides PostgreSQL- and SQLite-backed repositories for
// user birth profiles.
package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/astrochat/internal/common"
	"github.com/dmitrijs2005/astrochat/internal/dbx"
	"github.com/dmitrijs2005/astrochat/internal/server/models"
)

// PostgresRepository implements profile storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert relies on the unique user_id constraint, so two concurrent first
// saves for one user still leave a single row.
func (r *PostgresRepository) Upsert(ctx context.Context, p *models.Profile) error {
	query := `
		INSERT INTO user_profiles (user_id, dob, tob, place, fav_color, rashi, language, gender)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id)
		DO UPDATE SET
			dob = EXCLUDED.dob,
			tob = EXCLUDED.tob,
			place = EXCLUDED.place,
			fav_color = EXCLUDED.fav_color,
			rashi = EXCLUDED.rashi,
			language = EXCLUDED.language,
			gender = EXCLUDED.gender
	`
	_, err := r.db.ExecContext(ctx, query, upsertArgs(p)...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Get returns the profile for userID.
func (r *PostgresRepository) Get(ctx context.Context, userID int64) (*models.Profile, error) {
	query := `
		SELECT dob, tob, place, fav_color, rashi, language, gender
		FROM user_profiles
		WHERE user_id = $1
	`
	return scanProfile(userID, r.db.QueryRowContext(ctx, query, userID))
}

// Exists reports whether a profile row exists for userID.
func (r *PostgresRepository) Exists(ctx context.Context, userID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM user_profiles WHERE user_id = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func upsertArgs(p *models.Profile) []any {
	return []any{p.UserID, p.DateOfBirth, p.TimeOfBirth, p.PlaceOfBirth,
		p.FavoriteColor, p.Rashi, p.Language, p.Gender}
}

// scanProfile reads the seven text columns; NULLs left by manual edits read
// as empty strings.
func scanProfile(userID int64, row *sql.Row) (*models.Profile, error) {
	var cols [7]sql.NullString
	err := row.Scan(&cols[0], &cols[1], &cols[2], &cols[3], &cols[4], &cols[5], &cols[6])
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &models.Profile{
		UserID: userID,
		ProfileFields: models.ProfileFields{
			DateOfBirth:   cols[0].String,
			TimeOfBirth:   cols[1].String,
			PlaceOfBirth:  cols[2].String,
			FavoriteColor: cols[3].String,
			Rashi:         cols[4].String,
			Language:      cols[5].String,
			Gender:        cols[6].String,
		},
	}, nil
}
