package profiles

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/astrochat/internal/dbx"
	"github.com/dmitrijs2005/astrochat/internal/server/models"
)

// SQLiteRepository implements profile storage for the embedded SQLite store.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, p *models.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_profiles (user_id, dob, tob, place, fav_color, rashi, language, gender)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			dob = excluded.dob,
			tob = excluded.tob,
			place = excluded.place,
			fav_color = excluded.fav_color,
			rashi = excluded.rashi,
			language = excluded.language,
			gender = excluded.gender
	`, upsertArgs(p)...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, userID int64) (*models.Profile, error) {
	return scanProfile(userID, r.db.QueryRowContext(ctx, `
		SELECT dob, tob, place, fav_color, rashi, language, gender
		FROM user_profiles
		WHERE user_id = ?
	`, userID))
}

func (r *SQLiteRepository) Exists(ctx context.Context, userID int64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM user_profiles WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}
