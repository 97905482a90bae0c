package profiles

import (
	"context"

	"github.com/dmitrijs2005/astrochat/internal/server/models"
)

// Repository persists at most one birth profile per user.
type Repository interface {
	// Upsert inserts the profile or overwrites every field of the existing
	// row for the same user in a single atomic statement.
	Upsert(ctx context.Context, profile *models.Profile) error

	// Get returns the profile of userID or common.ErrorNotFound.
	Get(ctx context.Context, userID int64) (*models.Profile, error)

	// Exists reports whether userID has a profile row.
	Exists(ctx context.Context, userID int64) (bool, error)
}
