// Package users declares the credential store repository and its PostgreSQL
// and SQLite implementations.
package users

import (
	"context"

	"github.com/dmitrijs2005/astrochat/internal/server/models"
)

// Repository persists user identity records keyed by a unique, lowercased email.
type Repository interface {
	// Create inserts user and fills in the assigned ID. A duplicate email
	// yields common.ErrorConflict.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the user with the given email or common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Exists reports whether a user with the given email is stored.
	Exists(ctx context.Context, email string) (bool, error)
}
