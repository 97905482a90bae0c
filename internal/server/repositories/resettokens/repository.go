// Package resettokens declares the server-side repository contract for the
// password reset token state stored on users rows.
package resettokens

import (
	"context"

	"github.com/dmitrijs2005/astrochat/internal/server/models"
)

// Repository defines operations for issuing, reading, and consuming the single
// active reset token of a user. All times are Unix seconds.
type Repository interface {
	// Set stores token and expiry on the user with the given email, replacing
	// any previous token. It reports false when no such user exists.
	Set(ctx context.Context, email, token string, expiry int64) (bool, error)

	// Find returns the reset state of the user or common.ErrorNotFound when
	// the user is absent.
	Find(ctx context.Context, email string) (*models.ResetToken, error)

	// Consume replaces the password hash and salt and clears the token in one
	// statement, but only while token still matches and has not expired at now.
	// It reports false when nothing was updated.
	Consume(ctx context.Context, email, token string, now int64, passwordHash, salt string) (bool, error)
}
