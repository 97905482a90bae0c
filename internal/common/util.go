package common

import "strings"

// NormalizeEmail folds an email to the form used as the natural key of the
// users table.
func NormalizeEmail(email string) string {
	return strings.ToLower(email)
}
