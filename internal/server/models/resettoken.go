package models

// ResetToken is the password reset state kept on a users row. Token is empty
// and Expiry is nil when no token is active. Expiry is in Unix seconds.
type ResetToken struct {
	UserID int64
	Token  string
	Expiry *int64
}
