package common

// AuthorizationHeaderName carries the bearer session token on HTTP requests.
const AuthorizationHeaderName = "Authorization"

// DefaultResetTokenTTLSeconds is the lifetime of a password reset token when
// the caller does not pass one.
const DefaultResetTokenTTLSeconds = 3600
