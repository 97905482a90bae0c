// Package cryptox holds the password hashing and token generation primitives
// of the credential store.
//
// Passwords are stored as hex(SHA-256(salt + password)) where salt is a
// per-user random hex string. The format matches the rows written by the
// original deployment, so existing users keep working after migration.
package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
)

const (
	// SaltSize is the number of random bytes in a salt before hex encoding.
	SaltSize = 16
	// ResetTokenSize is the number of random bytes in a reset token.
	ResetTokenSize = 32
)

// randRead is a seam for tests that need the random source to fail.
var randRead = rand.Read

// NewSalt returns SaltSize random bytes, hex-encoded.
func NewSalt() (string, error) {
	b := make([]byte, SaltSize)
	if _, err := randRead(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HashPasswordWithSalt returns hex(SHA-256(salt + password)). It is
// deterministic for a given (salt, password) pair.
func HashPasswordWithSalt(password, salt string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}

// HashPassword generates a fresh salt and returns it together with the digest.
func HashPassword(password string) (salt, digest string, err error) {
	salt, err = NewSalt()
	if err != nil {
		return "", "", err
	}
	return salt, HashPasswordWithSalt(password, salt), nil
}

// CheckPassword recomputes the digest with the stored salt and compares it
// to the stored digest in constant time.
func CheckPassword(password, salt, digest string) bool {
	candidate := HashPasswordWithSalt(password, salt)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(digest)) == 1
}

// NewResetToken returns ResetTokenSize random bytes encoded with the URL-safe
// base64 alphabet without padding.
func NewResetToken() (string, error) {
	b := make([]byte, ResetTokenSize)
	if _, err := randRead(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
