// Package common defines shared constants and sentinel errors used across
// the astrochat core and its transports. Callers should use errors.Is or
// KindOf to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")
	ErrorStorage  = errors.New("storage error")

	// Service-level errors.
	ErrorInternal           = errors.New("internal error")
	ErrorUnauthorized       = errors.New("unauthorized")
	ErrorInvalidCredentials = errors.New("invalid credentials")
	ErrorValidation         = errors.New("validation error")

	// Reset and session token errors.
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token expired")
	ErrSessionNotFound = errors.New("session not found")
)

// Kind is the coarse category of a failure. Presentation code branches on
// the kind instead of matching error strings.
type Kind int

const (
	KindOK Kind = iota
	KindNotFound
	KindInvalid
	KindConflict
	KindStorage
	KindValidation
	KindUnauthorized
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindNotFound:
		return "not_found"
	case KindInvalid:
		return "invalid"
	case KindConflict:
		return "conflict"
	case KindStorage:
		return "storage"
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

// KindOf classifies err. A nil error is KindOK, unknown errors are KindInternal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindOK
	case errors.Is(err, ErrorNotFound):
		return KindNotFound
	case errors.Is(err, ErrorInvalidCredentials),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrTokenExpired):
		return KindInvalid
	case errors.Is(err, ErrorConflict):
		return KindConflict
	case errors.Is(err, ErrorStorage):
		return KindStorage
	case errors.Is(err, ErrorValidation):
		return KindValidation
	case errors.Is(err, ErrorUnauthorized), errors.Is(err, ErrSessionNotFound):
		return KindUnauthorized
	default:
		return KindInternal
	}
}
