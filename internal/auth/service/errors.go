package service

import "errors"

var (
	// ErrInvalidCredentials covers every credential failure: unknown
	// identifier, wrong secret, or an unverifiable stored hash. Callers
	// must not be able to tell which, so user enumeration stays blind.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrLockedOut means the identifier exceeded the failure threshold.
	// Reported before the secret is even checked.
	ErrLockedOut = errors.New("too many failed login attempts")

	// ErrInvalidToken covers every token failure: bad signature, expired,
	// wrong type, or a subject that no longer resolves to a live user.
	ErrInvalidToken = errors.New("invalid token")
)
