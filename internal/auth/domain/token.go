package domain

import "time"

// TokenPair is the result of a successful login or refresh. Both tokens are
// self-contained signed JWTs; no server-side session row backs them.
type TokenPair struct {
	AccessToken  string
	RefreshToken string

	IssuedAt         time.Time
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}
