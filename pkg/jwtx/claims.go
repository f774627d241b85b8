package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Default token TTLs. Access tokens stay short-lived; the refresh token is
// the only long-lived credential and carries almost nothing.
const (
	DefaultAccessTokenTTL  = 30 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Token type markers, carried in the "typ" claim. An access token must
// never be accepted where a refresh token is expected and vice versa.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
	ErrTokenType   = errors.New("jwtx: unexpected token type")
)

// Claims are the token claims minted by this service. Access tokens carry
// the full identity set; refresh tokens carry only the subject plus the
// type marker, enough to re-resolve the user without re-presenting the
// credential.
type Claims struct {
	jwt.RegisteredClaims

	// TokenType distinguishes access from refresh tokens ("typ").
	TokenType string `json:"typ,omitempty"`

	// SID is the session id shared by the access/refresh pair.
	SID string `json:"sid,omitempty"`

	// Username is the login identifier of the authenticated user.
	Username string `json:"username,omitempty"`

	// Nickname is the user's display name.
	Nickname string `json:"nickname,omitempty"`

	// Email of the authenticated user.
	Email string `json:"email,omitempty"`
}

// NewAccessClaims builds the claim set for an access token.
func NewAccessClaims(
	subject, sid string,
	username, nickname, email string,
	ttl time.Duration,
	issuer string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: registered(subject, issuer, ttl, now),
		TokenType:        TokenTypeAccess,
		SID:              sid,
		Username:         username,
		Nickname:         nickname,
		Email:            email,
	}
}

// NewRefreshClaims builds the minimal claim set for a refresh token: the
// subject, the session id and the type marker. Display data belongs in the
// access token only.
func NewRefreshClaims(subject, sid string, ttl time.Duration, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: registered(subject, issuer, ttl, now),
		TokenType:        TokenTypeRefresh,
		SID:              sid,
	}
}

func registered(subject, issuer string, ttl time.Duration, now time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}
}

// ValidateIssuer checks the issuer claim against the expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used
// before it is valid (nbf).
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}

// ValidateType checks the token type marker. This is an independent check
// from signature and expiry; all three must pass before a token is usable.
func (c *Claims) ValidateType(expected string) error {
	if c.TokenType != expected {
		return ErrTokenType
	}
	return nil
}
