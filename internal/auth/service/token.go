package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/linkforge/uriadmin/internal/auth/domain"
	"github.com/linkforge/uriadmin/pkg/idx"
	"github.com/linkforge/uriadmin/pkg/jwtx"
)

// TokenService mints and validates the access/refresh token pair.
type TokenService struct {
	Keys   *jwtx.KeyManager
	Issuer string

	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewTokenService(keys *jwtx.KeyManager, issuer string, accessTTL, refreshTTL time.Duration) *TokenService {
	if accessTTL <= 0 {
		accessTTL = jwtx.DefaultAccessTokenTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = jwtx.DefaultRefreshTokenTTL
	}
	return &TokenService{
		Keys:       keys,
		Issuer:     issuer,
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
		Now:        time.Now,
	}
}

// Issue mints a fresh access/refresh pair for the user. Both tokens share
// a session id so the pair can be correlated in logs.
func (s *TokenService) Issue(user *domain.User) (*domain.TokenPair, error) {
	now := s.Now()
	subject := strconv.FormatInt(user.ID, 10)
	sid := idx.New().String()

	access, err := s.Keys.Signer.Sign(jwtx.NewAccessClaims(
		subject, sid,
		user.Username, user.Nickname, user.Email,
		s.AccessTTL, s.Issuer, now,
	))
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refresh, err := s.Keys.Signer.Sign(jwtx.NewRefreshClaims(
		subject, sid, s.RefreshTTL, s.Issuer, now,
	))
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		IssuedAt:         now,
		AccessExpiresAt:  now.Add(s.AccessTTL),
		RefreshExpiresAt: now.Add(s.RefreshTTL),
	}, nil
}

// ValidateAccess verifies signature, expiry and the access type marker.
// Every failure collapses into ErrInvalidToken so callers leak nothing
// about which check tripped.
func (s *TokenService) ValidateAccess(token string) (*jwtx.Claims, error) {
	return s.validate(token, jwtx.TokenTypeAccess)
}

// ValidateRefresh verifies signature, expiry and the refresh type marker.
func (s *TokenService) ValidateRefresh(token string) (*jwtx.Claims, error) {
	return s.validate(token, jwtx.TokenTypeRefresh)
}

func (s *TokenService) validate(token, tokenType string) (*jwtx.Claims, error) {
	claims, err := s.Keys.Verifier.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if err := claims.ValidateType(tokenType); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}
