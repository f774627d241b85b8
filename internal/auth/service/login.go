package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/linkforge/uriadmin/internal/auth/domain"
	"github.com/linkforge/uriadmin/internal/auth/lockout"
	"github.com/linkforge/uriadmin/internal/auth/store"
	"github.com/linkforge/uriadmin/pkg/cryptox"
	"github.com/linkforge/uriadmin/pkg/slogx"
)

// LoginService implements the credential login and token refresh flows.
type LoginService struct {
	Store   store.Store
	Lockout *lockout.Tracker
	Tokens  *TokenService
}

// LoginResult is the payload returned to a successfully authenticated
// client.
type LoginResult struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       int64  `json:"user_id"`
	Username     string `json:"username"`

	// ExpiresAt is the access token expiry as epoch milliseconds.
	ExpiresAt int64 `json:"expires_at"`
}

// Login authenticates an identifier/secret pair.
//
// The lockout counter is consulted first, so a blocked identifier is
// refused before any credential work happens and the correct secret does
// not unlock it early. Unknown identifiers and wrong secrets both count as
// failures and both surface as ErrInvalidCredentials.
func (s *LoginService) Login(ctx context.Context, identifier, secret string) (*LoginResult, error) {
	log := slogx.FromContext(ctx)

	allowed, err := s.Lockout.CheckAllowed(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("check lockout: %w", err)
	}
	if !allowed {
		log.Warn("login refused, identifier locked out",
			slog.String("identifier", identifier),
		)
		return nil, ErrLockedOut
	}

	user, err := s.Store.Users().GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, s.recordFailure(ctx, identifier)
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !cryptox.VerifySecret(secret, user.PasswordHash, user.PasswordSalt) {
		return nil, s.recordFailure(ctx, identifier)
	}

	if err := s.Lockout.Reset(ctx, identifier); err != nil {
		// The login itself succeeded; a stale counter only shortens the
		// runway of a future attacker, so log and continue.
		log.Warn("failed to reset lockout counter", slog.Any("error", err))
	}

	pair, err := s.Tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	log.Info("user logged in",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return result(user, pair), nil
}

// Refresh exchanges a valid refresh token for a fresh access/refresh pair.
// The user is re-loaded through the default read path, so a token whose
// subject has been deleted since issuance is refused.
func (s *LoginService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	claims, err := s.Tokens.ValidateRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, fmt.Errorf("%w: malformed subject", ErrInvalidToken)
	}

	user, err := s.Store.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: subject no longer exists", ErrInvalidToken)
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	pair, err := s.Tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	slogx.FromContext(ctx).Info("tokens refreshed", slog.Int64("user_id", user.ID))

	return result(user, pair), nil
}

// recordFailure bumps the counter and reports the merged credential error.
// Reaching the threshold on this attempt still reads as bad credentials;
// the lockout only answers the next attempt.
func (s *LoginService) recordFailure(ctx context.Context, identifier string) error {
	if _, err := s.Lockout.RecordFailure(ctx, identifier); err != nil {
		return fmt.Errorf("record login failure: %w", err)
	}
	return ErrInvalidCredentials
}

func result(user *domain.User, pair *domain.TokenPair) *LoginResult {
	return &LoginResult{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		UserID:       user.ID,
		Username:     user.Username,
		ExpiresAt:    pair.AccessExpiresAt.UnixMilli(),
	}
}
