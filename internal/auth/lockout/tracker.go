// Package lockout throttles brute-force credential guessing. Failed login
// attempts are counted per identifier in Redis; once the count reaches the
// threshold the identifier is blocked until the window elapses.
package lockout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "login:fail:"

// ErrUnavailable indicates the counter backend is unreachable. Callers
// decide whether to fail open or closed.
var ErrUnavailable = errors.New("lockout backend unavailable")

// Config holds the lockout policy.
type Config struct {
	// Threshold is the number of failures at which an identifier is
	// blocked.
	Threshold int

	// Window is how long the counter lives. It is refreshed on every
	// failure, so the identifier stays blocked until the attempts stop
	// for a full window.
	Window time.Duration
}

// DefaultConfig blocks after 5 failures within a sliding 5 minute window.
func DefaultConfig() Config {
	return Config{Threshold: 5, Window: 5 * time.Minute}
}

// Tracker counts login failures per identifier.
type Tracker struct {
	redis  redis.UniversalClient
	config Config
}

func NewTracker(redisClient redis.UniversalClient, cfg Config) *Tracker {
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultConfig().Threshold
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultConfig().Window
	}
	return &Tracker{redis: redisClient, config: cfg}
}

func (t *Tracker) key(identifier string) string {
	return keyPrefix + identifier
}

// CheckAllowed reports whether the identifier may attempt a login. It is
// called before the credential check, so a blocked identifier is refused
// even when the submitted secret is correct.
func (t *Tracker) CheckAllowed(ctx context.Context, identifier string) (bool, error) {
	count, err := t.redis.Get(ctx, t.key(identifier)).Int64()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return count < int64(t.config.Threshold), nil
}

// RecordFailure increments the failure counter and refreshes its expiry,
// returning true once the threshold has been reached.
func (t *Tracker) RecordFailure(ctx context.Context, identifier string) (bool, error) {
	count, err := t.redis.Incr(ctx, t.key(identifier)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// Refresh the TTL on every failure so the window slides with the
	// attempts instead of expiring mid-attack.
	if err := t.redis.Expire(ctx, t.key(identifier), t.config.Window).Err(); err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return count >= int64(t.config.Threshold), nil
}

// Reset clears the failure counter after a successful login.
func (t *Tracker) Reset(ctx context.Context, identifier string) error {
	if err := t.redis.Del(ctx, t.key(identifier)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// FailureCount returns the current counter value, 0 when absent.
func (t *Tracker) FailureCount(ctx context.Context, identifier string) (int64, error) {
	count, err := t.redis.Get(ctx, t.key(identifier)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return count, nil
}
