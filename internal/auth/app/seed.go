package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linkforge/uriadmin/internal/auth/domain"
	"github.com/linkforge/uriadmin/internal/auth/store"
	"github.com/linkforge/uriadmin/pkg/cryptox"
)

const (
	seedUsername = "admin"
	seedNickname = "Administrator"
	seedEmail    = "admin@admin.com"
)

// SeedAdminUser creates the bootstrap admin account when the user table is
// completely empty. A table with only tombstoned rows counts as seeded, so
// deleting the admin does not resurrect it with a known password on the
// next restart.
func SeedAdminUser(ctx context.Context, st store.Store, password string, logger *slog.Logger) error {
	empty, err := st.Users().IsEmpty(ctx)
	if err != nil {
		return fmt.Errorf("check for existing users: %w", err)
	}
	if !empty {
		return nil
	}

	hash, salt, err := cryptox.HashSecret(password)
	if err != nil {
		return fmt.Errorf("hash bootstrap password: %w", err)
	}

	admin := &domain.User{
		Username:     seedUsername,
		Nickname:     seedNickname,
		Email:        seedEmail,
		PasswordHash: hash,
		PasswordSalt: salt,
	}
	if err := st.Users().Create(ctx, admin); err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}

	logger.Warn("seeded bootstrap admin account, change its password now",
		"username", seedUsername,
		"user_id", admin.ID,
	)
	return nil
}
