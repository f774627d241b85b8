// Package store defines the persistence contracts for the auth service.
// Drivers live in subpackages; bunstore is the SQLite-backed default.
package store

import (
	"context"
	"errors"

	"github.com/linkforge/uriadmin/internal/auth/domain"
)

// ErrNotFound is returned when a lookup matches no live row. Soft-deleted
// rows are invisible to the normal read paths, so they report not found too.
var ErrNotFound = errors.New("record not found")

// Store is the root persistence handle.
type Store interface {
	Users() Users
	Ping(ctx context.Context) error
	Close() error
}

// Users is the credential record repository. Reads exclude soft-deleted
// rows unless the method name says otherwise. Writes pass through the audit
// interceptor before hitting the database.
type Users interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByIdentifier resolves a user by username or email, whichever
	// matches first.
	GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error)

	Create(ctx context.Context, user *domain.User) error

	// Update persists the named columns plus whatever the audit
	// interceptor stamps. An empty column list updates all columns.
	Update(ctx context.Context, user *domain.User, columns ...string) error

	// Delete tombstones the row; it is never physically removed.
	Delete(ctx context.Context, user *domain.User) error

	// GetByIDIncludingDeleted bypasses the soft-delete filter, for
	// administrative inspection of tombstoned rows.
	GetByIDIncludingDeleted(ctx context.Context, id int64) (*domain.User, error)

	// IsEmpty reports whether any user rows exist at all, deleted
	// included. Used to decide whether to seed the bootstrap account.
	IsEmpty(ctx context.Context) (bool, error)
}
