package domain

import (
	"time"

	"github.com/uptrace/bun"
)

// FullAudit carries the audit columns shared by every fully-audited entity.
// Embed it in an entity struct to opt in to creation tracking, modification
// tracking and soft deletion all at once; the audit interceptor discovers
// each capability through the setter interfaces below, so an entity may
// also implement any subset by hand.
type FullAudit struct {
	// CreateUserID is the identity that created the row, 0 when the row
	// was created outside an authenticated request scope.
	CreateUserID int64     `bun:"create_user_id" json:"create_user_id"`
	CreateTime   time.Time `bun:"create_time,nullzero" json:"create_time"`

	// UpdateUserID is the last non-anonymous identity that modified the
	// row. Anonymous modifications leave it untouched.
	UpdateUserID int64     `bun:"update_user_id" json:"update_user_id"`
	UpdateTime   time.Time `bun:"update_time,nullzero" json:"update_time"`

	// IsDeleted is 0 for live rows. A deleted row holds the deletion
	// instant in nanoseconds, so every tombstone is non-zero and
	// distinguishable from every other delete event.
	IsDeleted int64 `bun:"is_deleted" json:"-"`
}

func (a *FullAudit) SetCreateStamp(userID int64, at time.Time) {
	a.CreateUserID = userID
	a.CreateTime = at
}

func (a *FullAudit) SetUpdateUser(userID int64) { a.UpdateUserID = userID }
func (a *FullAudit) SetUpdateTime(at time.Time) { a.UpdateTime = at }

func (a *FullAudit) SetDeletedMarker(marker int64) { a.IsDeleted = marker }
func (a *FullAudit) DeletedMarker() int64          { return a.IsDeleted }

// User is the credential record of a console operator. Lookup during login
// accepts either the username or the email as the identifier.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID       int64  `bun:"id,pk,autoincrement"`
	Username string `bun:"username,notnull"`
	Nickname string `bun:"nickname,notnull"`
	Email    string `bun:"email,notnull"`

	// PasswordHash and PasswordSalt are opaque base64 strings produced by
	// the credential verifier. The raw secret is never stored or logged.
	PasswordHash string `bun:"password_hash,notnull"`
	PasswordSalt string `bun:"password_salt,notnull"`

	FullAudit
}
