// Package audit stamps creation, modification and soft-delete metadata onto
// entities before they are written. The store drivers call Apply for every
// pending write; capability is discovered per entity instance through the
// interfaces below, so an entity may support any subset of the three.
package audit

import (
	"context"
	"time"

	"github.com/linkforge/uriadmin/internal/auth/identity"
)

// Op is the entity-state transition being intercepted.
type Op int

const (
	OpInsert Op = iota
	OpUpdate
	OpDelete
)

// CreationAudited entities record who created them and when.
type CreationAudited interface {
	SetCreateStamp(userID int64, at time.Time)
}

// ModificationAudited entities record the last modification. The user id is
// only ever set to a non-anonymous identity; the timestamp always refreshes.
type ModificationAudited interface {
	SetUpdateUser(userID int64)
	SetUpdateTime(at time.Time)
}

// DeleteAudited entities are never physically removed. The marker is 0 for
// live rows and the deletion instant (UnixNano) once deleted, making every
// tombstone non-zero and unique per delete event.
type DeleteAudited interface {
	SetDeletedMarker(marker int64)
	DeletedMarker() int64
}

// Audit column names, matched by the bun tags on audited entities. Apply
// returns the subset it touched so update paths can scope their column list.
const (
	ColCreateUserID = "create_user_id"
	ColCreateTime   = "create_time"
	ColUpdateUserID = "update_user_id"
	ColUpdateTime   = "update_time"
	ColIsDeleted    = "is_deleted"
)

// Apply stamps entity for the given operation and returns the column names
// it touched.
//
// The actor is taken from the context's identity. An unresolvable identity
// (outside a request scope, or malformed claims) degrades to the zero
// sentinel instead of failing: audit stamping never blocks a write.
func Apply(ctx context.Context, op Op, entity any) []string {
	return ApplyAt(ctx, op, entity, time.Now())
}

// ApplyAt is Apply with an explicit instant, for deterministic tests.
func ApplyAt(ctx context.Context, op Op, entity any, now time.Time) []string {
	userID := actorID(ctx)

	var touched []string

	switch op {
	case OpInsert:
		if c, ok := entity.(CreationAudited); ok {
			c.SetCreateStamp(userID, now)
			touched = append(touched, ColCreateUserID, ColCreateTime)
		}
		if m, ok := entity.(ModificationAudited); ok {
			m.SetUpdateUser(userID)
			m.SetUpdateTime(now)
			touched = append(touched, ColUpdateUserID, ColUpdateTime)
		}

	case OpUpdate:
		if m, ok := entity.(ModificationAudited); ok {
			if userID != 0 {
				m.SetUpdateUser(userID)
				touched = append(touched, ColUpdateUserID)
			}
			m.SetUpdateTime(now)
			touched = append(touched, ColUpdateTime)
		}

	case OpDelete:
		if d, ok := entity.(DeleteAudited); ok {
			d.SetDeletedMarker(now.UnixNano())
			touched = append(touched, ColIsDeleted)
		}
		if m, ok := entity.(ModificationAudited); ok {
			if userID != 0 {
				m.SetUpdateUser(userID)
				touched = append(touched, ColUpdateUserID)
			}
			m.SetUpdateTime(now)
			touched = append(touched, ColUpdateTime)
		}
	}

	return touched
}

// actorID resolves the current identity, degrading to the zero sentinel
// when there is none or it cannot be parsed.
func actorID(ctx context.Context) int64 {
	uc, err := identity.FromContext(ctx)
	if err != nil || uc == nil {
		return 0
	}
	return uc.UserID
}
