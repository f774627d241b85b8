package bunstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/linkforge/uriadmin/internal/auth/audit"
	"github.com/linkforge/uriadmin/internal/auth/domain"
	"github.com/linkforge/uriadmin/internal/auth/store"
)

type usersRepo struct {
	db *bun.DB
}

// visible scopes a query to live rows. Every default read path goes
// through this filter so tombstoned rows behave as if they do not exist.
func visible(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Where("u.is_deleted = 0")
}

func (r *usersRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user := new(domain.User)
	err := visible(r.db.NewSelect().Model(user)).
		Where("u.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return user, nil
}

func (r *usersRepo) GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	user := new(domain.User)
	err := visible(r.db.NewSelect().Model(user)).
		Where("u.username = ? OR u.email = ?", identifier, identifier).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return user, nil
}

func (r *usersRepo) Create(ctx context.Context, user *domain.User) error {
	audit.Apply(ctx, audit.OpInsert, user)

	_, err := r.db.NewInsert().Model(user).Exec(ctx)
	return err
}

func (r *usersRepo) Update(ctx context.Context, user *domain.User, columns ...string) error {
	stamped := audit.Apply(ctx, audit.OpUpdate, user)

	q := r.db.NewUpdate().Model(user).WherePK()
	if len(columns) > 0 {
		q = q.Column(append(columns, stamped...)...)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Delete converts the removal into an update that tombstones the row.
func (r *usersRepo) Delete(ctx context.Context, user *domain.User) error {
	stamped := audit.Apply(ctx, audit.OpDelete, user)

	res, err := r.db.NewUpdate().
		Model(user).
		Column(stamped...).
		WherePK().
		Where("is_deleted = 0").
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *usersRepo) GetByIDIncludingDeleted(ctx context.Context, id int64) (*domain.User, error) {
	user := new(domain.User)
	err := r.db.NewSelect().Model(user).
		Where("u.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return user, nil
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	count, err := r.db.NewSelect().Model((*domain.User)(nil)).Count(ctx)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
