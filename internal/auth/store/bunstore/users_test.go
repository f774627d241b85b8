package bunstore_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkforge/uriadmin/internal/auth/domain"
	"github.com/linkforge/uriadmin/internal/auth/identity"
	"github.com/linkforge/uriadmin/internal/auth/store"
	"github.com/linkforge/uriadmin/internal/auth/store/bunstore"
	"github.com/linkforge/uriadmin/pkg/jwtx"
)

var dsnCounter int

func newTestStore(t *testing.T) *bunstore.Store {
	t.Helper()

	// A named in-memory database per test so state never leaks across
	// tests while the store keeps multiple connections open.
	dsnCounter++
	dsn := fmt.Sprintf("file:bunstore_test_%d?mode=memory&cache=shared", dsnCounter)

	s, err := bunstore.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func ctxAs(userID string) context.Context {
	claims := &jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID},
		TokenType:        jwtx.TokenTypeAccess,
	}
	return identity.WithClaims(context.Background(), claims)
}

func seedUser(t *testing.T, s *bunstore.Store, username, email string) *domain.User {
	t.Helper()

	u := &domain.User{
		Username:     username,
		Nickname:     username,
		Email:        email,
		PasswordHash: "hash",
		PasswordSalt: "salt",
	}
	require.NoError(t, s.Users().Create(context.Background(), u))
	require.NotZero(t, u.ID)
	return u
}

func TestCreateAndGetByID(t *testing.T) {
	s := newTestStore(t)
	seeded := seedUser(t, s, "alice", "alice@example.com")

	got, err := s.Users().GetByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Zero(t, got.IsDeleted)
}

func TestGetByIdentifierMatchesUsernameOrEmail(t *testing.T) {
	s := newTestStore(t)
	seeded := seedUser(t, s, "alice", "alice@example.com")

	byName, err := s.Users().GetByIdentifier(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, byName.ID)

	byEmail, err := s.Users().GetByIdentifier(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, byEmail.ID)

	_, err = s.Users().GetByIdentifier(context.Background(), "nobody")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateStampsAudit(t *testing.T) {
	s := newTestStore(t)

	u := &domain.User{
		Username:     "bob",
		Nickname:     "Bob",
		Email:        "bob@example.com",
		PasswordHash: "hash",
		PasswordSalt: "salt",
	}
	require.NoError(t, s.Users().Create(ctxAs("42"), u))

	got, err := s.Users().GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 42, got.CreateUserID)
	assert.EqualValues(t, 42, got.UpdateUserID)
	assert.False(t, got.CreateTime.IsZero())
}

func TestUpdateScopedColumns(t *testing.T) {
	s := newTestStore(t)
	u := seedUser(t, s, "alice", "alice@example.com")

	u.Nickname = "Alice Liddell"
	u.Email = "should-not-persist@example.com"
	require.NoError(t, s.Users().Update(ctxAs("7"), u, "nickname"))

	got, err := s.Users().GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", got.Nickname)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.EqualValues(t, 7, got.UpdateUserID)
	assert.False(t, got.UpdateTime.IsZero())
}

func TestAnonymousUpdateKeepsLastActor(t *testing.T) {
	s := newTestStore(t)
	u := seedUser(t, s, "alice", "alice@example.com")

	u.Nickname = "first"
	require.NoError(t, s.Users().Update(ctxAs("7"), u, "nickname"))

	u.Nickname = "second"
	require.NoError(t, s.Users().Update(context.Background(), u, "nickname"))

	got, err := s.Users().GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Nickname)
	assert.EqualValues(t, 7, got.UpdateUserID)
}

func TestDeleteTombstonesRow(t *testing.T) {
	s := newTestStore(t)
	u := seedUser(t, s, "alice", "alice@example.com")

	require.NoError(t, s.Users().Delete(ctxAs("3"), u))

	// Gone from every default read path.
	_, err := s.Users().GetByID(context.Background(), u.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Users().GetByIdentifier(context.Background(), "alice")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Still present under the bypass read, with a non-zero marker.
	got, err := s.Users().GetByIDIncludingDeleted(context.Background(), u.ID)
	require.NoError(t, err)
	assert.NotZero(t, got.IsDeleted)
	assert.EqualValues(t, 3, got.UpdateUserID)
}

func TestDeleteTwiceReportsNotFound(t *testing.T) {
	s := newTestStore(t)
	u := seedUser(t, s, "alice", "alice@example.com")

	require.NoError(t, s.Users().Delete(context.Background(), u))
	err := s.Users().Delete(context.Background(), u)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeletedMarkersAreDistinct(t *testing.T) {
	s := newTestStore(t)
	a := seedUser(t, s, "alice", "alice@example.com")
	b := seedUser(t, s, "bob", "bob@example.com")

	require.NoError(t, s.Users().Delete(context.Background(), a))
	require.NoError(t, s.Users().Delete(context.Background(), b))

	gotA, err := s.Users().GetByIDIncludingDeleted(context.Background(), a.ID)
	require.NoError(t, err)
	gotB, err := s.Users().GetByIDIncludingDeleted(context.Background(), b.ID)
	require.NoError(t, err)
	assert.NotEqual(t, gotA.IsDeleted, gotB.IsDeleted)
}

func TestUsernameReusableAfterDelete(t *testing.T) {
	s := newTestStore(t)
	u := seedUser(t, s, "alice", "alice@example.com")
	require.NoError(t, s.Users().Delete(context.Background(), u))

	fresh := seedUser(t, s, "alice", "alice@example.com")

	got, err := s.Users().GetByIdentifier(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, fresh.ID, got.ID)
}

func TestIsEmptyCountsDeletedRows(t *testing.T) {
	s := newTestStore(t)

	empty, err := s.Users().IsEmpty(context.Background())
	require.NoError(t, err)
	assert.True(t, empty)

	u := seedUser(t, s, "alice", "alice@example.com")
	require.NoError(t, s.Users().Delete(context.Background(), u))

	// A tombstoned row still means the table was seeded once.
	empty, err = s.Users().IsEmpty(context.Background())
	require.NoError(t, err)
	assert.False(t, empty)
}

func TestUpdateMissingRowReportsNotFound(t *testing.T) {
	s := newTestStore(t)

	ghost := &domain.User{ID: 999, Username: "ghost", Nickname: "g", Email: "g@x", PasswordHash: "h", PasswordSalt: "s"}
	err := s.Users().Update(context.Background(), ghost, "nickname")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
