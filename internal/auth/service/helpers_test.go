package service_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/linkforge/uriadmin/internal/auth/domain"
	"github.com/linkforge/uriadmin/internal/auth/lockout"
	"github.com/linkforge/uriadmin/internal/auth/service"
	"github.com/linkforge/uriadmin/internal/auth/store/bunstore"
	"github.com/linkforge/uriadmin/pkg/cryptox"
	"github.com/linkforge/uriadmin/pkg/jwtx"
)

const testIssuer = "uriadmin-test"

var (
	keysOnce sync.Once
	keysDir  string
	keysErr  error
	testKeys *jwtx.KeyManager
)

// sharedKeys generates one RSA key pair for the whole package instead of
// paying key generation per test.
func sharedKeys(t *testing.T) *jwtx.KeyManager {
	t.Helper()

	keysOnce.Do(func() {
		keysDir = t.TempDir()
		testKeys, keysErr = jwtx.NewFileKeyManager(jwtx.FileKeyManagerOptions{
			Path:   filepath.Join(keysDir, "private.pem"),
			Issuer: testIssuer,
		})
	})
	require.NoError(t, keysErr)
	return testKeys
}

var serviceDSNCounter int

type loginFixture struct {
	svc   *service.LoginService
	store *bunstore.Store
	redis *miniredis.Miniredis
}

func newLoginFixture(t *testing.T) *loginFixture {
	t.Helper()

	serviceDSNCounter++
	dsn := fmt.Sprintf("file:service_test_%d?mode=memory&cache=shared", serviceDSNCounter)
	s, err := bunstore.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	tokens := service.NewTokenService(sharedKeys(t), testIssuer,
		30*time.Minute, 7*24*time.Hour)

	return &loginFixture{
		svc: &service.LoginService{
			Store:   s,
			Lockout: lockout.NewTracker(client, lockout.DefaultConfig()),
			Tokens:  tokens,
		},
		store: s,
		redis: mr,
	}
}

func (f *loginFixture) seedUser(t *testing.T, username, email, secret string) *domain.User {
	t.Helper()

	hash, salt, err := cryptox.HashSecret(secret)
	require.NoError(t, err)

	u := &domain.User{
		Username:     username,
		Nickname:     username,
		Email:        email,
		PasswordHash: hash,
		PasswordSalt: salt,
	}
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return u
}
