package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/linkforge/uriadmin/internal/auth/domain"
	authhttp "github.com/linkforge/uriadmin/internal/auth/http"
	"github.com/linkforge/uriadmin/internal/auth/lockout"
	"github.com/linkforge/uriadmin/internal/auth/service"
	"github.com/linkforge/uriadmin/internal/auth/store/bunstore"
	"github.com/linkforge/uriadmin/pkg/cryptox"
	"github.com/linkforge/uriadmin/pkg/jwtx"
)

const testIssuer = "uriadmin-test"

var (
	keysOnce sync.Once
	keysErr  error
	testKeys *jwtx.KeyManager
)

func sharedKeys(t *testing.T) *jwtx.KeyManager {
	t.Helper()

	keysOnce.Do(func() {
		testKeys, keysErr = jwtx.NewFileKeyManager(jwtx.FileKeyManagerOptions{
			Path:   filepath.Join(t.TempDir(), "private.pem"),
			Issuer: testIssuer,
		})
	})
	require.NoError(t, keysErr)
	return testKeys
}

var routerDSNCounter int

type fixture struct {
	router *authhttp.Router
	store  *bunstore.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	routerDSNCounter++
	dsn := fmt.Sprintf("file:router_test_%d?mode=memory&cache=shared", routerDSNCounter)
	s, err := bunstore.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	tokens := service.NewTokenService(sharedKeys(t), testIssuer,
		30*time.Minute, 7*24*time.Hour)

	router := authhttp.NewRouter("test", s, slog.Default())
	router.TokenService = tokens
	router.LoginService = &service.LoginService{
		Store:   s,
		Lockout: lockout.NewTracker(client, lockout.DefaultConfig()),
		Tokens:  tokens,
	}
	router.ApplyRoutes()

	return &fixture{router: router, store: s}
}

func (f *fixture) seedUser(t *testing.T, username, email, secret string) *domain.User {
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

func postJSON(t *testing.T, router http.Handler, path string, body any, ip string) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if ip != "" {
		req.Header.Set("X-Forwarded-For", ip)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
