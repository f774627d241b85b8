package http

import (
	"net/http"
	"strings"

	"github.com/linkforge/uriadmin/internal/auth/identity"
	"github.com/linkforge/uriadmin/internal/auth/service"
	"github.com/linkforge/uriadmin/pkg/httpx"
)

// RequireAuth validates the bearer token and attaches the resulting claims
// to the request context. Requests without a valid access token are
// rejected before the handler runs.
func RequireAuth(tokens *service.TokenService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				httpx.WriteError(w, http.StatusUnauthorized,
					"invalid_token", "missing bearer token")
				return
			}

			claims, err := tokens.ValidateAccess(token)
			if err != nil {
				httpx.WriteError(w, http.StatusUnauthorized,
					"invalid_token", "access token is invalid or expired")
				return
			}

			ctx := identity.WithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}
