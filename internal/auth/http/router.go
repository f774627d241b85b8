// Package http wires the account endpoints onto a ServeMux behind the
// shared middleware chain.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/linkforge/uriadmin/internal/auth/service"
	"github.com/linkforge/uriadmin/internal/auth/store"
	"github.com/linkforge/uriadmin/pkg/httpx"
	"github.com/linkforge/uriadmin/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	LoginService *service.LoginService
	TokenService *service.TokenService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAccount()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAccount() {
	loginHandler := &LoginHandler{LoginService: r.LoginService}
	r.Mux.Handle("POST /v1/account/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	refreshHandler := &RefreshHandler{LoginService: r.LoginService}
	r.Mux.Handle("POST /v1/account/refresh_token",
		httpx.Chain(refreshHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	profileHandler := &ProfileHandler{Store: r.store}
	r.Mux.Handle("GET /v1/account/profile",
		httpx.Chain(profileHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
			RequireAuth(r.TokenService),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.store))
}
