package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/linkforge/uriadmin/internal/auth/identity"
	"github.com/linkforge/uriadmin/internal/auth/service"
	"github.com/linkforge/uriadmin/internal/auth/store"
	"github.com/linkforge/uriadmin/pkg/httpx"
	"github.com/linkforge/uriadmin/pkg/slogx"
)

type LoginHandler struct {
	LoginService *service.LoginService
}

type loginRequest struct {
	// Identifier accepts the username or the email address.
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// ServeHTTP handles POST /v1/account/login.
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "request body must be JSON")
		return
	}
	if req.Identifier == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "identifier and password are required")
		return
	}

	result, err := h.LoginService.Login(ctx, req.Identifier, req.Password)
	if err != nil {
		writeLoginError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, result)
}

type RefreshHandler struct {
	LoginService *service.LoginService
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ServeHTTP handles POST /v1/account/refresh_token.
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "request body must be JSON")
		return
	}
	if req.RefreshToken == "" {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "refresh_token is required")
		return
	}

	result, err := h.LoginService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		writeLoginError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, result)
}

type ProfileHandler struct {
	Store store.Store
}

type profileResponse struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

// ServeHTTP handles GET /v1/account/profile. The identity comes from the
// bearer token attached by RequireAuth.
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	uc, err := identity.FromContext(ctx)
	if err != nil || uc.IsAnonymous() {
		httpx.WriteError(w, http.StatusUnauthorized,
			"invalid_token", "token subject could not be resolved")
		return
	}

	user, err := h.Store.Users().GetByID(ctx, uc.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusUnauthorized,
				"invalid_token", "token subject no longer exists")
			return
		}
		log.Warn("failed to load user", "user_id", uc.UserID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError,
			"server_error", "failed to load profile")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, profileResponse{
		UserID:   user.ID,
		Username: user.Username,
		Nickname: user.Nickname,
		Email:    user.Email,
	})
}

// writeLoginError maps service errors onto stable HTTP codes. Lockout is
// the only 403; every credential or token failure is a plain 401 so the
// response shape leaks nothing about which check failed.
func writeLoginError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrLockedOut):
		httpx.WriteError(w, http.StatusForbidden,
			"locked_out", "too many failed login attempts, try again later")
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized,
			"invalid_credentials", "identifier or password is incorrect")
	case errors.Is(err, service.ErrInvalidToken):
		httpx.WriteError(w, http.StatusUnauthorized,
			"invalid_token", "refresh token is invalid or expired")
	default:
		log.Warn("login flow failed", "err", err)
		httpx.WriteError(w, http.StatusServiceUnavailable,
			"server_error", "authentication is temporarily unavailable")
	}
}
