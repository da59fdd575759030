package httpx

import (
	"context"
	"log/slog"
	"net/http"

	domainauth "github.com/target/incident-portal/internal/domain/auth"
)

// Authenticator validates credentials against the backend.
type Authenticator interface {
	Authenticate(ctx context.Context, creds domainauth.Credentials) (domainauth.LoginResult, error)
}

// AuthHandlers provides the login proxy and cookie session endpoints.
type AuthHandlers struct {
	Svc     Authenticator
	Cookies CookieConfig
	Logger  *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Login proxies credentials to the backend and, on success, sets the session cookies.
// POST /api/auth.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var creds domainauth.Credentials
	if !DecodeJSON(w, r, &creds) {
		return
	}

	res, err := h.Svc.Authenticate(r.Context(), creds)
	if err != nil {
		h.logger().InfoContext(r.Context(), "login rejected", "error", err)
		WriteAppError(w, r, h.logger(), err)
		return
	}

	if err := h.Cookies.setSessionCookies(w, r, res); err != nil {
		WriteAppError(w, r, h.logger(), err)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}

// Logout clears the session cookies. It is idempotent.
// POST /api/auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.Cookies.clearSessionCookies(w, r)
	WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// Status reports the cookie view of the session. It is advisory: the role comes from the
// script-readable snapshot and is not verified against the backend.
// GET /api/auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	hasToken, snapshot, err := readSessionCookies(r)
	if err != nil && snapshot == nil {
		h.logger().WarnContext(r.Context(), "ignoring unreadable identity cookie", "error", err)
	}

	body := map[string]any{"authenticated": hasToken}
	if hasToken && snapshot != nil {
		body["user"] = snapshot
		body["admin"] = snapshot.IsPrivileged()
	}
	WriteJSON(w, http.StatusOK, body)
}
