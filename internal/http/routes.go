package httpx

import (
	"log/slog"
	"net/http"
)

// RouterServices holds everything the portal router needs.
type RouterServices struct {
	Auth      Authenticator
	Passwords PasswordChanger
	Cookies   CookieConfig
	// Pages serves every request not matched by an API route.
	Pages       http.Handler
	Guard       EdgeGuardConfig
	Compression *CompressionConfig // Optional
	// ReadinessChecks back /readyz; /healthz only reports liveness.
	ReadinessChecks map[string]HealthCheck
	Logger          *slog.Logger
}

// NewRouter builds the portal handler: Recover, RequestID, Logging, optional Compression,
// then the edge guard in front of the route mux.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{Svc: services.Auth, Cookies: services.Cookies, Logger: logger}
	registerAuthRoutes(mux, authHandlers)

	if services.Passwords != nil {
		userHandlers := &UserHandlers{Passwords: services.Passwords, Logger: logger}
		mux.HandleFunc("POST /api/users/{id}/change-password", userHandlers.ChangePassword)
	}

	live := &HealthHandler{}
	ready := &HealthHandler{Checks: services.ReadinessChecks, Logger: logger}
	mux.Handle("GET /healthz", live)
	mux.Handle("HEAD /healthz", live)
	mux.Handle("GET /readyz", ready)
	mux.Handle("HEAD /readyz", ready)

	mux.Handle("/api/", http.HandlerFunc(apiNotFound))
	pages := services.Pages
	if pages == nil {
		pages = placeholderPage{}
	}
	mux.Handle("/", pages)

	guard := services.Guard
	if guard.Logger == nil {
		guard.Logger = logger
	}

	mws := []func(http.Handler) http.Handler{
		Recover(logger),
		RequestID(),
		Logging(logger),
	}
	if services.Compression != nil {
		mws = append(mws, Compression(*services.Compression))
	}
	mws = append(mws, EdgeGuard(guard))
	return Chain(mux, mws...)
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	if h.Svc != nil {
		mux.HandleFunc("POST /api/auth", h.Login)
	}
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
	mux.HandleFunc("GET /api/auth/status", h.Status)
}

func apiNotFound(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusNotFound, map[string]string{
		"error":   "not_found",
		"message": "route " + r.URL.Path + " not found",
	})
}
