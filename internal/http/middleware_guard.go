package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	domainauth "github.com/target/incident-portal/internal/domain/auth"
)

// EdgeGuardConfig configures the pre-render route guard.
type EdgeGuardConfig struct {
	Table domainauth.RouteTable
	// Requests under these prefixes, or equal to one of BypassExact, are never evaluated.
	BypassPrefixes []string
	BypassExact    []string
	Logger         *slog.Logger
}

// DefaultBypassPrefixes are the asset and API paths the guard never evaluates.
func DefaultBypassPrefixes() []string {
	return []string{"/_next/static", "/_next/image", "/favicon.ico", "/api"}
}

// EdgeGuard returns a middleware that redirects page requests based on the route table,
// the token cookie and the identity snapshot cookie. It never calls the backend and never
// mutates cookies. The snapshot role is advisory; a missing or unreadable snapshot leaves
// only the token-presence checks in force.
func EdgeGuard(cfg EdgeGuardConfig) func(http.Handler) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if cfg.bypassed(path) {
				next.ServeHTTP(w, r)
				return
			}

			hasToken, snapshot, err := readSessionCookies(r)
			if err != nil {
				var unknown *domainauth.UnknownRoleError
				if errors.As(err, &unknown) {
					logger.WarnContext(r.Context(), "identity cookie has unknown role", "role", unknown.Value, "path", path)
				} else {
					logger.WarnContext(r.Context(), "ignoring unreadable identity cookie", "error", err, "path", path)
				}
			}

			d := domainauth.Decide(cfg.Table, path, hasToken, snapshot)
			if d.Allowed() {
				if hasToken {
					r = r.WithContext(SetSnapshotInContext(r.Context(), snapshot))
				}
				next.ServeHTTP(w, r)
				return
			}
			logger.DebugContext(r.Context(), "edge guard redirect",
				"path", path,
				"class", d.Class.String(),
				"location", d.Location,
			)
			http.Redirect(w, r, d.Location, http.StatusFound)
		})
	}
}

func (cfg EdgeGuardConfig) bypassed(path string) bool {
	for _, p := range cfg.BypassExact {
		if path == p {
			return true
		}
	}
	for _, p := range cfg.BypassPrefixes {
		if p != "" && strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
