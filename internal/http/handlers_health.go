package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"
)

// defaultCheckTimeout bounds all checks of one health request.
const defaultCheckTimeout = 2 * time.Second

// HealthCheck checks one dependency; a nil error means healthy.
type HealthCheck func(ctx context.Context) error

// HealthHandler reports liveness, or readiness when Checks are set.
// Any failing check turns the response into 503 with the failing check named.
type HealthHandler struct {
	Checks  map[string]HealthCheck
	Timeout time.Duration
	Logger  *slog.Logger
}

type healthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	report, code := h.run(r.Context())
	if r.Method == http.MethodHead {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		return
	}
	WriteJSON(w, code, report)
}

func (h *HealthHandler) run(ctx context.Context) (healthReport, int) {
	report := healthReport{Status: "ok"}
	if len(h.Checks) == 0 {
		return report, http.StatusOK
	}

	timeout := h.Timeout
	if timeout <= 0 {
		timeout = defaultCheckTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	names := make([]string, 0, len(h.Checks))
	for name := range h.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	code := http.StatusOK
	report.Checks = make(map[string]string, len(names))
	for _, name := range names {
		if err := h.Checks[name](ctx); err != nil {
			if h.Logger != nil {
				h.Logger.WarnContext(ctx, "health check failed", "check", name, "error", err)
			}
			report.Checks[name] = "unavailable"
			report.Status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		report.Checks[name] = "ok"
	}
	return report, code
}
