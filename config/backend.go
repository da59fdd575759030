package config

import (
	"strings"
	"time"
)

// DefaultBackendURL is the backend REST API used when none is configured.
const DefaultBackendURL = "http://localhost:8080/api"

// BackendConfig configures the client for the external REST API.
type BackendConfig struct {
	// URL is the API base URL. API_URL is accepted as a fallback name.
	URL       string `env:"BACKEND_API_URL"`
	LegacyURL string `env:"API_URL"`

	// Timeout bounds each backend request.
	Timeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"15s"`
}

// Sanitize resolves the effective URL and clamps the timeout.
func (b *BackendConfig) Sanitize() {
	b.URL = strings.TrimRight(strings.TrimSpace(b.URL), "/")
	if b.URL == "" {
		b.URL = strings.TrimRight(strings.TrimSpace(b.LegacyURL), "/")
	}
	if b.URL == "" {
		b.URL = DefaultBackendURL
	}
	if b.Timeout < 0 {
		b.Timeout = 0
	}
}
