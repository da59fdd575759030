package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - http.go: HTTP server, cookie and page upstream configuration
//   - backend.go: backend REST API client configuration
//   - routes.go: route classification and edge guard bypass configuration
//   - session.go: durable session storage configuration
//   - redis.go: Redis connection configuration
//   - observability.go: logging configuration
type AppConfig struct {
	// IsDev controls development mode behavior.
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Production forces production cookie attributes (Secure). It is also set by NODE_ENV=production.
	Production bool `env:"PRODUCTION" envDefault:"false"`

	HTTP    HTTPConfig
	Backend BackendConfig
	Routes  RoutesConfig
	Session SessionConfig
	Redis   RedisConfig `envPrefix:"REDIS_"`
	Logging LoggingConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.Backend.Sanitize()
	c.Routes.Sanitize()
	c.Session.Sanitize()
	c.Logging.Sanitize()

	c.detectMode()
}

// detectMode checks NODE_ENV as a fallback for DEV and PRODUCTION.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectMode() {
	nodeEnv := strings.ToLower(strings.TrimSpace(os.Getenv("NODE_ENV")))
	if !c.IsDev {
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
	if !c.Production {
		c.Production = nodeEnv == "production"
	}
	if c.IsDev {
		c.Production = false
	}
}
