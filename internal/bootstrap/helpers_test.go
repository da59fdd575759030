package bootstrap

import (
	"io"
	"log/slog"
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/require"
	"github.com/target/incident-portal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// loadTestConfig parses defaults plus vars without touching the process environment.
func loadTestConfig(t *testing.T, vars map[string]string) *config.AppConfig {
	t.Helper()
	t.Setenv("NODE_ENV", "")
	environment := map[string]string{"SESSION_STORAGE": "memory"}
	for k, v := range vars {
		environment[k] = v
	}
	var cfg config.AppConfig
	require.NoError(t, env.ParseWithOptions(&cfg, env.Options{Environment: environment}))
	cfg.Sanitize()
	return &cfg
}
