// Command portal serves the incident portal front end: the edge guard, the
// same-origin auth helper endpoints and the page proxy.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/target/incident-portal/config"
	"github.com/target/incident-portal/internal/bootstrap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
	logger := bootstrap.InitLogger(cfg.Logging)

	if err := run(ctx, logger, &cfg); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) error {
	logStartupInfo(ctx, logger, cfg)
	return bootstrap.RunPortal(ctx, cfg, logger)
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	upstream := cfg.HTTP.PagesUpstream
	if upstream == "" {
		upstream = "placeholder"
	}
	logger.InfoContext(ctx, "starting incident portal",
		"addr", cfg.HTTP.Addr,
		"backend", cfg.Backend.URL,
		"pages", upstream,
		"production", cfg.Production,
		"admin_match", cfg.Routes.AdminMatch)
}
