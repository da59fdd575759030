package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/target/incident-portal/config"
	httpx "github.com/target/incident-portal/internal/http"
	"golang.org/x/sync/errgroup"
)

// HTTPServerConfig contains configuration for the portal HTTP handler.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// BuildHTTPHandler assembles the router, the edge guard and the page handler.
func BuildHTTPHandler(cfg HTTPServerConfig) (http.Handler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	pages, err := httpx.NewPagesHandler(httpx.PagesConfig{
		Upstream: appCfg.HTTP.PagesUpstream,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}

	services := httpx.RouterServices{
		Cookies: httpx.CookieConfig{
			Domain: appCfg.HTTP.CookieDomain,
			Secure: appCfg.Production,
		},
		Pages: pages,
		Guard: httpx.EdgeGuardConfig{
			Table:          appCfg.Routes.Table(),
			BypassPrefixes: appCfg.Routes.BypassPrefixes,
			BypassExact:    appCfg.Routes.BypassExact,
			Logger:         logger,
		},
		ReadinessChecks: map[string]httpx.HealthCheck{
			"backend": tcpReachable(appCfg.Backend.URL),
		},
		Logger: logger,
	}
	if appCfg.HTTP.PagesUpstream != "" {
		services.ReadinessChecks["pages"] = tcpReachable(appCfg.HTTP.PagesUpstream)
	}
	// Assign only non-nil services so the router sees a nil interface.
	if cfg.Services.Auth != nil {
		services.Auth = cfg.Services.Auth
	}
	if cfg.Services.Passwords != nil {
		services.Passwords = cfg.Services.Passwords
	}
	if appCfg.HTTP.CompressionEnabled {
		logger.Info("HTTP compression enabled", "level", appCfg.HTTP.CompressionLevel)
		services.Compression = &httpx.CompressionConfig{Level: appCfg.HTTP.CompressionLevel}
	}

	return httpx.NewRouter(services), nil
}

// tcpReachable checks that the host behind rawURL accepts TCP connections.
func tcpReachable(rawURL string) httpx.HealthCheck {
	return func(ctx context.Context) error {
		u, err := url.Parse(rawURL)
		if err != nil || u.Host == "" {
			return fmt.Errorf("invalid url %q", rawURL)
		}
		host := u.Host
		if u.Port() == "" {
			port := "80"
			if u.Scheme == "https" {
				port = "443"
			}
			host = net.JoinHostPort(u.Hostname(), port)
		}
		var d net.Dialer
		conn, err := d.DialContext(ctx, "tcp", host)
		if err != nil {
			return err
		}
		return conn.Close()
	}
}

// NewHTTPServer returns a server with the portal's timeouts.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":3000"
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// ServeConfig contains what Serve needs.
type ServeConfig struct {
	Server *http.Server
	// Listener is optional; nil listens on Server.Addr.
	Listener        net.Listener
	ShutdownTimeout time.Duration
	Logger          *slog.Logger
}

// Serve runs the server until ctx is done, then shuts it down gracefully.
func Serve(ctx context.Context, cfg ServeConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	srv := cfg.Server

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if cfg.Listener != nil {
			logger.InfoContext(ctx, "starting HTTP server", "addr", cfg.Listener.Addr().String())
			err = srv.Serve(cfg.Listener)
		} else {
			logger.InfoContext(ctx, "starting HTTP server", "addr", srv.Addr)
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.InfoContext(ctx, "shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		logger.InfoContext(ctx, "HTTP server stopped")
		return nil
	})
	return g.Wait()
}

// RunPortal builds the portal services and serves HTTP until ctx is done.
func RunPortal(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) error {
	services := NewServices(ServiceDeps{Config: cfg, Logger: logger})
	handler, err := BuildHTTPHandler(HTTPServerConfig{Config: cfg, Services: services, Logger: logger})
	if err != nil {
		return fmt.Errorf("build http handler: %w", err)
	}
	return Serve(ctx, ServeConfig{
		Server:          NewHTTPServer(cfg.HTTP.Addr, handler),
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
		Logger:          logger,
	})
}
