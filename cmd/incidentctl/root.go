package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/target/incident-portal/config"
	"github.com/target/incident-portal/internal/bootstrap"
	"github.com/target/incident-portal/internal/session"
)

// appEnv holds what the command tree needs from the outside world.
type appEnv struct {
	loadConfig func() (config.AppConfig, error)
	httpClient *http.Client
}

func defaultEnv() appEnv {
	return appEnv{loadConfig: bootstrap.LoadConfig}
}

type rootOptions struct {
	verbose     bool
	backendURL  string
	storage     string
	sessionFile string
}

// app is built once per invocation, before any subcommand runs.
type app struct {
	cfg      *config.AppConfig
	logger   *slog.Logger
	session  *session.Store
	services bootstrap.ServiceContainer
	out      io.Writer
	closers  []func() error
}

func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type appKey struct{}

func appFrom(cmd *cobra.Command) (*app, error) {
	a, ok := cmd.Context().Value(appKey{}).(*app)
	if !ok || a == nil {
		return nil, errors.New("client not initialized")
	}
	return a, nil
}

// withApp adapts fn to a cobra RunE and releases the app's resources when fn returns.
func withApp(fn func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := a.close(); cerr != nil {
				err = errors.Join(err, fmt.Errorf("close: %w", cerr))
			}
		}()
		return fn(cmd, a, args)
	}
}

func newRootCmd(env appEnv) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "incidentctl",
		Short: "Incident portal client",
		Long: `incidentctl signs in to the incident portal backend, edits your profile,
registers incidents and, for ADMIN and MANAGER users, administers them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(cmd, env, opts)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, a))
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")
	flags.StringVar(&opts.backendURL, "backend", "", "backend API URL (overrides BACKEND_API_URL)")
	flags.StringVar(&opts.storage, "storage", "", "session storage: file, redis or memory (overrides SESSION_STORAGE)")
	flags.StringVar(&opts.sessionFile, "session-file", "", "session file path (overrides SESSION_FILE)")

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newProfileCmd(),
		newPasswordCmd(),
		newIncidentsCmd(),
	)
	return root
}

func buildApp(cmd *cobra.Command, env appEnv, opts *rootOptions) (*app, error) {
	cfg, err := env.loadConfig()
	if err != nil {
		return nil, err
	}
	if err := applyOverrides(&cfg, opts); err != nil {
		return nil, err
	}

	logCfg := config.LoggingConfig{Level: slog.LevelWarn, Format: config.LogFormatText}
	if opts.verbose {
		logCfg.Level = slog.LevelDebug
	}
	logger := bootstrap.NewLogger(cmd.ErrOrStderr(), logCfg)

	ctx := cmd.Context()
	storage, err := bootstrap.OpenSessionStorage(ctx, &cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open session storage: %w", err)
	}

	sess := bootstrap.NewSession(ctx, bootstrap.SessionDeps{
		Config:    &cfg,
		Storage:   storage.Store,
		Navigator: newPrintNavigator(cmd.ErrOrStderr()),
		Logger:    logger,
	})
	services := bootstrap.NewServices(bootstrap.ServiceDeps{
		Config:     &cfg,
		Session:    sess,
		HTTPClient: env.httpClient,
		Logger:     logger,
	})

	return &app{
		cfg:      &cfg,
		logger:   logger,
		session:  sess,
		services: services,
		out:      cmd.OutOrStdout(),
		closers:  []func() error{storage.Close},
	}, nil
}

func applyOverrides(cfg *config.AppConfig, opts *rootOptions) error {
	if opts.backendURL != "" {
		cfg.Backend.URL = opts.backendURL
	}
	if opts.storage != "" {
		var kind config.StorageKind
		if err := kind.UnmarshalText([]byte(opts.storage)); err != nil {
			return err
		}
		cfg.Session.Storage = kind
	}
	if opts.sessionFile != "" {
		cfg.Session.File = opts.sessionFile
	}
	cfg.Sanitize()
	return nil
}
