package bootstrap

import (
	"log/slog"
	"net/http"

	"github.com/target/incident-portal/config"
	"github.com/target/incident-portal/internal/adapters/backend"
	"github.com/target/incident-portal/internal/service"
)

// ServiceContainer holds the application services.
// Profile and Incidents act on a session and are nil when none is attached.
type ServiceContainer struct {
	Backend   *backend.Client
	Auth      *service.AuthService
	Passwords *service.PasswordService
	Profile   *service.ProfileService
	Incidents *service.IncidentService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config *config.AppConfig
	// Session is optional; the portal server runs without one.
	Session service.Session
	// HTTPClient overrides the backend transport.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewServices wires the backend client into every service.
func NewServices(deps ServiceDeps) ServiceContainer {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	client := backend.NewClient(backend.Config{
		BaseURL: deps.Config.Backend.URL,
		Timeout: deps.Config.Backend.Timeout,
		Client:  deps.HTTPClient,
	})

	c := ServiceContainer{
		Backend: client,
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Backend: client,
			Session: deps.Session,
			Logger:  logger,
		}),
		Passwords: service.NewPasswordService(service.PasswordServiceOptions{
			Auth:   client,
			Users:  client,
			Logger: logger,
		}),
	}
	if deps.Session == nil {
		return c
	}
	c.Profile = service.NewProfileService(service.ProfileServiceOptions{
		Users:   client,
		Session: deps.Session,
		Logger:  logger,
	})
	c.Incidents = service.NewIncidentService(service.IncidentServiceOptions{
		Backend: client,
		Session: deps.Session,
		Logger:  logger,
	})
	return c
}
