package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	domainauth "github.com/target/incident-portal/internal/domain/auth"
	apperrors "github.com/target/incident-portal/internal/errors"
	"github.com/target/incident-portal/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Backend ports.AuthBackend // Required
	Session Session           // Optional: nil for stateless callers such as the login proxy
	Logger  *slog.Logger      // Optional
}

// AuthService authenticates against the backend and, when a session is attached, persists the result.
type AuthService struct {
	backend ports.AuthBackend
	session Session
	logger  *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Backend == nil {
		panic("AuthBackend is required")
	}
	return &AuthService{
		backend: opts.Backend,
		session: opts.Session,
		logger:  opts.Logger,
	}
}

// Authenticate validates credentials with the backend without touching any session.
func (s *AuthService) Authenticate(ctx context.Context, creds domainauth.Credentials) (domainauth.LoginResult, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" {
		return domainauth.LoginResult{}, apperrors.ValidationField("email", "email is required")
	}
	if creds.Password == "" {
		return domainauth.LoginResult{}, apperrors.ValidationField("senha", "password is required")
	}

	res, err := s.backend.Login(ctx, creds)
	if err != nil {
		if isBackendRejection(err) && (apperrors.IsUnauthorized(err) || apperrors.IsValidation(err) || apperrors.IsNotFound(err)) {
			return domainauth.LoginResult{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
		}
		return domainauth.LoginResult{}, fmt.Errorf("login: %w", err)
	}
	return res, nil
}

// Login authenticates and stores the result in the session. A response that arrives after the
// session moved on (logout, another login) is discarded with session.ErrSuperseded.
func (s *AuthService) Login(ctx context.Context, creds domainauth.Credentials) (*domainauth.Identity, error) {
	if s.session == nil {
		return nil, fmt.Errorf("login: session: %w", errMissingDependency)
	}
	gen := s.session.Generation()

	res, err := s.Authenticate(ctx, creds)
	if err != nil {
		return nil, err
	}
	if err := s.session.PersistIf(ctx, gen, res); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "login succeeded", "user_id", res.Identity.ID, "role", res.Identity.Role)
	}
	id := res.Identity
	return &id, nil
}

// Logout ends the session.
func (s *AuthService) Logout(ctx context.Context) error {
	if s.session == nil {
		return nil
	}
	if err := s.session.Logout(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}
