package service

import (
	"context"
	"errors"
	"fmt"

	domainauth "github.com/target/incident-portal/internal/domain/auth"
	apperrors "github.com/target/incident-portal/internal/errors"
)

// Session is the slice of the session store the services depend on.
// *session.Store satisfies it.
type Session interface {
	Generation() uint64
	PersistIf(ctx context.Context, gen uint64, res domainauth.LoginResult) error
	Logout(ctx context.Context) error
	Token(ctx context.Context) (string, error)
	Identity() *domainauth.Identity
	UpdateProfile(ctx context.Context, name, email string) error
	AwaitAuthorized(ctx context.Context, roles ...domainauth.Role) (bool, error)
}

var (
	// ErrInvalidCredentials is returned when the backend rejects a login.
	ErrInvalidCredentials = &apperrors.AppError{Code: apperrors.ErrCodeUnauthorized, Message: "E-mail ou senha inválidos"}
	// ErrNotLoggedIn is returned when an operation needs a session and none is present.
	ErrNotLoggedIn = &apperrors.AppError{Code: apperrors.ErrCodeUnauthorized, Message: "Sessão não encontrada; faça login"}
	// ErrNotPrivileged is returned when an operation needs ADMIN or MANAGER.
	ErrNotPrivileged = &apperrors.AppError{Code: apperrors.ErrCodeForbidden, Message: "Acesso restrito a administradores"}
)

// bearer returns the session token, mapping a missing one to ErrNotLoggedIn.
func bearer(ctx context.Context, sess Session) (string, error) {
	tok, err := sess.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotLoggedIn, err)
	}
	return tok, nil
}

// requirePrivileged waits for the session to finish restoring before judging the role.
func requirePrivileged(ctx context.Context, sess Session) error {
	ok, err := sess.AwaitAuthorized(ctx, domainauth.PrivilegedRoles()...)
	if err != nil {
		return fmt.Errorf("await session: %w", err)
	}
	if !ok {
		if sess.Identity() == nil {
			return ErrNotLoggedIn
		}
		return ErrNotPrivileged
	}
	return nil
}

// isBackendRejection reports whether err came from a backend response rather than the transport.
func isBackendRejection(err error) bool {
	return apperrors.UpstreamStatus(err) != 0
}

var errMissingDependency = errors.New("missing dependency")
