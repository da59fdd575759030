package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/target/incident-portal/internal/adapters/backend"
	domainauth "github.com/target/incident-portal/internal/domain/auth"
	apperrors "github.com/target/incident-portal/internal/errors"
	"github.com/target/incident-portal/internal/mocks"
	"github.com/target/incident-portal/internal/session"
	"github.com/target/incident-portal/internal/testutil"
)

func TestNewAuthService_RequiresBackend(t *testing.T) {
	assert.Panics(t, func() { NewAuthService(AuthServiceOptions{}) })
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	be := mocks.NewMockAuthBackend(ctrl)
	sess, storage := newSession(t)
	svc := NewAuthService(AuthServiceOptions{Backend: be, Session: sess, Logger: discardLogger()})

	res := testutil.NewIdentity().WithRole(domainauth.RoleAdmin).LoginResult("jwt")
	be.EXPECT().
		Login(gomock.Any(), domainauth.Credentials{Email: "maria@example.com", Password: "pw"}).
		Return(res, nil)

	id, err := svc.Login(context.Background(), domainauth.Credentials{Email: " maria@example.com ", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, res.Identity, *id)
	assert.True(t, sess.IsAdmin())
	assert.Equal(t, session.StateAuthenticated, sess.State())

	tok, err := storage.Get(context.Background(), session.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "jwt", tok)
}

func TestAuthService_Login_RejectedLeavesSessionUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	be := mocks.NewMockAuthBackend(ctrl)
	sess, storage := newSession(t)
	svc := NewAuthService(AuthServiceOptions{Backend: be, Session: sess})

	be.EXPECT().Login(gomock.Any(), gomock.Any()).
		Return(domainauth.LoginResult{}, &backend.APIError{Status: 401, Message: "Credenciais inválidas"})

	_, err := svc.Login(context.Background(), domainauth.Credentials{Email: "a@x", Password: "bad"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Nil(t, sess.Identity())
	assert.Equal(t, session.StateAnonymous, sess.State())
	assert.Equal(t, 0, storage.Len())
}

func TestAuthService_Login_BackendDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	be := mocks.NewMockAuthBackend(ctrl)
	sess, _ := newSession(t)
	svc := NewAuthService(AuthServiceOptions{Backend: be, Session: sess})

	be.EXPECT().Login(gomock.Any(), gomock.Any()).
		Return(domainauth.LoginResult{}, apperrors.MapTransportError(errors.New("connection refused")))

	_, err := svc.Login(context.Background(), domainauth.Credentials{Email: "a@x", Password: "pw"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	assert.True(t, apperrors.IsUpstream(err))
}

func TestAuthService_Login_DiscardsLateResponse(t *testing.T) {
	ctrl := gomock.NewController(t)
	be := mocks.NewMockAuthBackend(ctrl)
	sess, storage := newSession(t)
	svc := NewAuthService(AuthServiceOptions{Backend: be, Session: sess})

	// The user logs out while the login request is in flight.
	be.EXPECT().Login(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ domainauth.Credentials) (domainauth.LoginResult, error) {
			require.NoError(t, sess.Logout(ctx))
			return testutil.NewIdentity().LoginResult("late"), nil
		})

	_, err := svc.Login(context.Background(), domainauth.Credentials{Email: "a@x", Password: "pw"})
	require.ErrorIs(t, err, session.ErrSuperseded)
	assert.Nil(t, sess.Identity())
	assert.Equal(t, 0, storage.Len())
}

func TestAuthService_Authenticate_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewAuthService(AuthServiceOptions{Backend: mocks.NewMockAuthBackend(ctrl)})

	_, err := svc.Authenticate(context.Background(), domainauth.Credentials{Password: "pw"})
	assert.Equal(t, "email", apperrors.GetField(err))

	_, err = svc.Authenticate(context.Background(), domainauth.Credentials{Email: "a@x"})
	assert.Equal(t, "senha", apperrors.GetField(err))
}

func TestAuthService_Login_WithoutSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewAuthService(AuthServiceOptions{Backend: mocks.NewMockAuthBackend(ctrl)})
	_, err := svc.Login(context.Background(), domainauth.Credentials{Email: "a@x", Password: "pw"})
	require.Error(t, err)
	assert.NoError(t, svc.Logout(context.Background()))
}

func TestAuthService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess := signedIn(t, testutil.NewIdentity().LoginResult("jwt"))
	svc := NewAuthService(AuthServiceOptions{Backend: mocks.NewMockAuthBackend(ctrl), Session: sess})

	require.NoError(t, svc.Logout(context.Background()))
	require.NoError(t, svc.Logout(context.Background()))
	assert.Nil(t, sess.Identity())
}
