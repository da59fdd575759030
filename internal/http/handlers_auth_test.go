package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/incident-portal/internal/adapters/backend"
	domainauth "github.com/target/incident-portal/internal/domain/auth"
	apperrors "github.com/target/incident-portal/internal/errors"
	"github.com/target/incident-portal/internal/service"
	"github.com/target/incident-portal/internal/testutil"
)

// mockAuthenticator is a test double for the login proxy's Authenticator.
type mockAuthenticator struct {
	authenticateFunc func(ctx context.Context, creds domainauth.Credentials) (domainauth.LoginResult, error)
	calls            []domainauth.Credentials
}

func (m *mockAuthenticator) Authenticate(
	ctx context.Context,
	creds domainauth.Credentials,
) (domainauth.LoginResult, error) {
	m.calls = append(m.calls, creds)
	if m.authenticateFunc != nil {
		return m.authenticateFunc(ctx, creds)
	}
	return testutil.NewIdentity().LoginResult("test-token"), nil
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestAuthHandlers_Login_Success(t *testing.T) {
	svc := &mockAuthenticator{}
	h := &AuthHandlers{Svc: svc}

	rec := httptest.NewRecorder()
	h.Login(rec, postJSON("/api/auth", `{"email":"maria@example.com","senha":"pw"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.calls, 1)
	assert.Equal(t, domainauth.Credentials{Email: "maria@example.com", Password: "pw"}, svc.calls[0])

	body := decodeBody(t, rec)
	assert.Equal(t, "test-token", body["token"])
	assert.Equal(t, "Bearer", body["tipo"])

	cookies := cookiesByName(rec.Result().Cookies())
	require.Contains(t, cookies, TokenCookie)
	require.Contains(t, cookies, UserCookie)
	assert.Equal(t, "test-token", cookies[TokenCookie].Value)

	snap, err := DecodeIdentityCookie(cookies[UserCookie].Value)
	require.NoError(t, err)
	assert.Equal(t, testutil.NewIdentity().Build(), *snap)
}

func TestAuthHandlers_Login_Rejected(t *testing.T) {
	svc := &mockAuthenticator{
		authenticateFunc: func(context.Context, domainauth.Credentials) (domainauth.LoginResult, error) {
			return domainauth.LoginResult{}, service.ErrInvalidCredentials
		},
	}
	h := &AuthHandlers{Svc: svc}

	rec := httptest.NewRecorder()
	h.Login(rec, postJSON("/api/auth", `{"email":"a@x","senha":"bad"}`))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies(), "no cookies on failure")
	body := decodeBody(t, rec)
	assert.Equal(t, "unauthorized", body["error"])
	assert.Equal(t, "E-mail ou senha inválidos", body["message"])
}

func TestAuthHandlers_Login_BackendDown(t *testing.T) {
	svc := &mockAuthenticator{
		authenticateFunc: func(context.Context, domainauth.Credentials) (domainauth.LoginResult, error) {
			return domainauth.LoginResult{}, apperrors.Upstream("Backend unavailable")
		},
	}
	rec := httptest.NewRecorder()
	(&AuthHandlers{Svc: svc}).Login(rec, postJSON("/api/auth", `{"email":"a@x","senha":"pw"}`))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestAuthHandlers_Login_BadBody(t *testing.T) {
	svc := &mockAuthenticator{}
	rec := httptest.NewRecorder()
	(&AuthHandlers{Svc: svc}).Login(rec, postJSON("/api/auth", `{"email":`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.calls)
}

func TestAuthHandlers_Logout(t *testing.T) {
	h := &AuthHandlers{}
	for range 2 {
		rec := httptest.NewRecorder()
		h.Logout(rec, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		cookies := cookiesByName(rec.Result().Cookies())
		assert.Equal(t, -1, cookies[TokenCookie].MaxAge)
		assert.Equal(t, -1, cookies[UserCookie].MaxAge)
	}
}

func TestAuthHandlers_Status(t *testing.T) {
	h := &AuthHandlers{}

	rec := httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest(http.MethodGet, "/api/auth/status", nil))
	assert.Equal(t, map[string]any{"authenticated": false}, decodeBody(t, rec))

	enc, err := EncodeIdentityCookie(testutil.AdminIdentity())
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: "jwt"})
	req.AddCookie(&http.Cookie{Name: UserCookie, Value: enc})
	rec = httptest.NewRecorder()
	h.Status(rec, req)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["authenticated"])
	assert.Equal(t, true, body["admin"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ADMIN", user["cargo"])
}

func TestWriteAppError_BackendMessage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	WriteAppError(rec, req, nil, &backend.APIError{Status: http.StatusConflict, Message: "E-mail já cadastrado"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "E-mail já cadastrado", decodeBody(t, rec)["message"])

	rec = httptest.NewRecorder()
	WriteAppError(rec, req, nil, assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Erro interno do servidor", decodeBody(t, rec)["message"])
}
