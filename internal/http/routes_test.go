package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/target/incident-portal/internal/domain/auth"
	"github.com/target/incident-portal/internal/requestid"
	"github.com/target/incident-portal/internal/testutil"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return NewRouter(RouterServices{
		Auth: &mockAuthenticator{
			authenticateFunc: func(context.Context, domainauth.Credentials) (domainauth.LoginResult, error) {
				return testutil.NewIdentity().WithRole(domainauth.RoleAdmin).LoginResult("jwt"), nil
			},
		},
		Passwords: &recordingPasswordChanger{},
		Guard:     defaultGuard(),
	})
}

// A login through the router yields cookies that the guard then honors.
func TestRouter_LoginThenNavigate(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, postJSON("/api/auth", `{"email":"admin@example.com","senha":"pw"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(requestid.Header))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)

	withCookies := func(path string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		for _, c := range cookies {
			req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
		}
		return req
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, withCookies("/login"))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, withCookies("/admin"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Portal de Incidentes")
}

func TestRouter_Anonymous(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/status", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"authenticated":false}`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestRouter_ChangePasswordRoute(t *testing.T) {
	pw := &recordingPasswordChanger{}
	router := NewRouter(RouterServices{Passwords: pw, Guard: defaultGuard()})

	req := postJSON("/api/users/42/change-password", `{"senhaAtual":"a","novaSenha":"bbbbbb"}`)
	req.Header.Set("X-User-Email", "a@x")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, pw.calls, 1)
	assert.Equal(t, int64(42), pw.calls[0].UserID)
}
