package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/require"
	"github.com/target/incident-portal/config"
	domainauth "github.com/target/incident-portal/internal/domain/auth"
	"github.com/target/incident-portal/internal/domain/model"
	"github.com/target/incident-portal/internal/testutil"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

const backendToken = "backend-token"

// fakeBackend serves the subset of the REST API the client uses.
type fakeBackend struct {
	mu        sync.Mutex
	incidents []model.Incident
	calls     []string
	srv       *httptest.Server
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{
		incidents: []model.Incident{
			testutil.NewIncident(1, model.SeverityHigh),
			testutil.ResolvedIncident(2, model.SeverityLow),
			testutil.NewIncident(3, model.SeverityMedium),
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", fb.login)
	mux.HandleFunc("GET /api/usuarios/me", fb.authed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, testutil.NewIdentity().Build())
	}))
	mux.HandleFunc("GET /api/incidentes", fb.authed(func(w http.ResponseWriter, _ *http.Request) {
		fb.mu.Lock()
		defer fb.mu.Unlock()
		writeJSON(w, http.StatusOK, fb.incidents)
	}))
	mux.HandleFunc("POST /api/incidentes", fb.authed(func(w http.ResponseWriter, r *http.Request) {
		var inc model.Incident
		if err := json.NewDecoder(r.Body).Decode(&inc); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
			return
		}
		fb.mu.Lock()
		inc.ID = int64(len(fb.incidents) + 1)
		fb.incidents = append(fb.incidents, inc)
		fb.mu.Unlock()
		writeJSON(w, http.StatusCreated, inc)
	}))
	mux.HandleFunc("PUT /api/incidentes/{id}/resolver", fb.authed(func(w http.ResponseWriter, r *http.Request) {
		inc := testutil.ResolvedIncident(1, model.SeverityHigh)
		writeJSON(w, http.StatusOK, inc)
	}))

	fb.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		fb.calls = append(fb.calls, r.Method+" "+r.URL.Path)
		fb.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(fb.srv.Close)
	return fb
}

func (fb *fakeBackend) login(w http.ResponseWriter, r *http.Request) {
	var creds domainauth.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Password != "secret" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Credenciais inválidas"})
		return
	}
	b := testutil.NewIdentity().WithEmail(creds.Email)
	if strings.HasPrefix(creds.Email, "admin") {
		b = b.WithRole(domainauth.RoleAdmin).WithName("Admin")
	}
	writeJSON(w, http.StatusOK, b.LoginResult(backendToken))
}

func (fb *fakeBackend) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+backendToken {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "token inválido"})
			return
		}
		next(w, r)
	}
}

func (fb *fakeBackend) callCount() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return len(fb.calls)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// harness runs the command tree against a fake backend with a file session in a temp dir.
type harness struct {
	t       *testing.T
	backend *fakeBackend
	file    string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{
		t:       t,
		backend: newFakeBackend(t),
		file:    filepath.Join(t.TempDir(), "session.json"),
	}
}

func (h *harness) env() appEnv {
	return appEnv{
		loadConfig: func() (config.AppConfig, error) {
			var cfg config.AppConfig
			err := env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{
				"BACKEND_API_URL": h.backend.srv.URL + "/api",
				"SESSION_STORAGE": "file",
				"SESSION_FILE":    h.file,
			}})
			cfg.Sanitize()
			return cfg, err
		},
		httpClient: h.backend.srv.Client(),
	}
}

type result struct {
	stdout string
	stderr string
	err    error
}

func (h *harness) run(stdin string, args ...string) result {
	h.t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(h.env())
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.ExecuteContext(context.Background())
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func (h *harness) login(t *testing.T, email string) {
	t.Helper()
	res := h.run("", "login", "--email", email, "--password", "secret")
	require.NoError(t, res.err, res.stderr)
}
