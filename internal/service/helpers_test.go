package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/target/incident-portal/internal/adapters/memstore"
	domainauth "github.com/target/incident-portal/internal/domain/auth"
	"github.com/target/incident-portal/internal/session"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newSession returns a restored, anonymous session over in-memory storage.
func newSession(t *testing.T) (*session.Store, *memstore.Store) {
	t.Helper()
	storage := memstore.New()
	s := session.New(session.Options{Storage: storage, Logger: discardLogger()})
	s.Restore(context.Background())
	return s, storage
}

// signedIn returns a restored session already holding res.
func signedIn(t *testing.T, res domainauth.LoginResult) *session.Store {
	t.Helper()
	s, _ := newSession(t)
	require.NoError(t, s.Persist(context.Background(), res))
	return s
}

var _ Session = (*session.Store)(nil)
