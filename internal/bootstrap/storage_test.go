package bootstrap

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/incident-portal/config"
	"github.com/target/incident-portal/internal/adapters/memstore"
	domainauth "github.com/target/incident-portal/internal/domain/auth"
	"github.com/target/incident-portal/internal/session"
	"github.com/target/incident-portal/internal/testutil"
)

func TestOpenSessionStorage_Memory(t *testing.T) {
	cfg := loadTestConfig(t, nil)

	st, err := OpenSessionStorage(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, config.StorageMemory, st.Kind)
	assert.IsType(t, &memstore.Store{}, st.Store)
	assert.NoError(t, st.Close())
}

func TestOpenSessionStorage_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	cfg := loadTestConfig(t, map[string]string{
		"SESSION_STORAGE": "file",
		"SESSION_FILE":    path,
	})
	ctx := context.Background()

	st, err := OpenSessionStorage(ctx, cfg, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, config.StorageFile, st.Kind)

	require.NoError(t, st.Store.Set(ctx, session.KeyToken, "tok"))
	_, err = os.Stat(path)
	assert.NoError(t, err, "session file is created on first write")
}

func TestOpenSessionStorage_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := loadTestConfig(t, map[string]string{
		"SESSION_STORAGE":      "redis",
		"REDIS_URI":            mr.Addr(),
		"SESSION_REDIS_PREFIX": "test:session:",
		"SESSION_TOKEN_TTL":    "2h",
	})
	ctx := context.Background()

	st, err := OpenSessionStorage(ctx, cfg, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	assert.Equal(t, config.StorageRedis, st.Kind)

	require.NoError(t, st.Store.Set(ctx, session.KeyToken, "tok"))
	got, err := mr.Get("test:session:" + session.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "tok", got)
	assert.Equal(t, 2*time.Hour, mr.TTL("test:session:"+session.KeyToken))
}

func TestNewSession_RedisProfileEditDoesNotOutliveToken(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := loadTestConfig(t, map[string]string{
		"SESSION_STORAGE":   "redis",
		"REDIS_URI":         mr.Addr(),
		"SESSION_TOKEN_TTL": "8h",
	})
	ctx := context.Background()

	st, err := OpenSessionStorage(ctx, cfg, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	store := NewSession(ctx, SessionDeps{Config: cfg, Storage: st.Store, Logger: discardLogger()})
	require.NoError(t, store.Persist(ctx, testutil.NewIdentity().LoginResult("tok")))

	mr.FastForward(7 * time.Hour)
	require.NoError(t, store.UpdateProfile(ctx, "Maria Souza", "maria.souza@example.com"))
	mr.FastForward(2 * time.Hour)

	fresh := NewSession(ctx, SessionDeps{Config: cfg, Storage: st.Store, Logger: discardLogger()})
	assert.Equal(t, session.StateAnonymous, fresh.State())
	assert.Nil(t, fresh.Identity())
	_, err = st.Store.Get(ctx, session.KeyUser)
	assert.Error(t, err, "the refreshed identity is cleared with its expired token")
}

func TestOpenSessionStorage_RedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	cfg := loadTestConfig(t, map[string]string{"SESSION_STORAGE": "redis", "REDIS_URI": addr})

	_, err := OpenSessionStorage(context.Background(), cfg, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect redis")
}

func TestNewSession_RestoresStoredIdentity(t *testing.T) {
	cfg := loadTestConfig(t, nil)
	storage := memstore.New()
	ctx := context.Background()

	id := testutil.NewIdentity().WithID(7).WithRole(domainauth.RoleManager).Build()
	raw, err := json.Marshal(id)
	require.NoError(t, err)
	require.NoError(t, storage.Set(ctx, session.KeyToken, "tok"))
	require.NoError(t, storage.Set(ctx, session.KeyUser, string(raw)))
	require.NoError(t, storage.Set(ctx, session.KeyIssuedAt, time.Now().UTC().Format(time.RFC3339)))

	store := NewSession(ctx, SessionDeps{Config: cfg, Storage: storage, Logger: discardLogger()})

	assert.Equal(t, session.StateAuthenticated, store.State())
	require.NotNil(t, store.Identity())
	assert.Equal(t, int64(7), store.Identity().ID)
	assert.True(t, store.IsAdmin())
}

func TestNewSession_ExpiredSessionIsCleared(t *testing.T) {
	cfg := loadTestConfig(t, map[string]string{"SESSION_TOKEN_TTL": "1h"})
	storage := memstore.New()
	ctx := context.Background()

	raw, err := json.Marshal(testutil.NewIdentity().Build())
	require.NoError(t, err)
	require.NoError(t, storage.Set(ctx, session.KeyToken, "tok"))
	require.NoError(t, storage.Set(ctx, session.KeyUser, string(raw)))
	require.NoError(t, storage.Set(ctx, session.KeyIssuedAt, time.Now().Add(-2*time.Hour).UTC().Format(time.RFC3339)))

	store := NewSession(ctx, SessionDeps{Config: cfg, Storage: storage, Logger: discardLogger()})

	assert.Equal(t, session.StateAnonymous, store.State())
	assert.Nil(t, store.Identity())
	_, err = storage.Get(ctx, session.KeyToken)
	assert.Error(t, err)
}
