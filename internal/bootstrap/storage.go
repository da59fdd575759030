package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/target/incident-portal/config"
	"github.com/target/incident-portal/internal/adapters/filestore"
	"github.com/target/incident-portal/internal/adapters/memstore"
	redisstore "github.com/target/incident-portal/internal/adapters/redis"
	"github.com/target/incident-portal/internal/ports"
	"github.com/target/incident-portal/internal/session"
)

// SessionStorage is an opened durable store and the function that releases it.
type SessionStorage struct {
	Store ports.KeyValueStore
	Kind  config.StorageKind
	Close func() error
}

// OpenSessionStorage opens the durable store selected by cfg.Session.Storage.
func OpenSessionStorage(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (SessionStorage, error) {
	noop := func() error { return nil }
	switch cfg.Session.Storage {
	case config.StorageMemory:
		return SessionStorage{Store: memstore.New(), Kind: config.StorageMemory, Close: noop}, nil
	case config.StorageRedis:
		client, err := ConnectRedis(ctx, RedisConnectConfig{Redis: cfg.Redis, Logger: logger})
		if err != nil {
			return SessionStorage{}, fmt.Errorf("connect redis: %w", err)
		}
		store := redisstore.NewKeyValueStore(redisstore.KeyValueStoreOptions{
			Client: client,
			Prefix: cfg.Session.RedisPrefix,
			TTL:    cfg.Session.TokenTTL,
		})
		return SessionStorage{Store: store, Kind: config.StorageRedis, Close: client.Close}, nil
	case config.StorageFile, "":
		store, err := filestore.New(cfg.Session.File)
		if err != nil {
			return SessionStorage{}, fmt.Errorf("open session file: %w", err)
		}
		return SessionStorage{Store: store, Kind: config.StorageFile, Close: noop}, nil
	default:
		return SessionStorage{}, fmt.Errorf("unsupported session storage %q", cfg.Session.Storage)
	}
}

// SessionDeps groups dependencies for NewSession.
type SessionDeps struct {
	Config    *config.AppConfig
	Storage   ports.KeyValueStore
	Navigator ports.Navigator
	Logger    *slog.Logger
}

// NewSession builds the session store and restores it from durable storage.
// It returns once the store is ready.
func NewSession(ctx context.Context, deps SessionDeps) *session.Store {
	store := session.New(session.Options{
		Storage:     deps.Storage,
		Navigator:   deps.Navigator,
		Logger:      deps.Logger,
		ExpiryCheck: deps.Config.Session.ExpiryCheck,
		TokenTTL:    deps.Config.Session.TokenTTL,
	})
	store.Restore(ctx)
	return store
}
