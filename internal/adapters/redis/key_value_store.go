// Package redis provides Redis-based adapters for the incident portal.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/target/incident-portal/internal/ports"
)

// DefaultPrefix namespaces session keys when no prefix is configured.
const DefaultPrefix = "portal:session:"

// KeyValueStore is a Redis-backed durable store for session material.
// Values expire after TTL when it is positive, matching the backend token lifetime.
type KeyValueStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// KeyValueStoreOptions groups dependencies for NewKeyValueStore.
type KeyValueStoreOptions struct {
	Client redis.UniversalClient
	Prefix string
	TTL    time.Duration
}

// NewKeyValueStore creates a new Redis-based key/value store.
func NewKeyValueStore(opts KeyValueStoreOptions) *KeyValueStore {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &KeyValueStore{
		client: opts.Client,
		prefix: prefix,
		ttl:    opts.TTL,
	}
}

func (s *KeyValueStore) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ports.ErrKeyNotFound
	}
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ports.ErrKeyNotFound
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	return v, nil
}

func (s *KeyValueStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if err := s.client.Set(ctx, s.prefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *KeyValueStore) Delete(ctx context.Context, keys ...string) error {
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			full = append(full, s.prefix+k)
		}
	}
	if len(full) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
