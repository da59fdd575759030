package config

import (
	"fmt"
	"strings"
	"time"
)

// StorageKind selects the durable session storage backend.
type StorageKind string

const (
	// StorageFile keeps the session in a JSON file under the user's home directory.
	StorageFile StorageKind = "file"
	// StorageRedis keeps the session in Redis.
	StorageRedis StorageKind = "redis"
	// StorageMemory keeps the session in process memory only.
	StorageMemory StorageKind = "memory"
)

// UnmarshalText implements encoding.TextUnmarshaler for StorageKind.
func (k *StorageKind) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "file", "redis", "memory":
		*k = StorageKind(v)
		return nil
	default:
		return fmt.Errorf("invalid StorageKind: %q (valid options: file, redis, memory)", v)
	}
}

// SessionConfig configures the client-side session store.
type SessionConfig struct {
	Storage StorageKind `env:"SESSION_STORAGE" envDefault:"file"`

	// File is the session file path; empty uses ~/.incident-portal/session.json.
	File string `env:"SESSION_FILE"`

	// RedisPrefix namespaces session keys in Redis.
	RedisPrefix string `env:"SESSION_REDIS_PREFIX" envDefault:"portal:session:"`

	// TokenTTL is the backend token lifetime, used by the expiry check and as the Redis key TTL.
	TokenTTL time.Duration `env:"SESSION_TOKEN_TTL" envDefault:"8h"`

	// ExpiryCheck discards a restored session once TokenTTL has elapsed since login.
	ExpiryCheck bool `env:"SESSION_EXPIRY_CHECK" envDefault:"true"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.Storage == "" {
		s.Storage = StorageFile
	}
	s.File = strings.TrimSpace(s.File)
	if s.TokenTTL <= 0 {
		s.TokenTTL = 8 * time.Hour
	}
}
