// Package ports defines interfaces (hexagonal ports) for session storage,
// navigation and the external backend API.
// Implementations live in internal/adapters; orchestration in internal/service.
package ports

import (
	"context"
	"errors"

	domainauth "github.com/target/incident-portal/internal/domain/auth"
)

// ErrKeyNotFound is returned by KeyValueStore.Get when the key is absent.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is durable client-side storage for session material.
// Each key is read and written atomically.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Delete removes the keys; absent keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}

// Navigator moves the user agent to a new location.
type Navigator interface {
	Navigate(ctx context.Context, path string) error
}

// AuthBackend authenticates credentials against the backend API.
type AuthBackend interface {
	Login(ctx context.Context, creds domainauth.Credentials) (domainauth.LoginResult, error)
}

// UserBackend reads and updates user records on the backend API.
type UserBackend interface {
	CurrentUser(ctx context.Context, token string) (domainauth.Identity, error)
	GetUser(ctx context.Context, token string, id int64) (domainauth.UserDocument, error)
	UpdateUser(ctx context.Context, token string, id int64, doc domainauth.UserDocument) (domainauth.Identity, error)
}
