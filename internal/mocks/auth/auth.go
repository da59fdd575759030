// Package auth contains simple hand-written test doubles for session ports.
// These are lightweight and suitable for unit tests without codegen.
package auth

import (
	"context"
	"sync"

	"github.com/target/incident-portal/internal/adapters/memstore"
	"github.com/target/incident-portal/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.Navigator     = (*RecordingNavigator)(nil)
	_ ports.KeyValueStore = (*FailingStore)(nil)
)

// RecordingNavigator records every navigation target.
type RecordingNavigator struct {
	mu    sync.Mutex
	paths []string

	// Err is returned from Navigate after recording the path.
	Err error
}

func (n *RecordingNavigator) Navigate(_ context.Context, path string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
	return n.Err
}

// Paths returns the recorded navigation targets in order.
func (n *RecordingNavigator) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.paths))
	copy(out, n.paths)
	return out
}

// Last returns the most recent navigation target, or "".
func (n *RecordingNavigator) Last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.paths) == 0 {
		return ""
	}
	return n.paths[len(n.paths)-1]
}

// FailingStore is an in-memory KeyValueStore whose operations can be made to fail.
type FailingStore struct {
	*memstore.Store

	GetErr    error
	SetErr    error
	DeleteErr error
	// SetKeyErr fails Set only for the listed keys.
	SetKeyErr map[string]error
}

// NewFailingStore creates a FailingStore with no failures configured.
func NewFailingStore() *FailingStore {
	return &FailingStore{Store: memstore.New()}
}

func (s *FailingStore) Get(ctx context.Context, key string) (string, error) {
	if s.GetErr != nil {
		return "", s.GetErr
	}
	return s.Store.Get(ctx, key)
}

func (s *FailingStore) Set(ctx context.Context, key, value string) error {
	if s.SetErr != nil {
		return s.SetErr
	}
	if err := s.SetKeyErr[key]; err != nil {
		return err
	}
	return s.Store.Set(ctx, key, value)
}

func (s *FailingStore) Delete(ctx context.Context, keys ...string) error {
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	return s.Store.Delete(ctx, keys...)
}
