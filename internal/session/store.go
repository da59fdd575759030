// Package session holds the process-wide authenticated identity and its
// durable representation.
//
// A Store is created once per process, restored from durable storage, and
// injected into everything that needs to read or change the current session.
// The durable copy of the identity is authoritative for in-process checks;
// the copy carried in browser cookies is a separate, advisory view.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	domainauth "github.com/target/incident-portal/internal/domain/auth"
	"github.com/target/incident-portal/internal/ports"
)

// Durable storage keys.
const (
	KeyToken     = "token"
	KeyTokenType = "tokenType"
	KeyUser      = "user"
	KeyIssuedAt  = "issuedAt"
)

// DefaultTokenTTL is the backend token lifetime.
const DefaultTokenTTL = 8 * time.Hour

var (
	// ErrSuperseded is returned by PersistIf when the session changed after the
	// caller captured its generation, or the caller's context is done.
	ErrSuperseded = errors.New("session superseded")
	// ErrNoIdentity is returned by operations that need a current identity.
	ErrNoIdentity = errors.New("no identity in session")
	// ErrNoToken is returned by Token when no bearer token is stored.
	ErrNoToken = errors.New("no token in session")
)

// Options groups dependencies for New.
type Options struct {
	Storage   ports.KeyValueStore
	Navigator ports.Navigator
	Logger    *slog.Logger

	// ExpiryCheck enables the proactive issue-time + TTL check on Restore.
	ExpiryCheck bool
	TokenTTL    time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// Store holds the current identity, the derived privileged flag and the lifecycle state.
type Store struct {
	storage     ports.KeyValueStore
	nav         ports.Navigator
	logger      *slog.Logger
	expiryCheck bool
	ttl         time.Duration
	now         func() time.Time

	restoreOnce sync.Once
	ready       chan struct{}

	// writeMu serializes every identity mutation together with its storage writes.
	writeMu sync.Mutex

	mu         sync.RWMutex
	state      State
	identity   *domainauth.Identity
	privileged bool
	generation uint64
}

// New creates a Store in the loading state.
func New(opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ttl := opts.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		storage:     opts.Storage,
		nav:         opts.Navigator,
		logger:      logger.With("component", "session"),
		expiryCheck: opts.ExpiryCheck,
		ttl:         ttl,
		now:         now,
		ready:       make(chan struct{}),
		state:       StateLoading,
	}
}

// Restore adopts the identity held in durable storage. It runs at most once per Store;
// later calls return immediately. Storage and decode failures are logged and leave the
// session anonymous. Restore always leaves the Store in a ready state.
func (s *Store) Restore(ctx context.Context) {
	s.restoreOnce.Do(func() {
		s.writeMu.Lock()
		defer s.writeMu.Unlock()

		id := s.readIdentity(ctx)
		if id != nil && !s.hasToken(ctx) {
			s.logger.WarnContext(ctx, "stored identity has no token; clearing")
			s.clearDurable(ctx)
			id = nil
		}
		if id != nil && s.expiryCheck && s.expired(ctx) {
			s.logger.InfoContext(ctx, "stored session past token lifetime; clearing", "ttl", s.ttl)
			s.clearDurable(ctx)
			id = nil
		}

		s.mu.Lock()
		s.applyLocked(id)
		if id != nil {
			s.state = StateAuthenticated
		} else {
			s.state = StateAnonymous
		}
		s.mu.Unlock()

		close(s.ready)
	})
}

func (s *Store) readIdentity(ctx context.Context) *domainauth.Identity {
	raw, err := s.storage.Get(ctx, KeyUser)
	if err != nil {
		if !errors.Is(err, ports.ErrKeyNotFound) {
			s.logger.WarnContext(ctx, "failed to read stored identity", "error", err)
		}
		return nil
	}

	var id domainauth.Identity
	if err := json.Unmarshal([]byte(raw), &id); err != nil {
		s.logger.WarnContext(ctx, "discarding malformed stored identity", "error", err)
		if delErr := s.storage.Delete(ctx, KeyUser); delErr != nil {
			s.logger.WarnContext(ctx, "failed to delete malformed stored identity", "error", delErr)
		}
		return nil
	}
	return &id
}

// hasToken reports whether a bearer token is stored alongside the identity.
// Keys written at different times can outlive each other (per-key TTLs), and an
// identity without its token is not a session. Read failures count as absent.
func (s *Store) hasToken(ctx context.Context) bool {
	_, err := s.Token(ctx)
	if err != nil && !errors.Is(err, ErrNoToken) {
		s.logger.WarnContext(ctx, "failed to read stored token", "error", err)
	}
	return err == nil
}

// expired reports whether the stored issue time is older than the token TTL.
// A missing issue time cannot be judged and is treated as not expired.
func (s *Store) expired(ctx context.Context) bool {
	raw, err := s.storage.Get(ctx, KeyIssuedAt)
	if err != nil {
		return false
	}
	issued, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		s.logger.WarnContext(ctx, "unreadable session issue time", "value", raw, "error", err)
		return true
	}
	return !s.now().Before(issued.Add(s.ttl))
}

// SetIdentity replaces the current identity; nil makes the session anonymous.
// Before Restore completes the identity is recorded but the state stays loading.
func (s *Store) SetIdentity(id *domainauth.Identity) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.setIdentity(id)
}

func (s *Store) setIdentity(id *domainauth.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyLocked(id)
	if s.state.Ready() {
		if s.identity != nil {
			s.state = StateAuthenticated
		} else {
			s.state = StateAnonymous
		}
	}
}

func (s *Store) applyLocked(id *domainauth.Identity) {
	if id != nil {
		cp := *id
		s.identity = &cp
	} else {
		s.identity = nil
	}
	s.privileged = s.identity.IsPrivileged()
	s.generation++
}

// IsAuthorized reports whether the current identity holds one of roles.
// It is false while loading; use Authorize or AwaitAuthorized when that matters.
func (s *Store) IsAuthorized(roles ...domainauth.Role) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity.HasRole(roles...)
}

// Authorize is IsAuthorized plus whether the answer is authoritative.
// When ready is false the caller must defer its decision.
func (s *Store) Authorize(roles ...domainauth.Role) (allowed, ready bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity.HasRole(roles...), s.state.Ready()
}

// AwaitAuthorized blocks until Restore completes, then answers IsAuthorized.
func (s *Store) AwaitAuthorized(ctx context.Context, roles ...domainauth.Role) (bool, error) {
	select {
	case <-s.ready:
	case <-ctx.Done():
		return false, ctx.Err()
	}
	return s.IsAuthorized(roles...), nil
}

// Logout clears the durable session and the in-memory identity, then navigates to the
// login entry point. It is safe to call without an identity.
func (s *Store) Logout(ctx context.Context) error {
	s.writeMu.Lock()
	s.clearDurable(ctx)
	s.setIdentity(nil)
	s.writeMu.Unlock()

	if s.nav == nil {
		return nil
	}
	if err := s.nav.Navigate(ctx, domainauth.LoginPath); err != nil {
		return fmt.Errorf("navigate to login: %w", err)
	}
	return nil
}

func (s *Store) clearDurable(ctx context.Context) {
	if err := s.storage.Delete(ctx, KeyToken, KeyTokenType, KeyUser, KeyIssuedAt); err != nil {
		s.logger.WarnContext(ctx, "failed to clear stored session", "error", err)
	}
}

// Identity returns a copy of the current identity, or nil.
func (s *Store) Identity() *domainauth.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil
	}
	cp := *s.identity
	return &cp
}

// IsAdmin reports the derived privileged flag.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.privileged
}

// State returns the lifecycle state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Loading reports whether Restore has not yet completed.
func (s *Store) Loading() bool {
	return !s.State().Ready()
}

// Ready is closed once Restore completes.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// Generation changes on every identity mutation. Capture it before a backend call
// and pass it to PersistIf to discard responses that arrive after the session moved on.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Token returns the stored bearer token.
func (s *Store) Token(ctx context.Context) (string, error) {
	tok, err := s.storage.Get(ctx, KeyToken)
	if err != nil {
		if errors.Is(err, ports.ErrKeyNotFound) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("read token: %w", err)
	}
	if tok == "" {
		return "", ErrNoToken
	}
	return tok, nil
}

// Persist stores a login result and adopts its identity.
func (s *Store) Persist(ctx context.Context, res domainauth.LoginResult) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.persist(ctx, res)
}

// PersistIf is Persist guarded by the generation captured before the login call.
func (s *Store) PersistIf(ctx context.Context, gen uint64, res domainauth.LoginResult) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSuperseded, err)
	}
	if cur := s.Generation(); cur != gen {
		return ErrSuperseded
	}
	return s.persist(ctx, res)
}

func (s *Store) persist(ctx context.Context, res domainauth.LoginResult) error {
	if res.Token == "" {
		return errors.New("login result has no token")
	}
	user, err := json.Marshal(res.Identity)
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}

	writes := []struct{ key, value string }{
		{KeyToken, res.Token},
		{KeyTokenType, res.TokenType},
		{KeyUser, string(user)},
	}
	if s.expiryCheck {
		writes = append(writes, struct{ key, value string }{KeyIssuedAt, s.now().UTC().Format(time.RFC3339)})
	}
	for i, w := range writes {
		if err := s.storage.Set(ctx, w.key, w.value); err != nil {
			if i > 0 {
				// A partial write mixes the new token with whatever was stored before.
				s.clearDurable(ctx)
				s.setIdentity(nil)
			}
			return fmt.Errorf("store %s: %w", w.key, err)
		}
	}

	id := res.Identity
	s.setIdentity(&id)
	return nil
}

// UpdateProfile rewrites the stored identity with a new name and email.
// Only the durable copy and the in-memory identity change; cookies are left as they are.
func (s *Store) UpdateProfile(ctx context.Context, name, email string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	cur := s.Identity()
	if cur == nil {
		return ErrNoIdentity
	}
	updated := cur.WithProfile(name, email)
	data, err := json.Marshal(updated)
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}
	if err := s.storage.Set(ctx, KeyUser, string(data)); err != nil {
		return fmt.Errorf("store %s: %w", KeyUser, err)
	}
	s.setIdentity(&updated)
	return nil
}
