package httpx

import (
	"context"

	domainauth "github.com/target/incident-portal/internal/domain/auth"
)

// snapshotKey is an unexported context key type to avoid collisions across packages.
type snapshotKey struct{}

// SetSnapshotInContext returns a child context that carries the cookie identity snapshot.
// If id is nil, the original ctx is returned unchanged.
func SetSnapshotInContext(ctx context.Context, id *domainauth.Identity) context.Context {
	if id == nil {
		return ctx
	}
	return context.WithValue(ctx, snapshotKey{}, id)
}

// GetSnapshotFromContext returns the cookie identity snapshot and whether one was present.
// The snapshot is advisory; it is never verified against the backend.
func GetSnapshotFromContext(ctx context.Context) (*domainauth.Identity, bool) {
	if id, ok := ctx.Value(snapshotKey{}).(*domainauth.Identity); ok && id != nil {
		return id, true
	}
	return nil, false
}
