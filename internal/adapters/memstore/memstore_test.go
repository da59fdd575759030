package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/incident-portal/internal/ports"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.Get(ctx, "token")
	require.ErrorIs(t, err, ports.ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, "token", "abc"))
	v, err := s.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	snap := s.Snapshot()
	snap["token"] = "mutated"
	v, _ = s.Get(ctx, "token")
	assert.Equal(t, "abc", v, "snapshot is a copy")

	require.NoError(t, s.Delete(ctx, "token", "missing"))
	assert.Equal(t, 0, s.Len())
	assert.Error(t, s.Set(ctx, "", "x"))
}
