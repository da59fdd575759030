package requestid

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextRoundTrip(t *testing.T) {
	assert.Empty(t, FromContext(context.Background()))

	id := New()
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	ctx := NewContext(context.Background(), id)
	assert.Equal(t, id, FromContext(ctx))
	assert.NotEqual(t, id, New())
}
