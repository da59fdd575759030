package ports_test

import (
	"testing"

	"github.com/target/incident-portal/internal/adapters/backend"
	"github.com/target/incident-portal/internal/adapters/filestore"
	"github.com/target/incident-portal/internal/adapters/memstore"
	redisstore "github.com/target/incident-portal/internal/adapters/redis"
	mocks "github.com/target/incident-portal/internal/mocks/auth"
	"github.com/target/incident-portal/internal/ports"
)

// This test only verifies that adapters and doubles conform to the ports at compile time.
func TestImplementationsSatisfyPorts(t *testing.T) {
	t.Helper()

	var _ ports.KeyValueStore = (*memstore.Store)(nil)
	var _ ports.KeyValueStore = (*filestore.Store)(nil)
	var _ ports.KeyValueStore = (*redisstore.KeyValueStore)(nil)
	var _ ports.KeyValueStore = (*mocks.FailingStore)(nil)
	var _ ports.Navigator = (*mocks.RecordingNavigator)(nil)
	var _ ports.AuthBackend = (*backend.Client)(nil)
	var _ ports.UserBackend = (*backend.Client)(nil)
	var _ ports.IncidentBackend = (*backend.Client)(nil)
}
