package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRouteTable_Classify(t *testing.T) {
	table := DefaultRouteTable()

	tests := []struct {
		path string
		want RouteClass
	}{
		{"/admin", RouteAdmin},
		{"/admin/incidentes", RouteAdmin},
		{"/adminx", RouteAdmin}, // prefix semantics over-match
		{"/dashboard", RouteProtected},
		{"/dashboard/stats", RouteProtected},
		{"/profile", RouteProtected},
		{"/login", RoutePublic},
		{"/register", RoutePublic},
		{"/loginextra", RouteUnclassified},
		{"/login/", RouteUnclassified},
		{"/", RouteUnclassified},
		{"/ajuda", RouteUnclassified},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Classify(tt.path))
		})
	}
}

func TestRouteTable_SegmentMatch(t *testing.T) {
	table := DefaultRouteTable()
	table.AdminMatch = MatchSegment

	assert.Equal(t, RouteAdmin, table.Classify("/admin"))
	assert.Equal(t, RouteAdmin, table.Classify("/admin/incidentes"))
	assert.Equal(t, RouteUnclassified, table.Classify("/adminx"))
}

func TestRouteTable_AdminCheckedBeforeProtected(t *testing.T) {
	table := RouteTable{
		AdminPrefixes:     []string{"/dashboard/admin"},
		ProtectedPrefixes: []string{"/dashboard"},
	}
	assert.Equal(t, RouteAdmin, table.Classify("/dashboard/admin/users"))
	assert.Equal(t, RouteProtected, table.Classify("/dashboard"))
}

func TestRouteTable_EmptyPrefixesIgnored(t *testing.T) {
	table := RouteTable{AdminPrefixes: []string{""}, ProtectedPrefixes: []string{""}}
	assert.Equal(t, RouteUnclassified, table.Classify("/anything"))
}

func TestMatchMode_UnmarshalText(t *testing.T) {
	var m MatchMode
	require.NoError(t, m.UnmarshalText([]byte("Segment")))
	assert.Equal(t, MatchSegment, m)

	require.NoError(t, m.UnmarshalText([]byte("")))
	assert.Equal(t, MatchPrefix, m)

	assert.Error(t, m.UnmarshalText([]byte("regex")))
}
