package auth

import (
	"fmt"
	"strings"
)

// RouteClass is the access class a request path falls into.
type RouteClass int

const (
	// RouteUnclassified paths carry no restriction.
	RouteUnclassified RouteClass = iota
	// RouteAdmin paths require a token and, when the role is known, a privileged role.
	RouteAdmin
	// RouteProtected paths require any token.
	RouteProtected
	// RoutePublic paths bounce already-authenticated users to their landing page.
	RoutePublic
)

func (c RouteClass) String() string {
	switch c {
	case RouteAdmin:
		return "admin"
	case RouteProtected:
		return "protected"
	case RoutePublic:
		return "public"
	default:
		return "unclassified"
	}
}

// MatchMode controls how admin prefixes are compared to a path.
type MatchMode string

const (
	// MatchPrefix is a plain strings.HasPrefix; "/adminx" matches "/admin".
	MatchPrefix MatchMode = "prefix"
	// MatchSegment matches the prefix itself or the prefix followed by "/".
	MatchSegment MatchMode = "segment"
)

// UnmarshalText implements encoding.TextUnmarshaler for MatchMode.
func (m *MatchMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "", string(MatchPrefix):
		*m = MatchPrefix
		return nil
	case string(MatchSegment):
		*m = MatchSegment
		return nil
	default:
		return fmt.Errorf("invalid MatchMode: %q (valid options: prefix, segment)", v)
	}
}

// Landing and entry paths used for redirects.
const (
	LoginPath             = "/login"
	UnauthorizedLoginPath = "/login?error=unauthorized"
	AdminLandingPath      = "/admin"
	UserLandingPath       = "/dashboard"
)

// RouteTable is the static partition of paths into access classes.
type RouteTable struct {
	AdminPrefixes     []string
	ProtectedPrefixes []string
	PublicExact       []string
	AdminMatch        MatchMode
}

// DefaultRouteTable returns the shipped classification defaults.
func DefaultRouteTable() RouteTable {
	return RouteTable{
		AdminPrefixes:     []string{"/admin"},
		ProtectedPrefixes: []string{"/dashboard", "/profile"},
		PublicExact:       []string{"/login", "/register"},
		AdminMatch:        MatchPrefix,
	}
}

// Classify returns the access class of path. Admin is checked first, then protected, then public.
func (t RouteTable) Classify(path string) RouteClass {
	switch {
	case t.IsAdmin(path):
		return RouteAdmin
	case hasAnyPrefix(path, t.ProtectedPrefixes):
		return RouteProtected
	case t.IsPublic(path):
		return RoutePublic
	default:
		return RouteUnclassified
	}
}

// IsAdmin reports whether path falls under an admin prefix using the configured match mode.
func (t RouteTable) IsAdmin(path string) bool {
	if t.AdminMatch != MatchSegment {
		return hasAnyPrefix(path, t.AdminPrefixes)
	}
	for _, p := range t.AdminPrefixes {
		if p == "" {
			continue
		}
		trimmed := strings.TrimSuffix(p, "/")
		if path == trimmed || strings.HasPrefix(path, trimmed+"/") {
			return true
		}
	}
	return false
}

// IsPublic reports whether path exactly equals one of the public routes.
func (t RouteTable) IsPublic(path string) bool {
	for _, p := range t.PublicExact {
		if path == p {
			return true
		}
	}
	return false
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
