package config

import (
	"strings"

	domainauth "github.com/target/incident-portal/internal/domain/auth"
)

// RoutesConfig is the route classification table and the edge guard bypass set.
// Defaults reproduce the shipped table exactly.
type RoutesConfig struct {
	AdminPrefixes     []string             `env:"AUTH_ADMIN_PREFIXES"     envDefault:"/admin"`
	ProtectedPrefixes []string             `env:"AUTH_PROTECTED_PREFIXES" envDefault:"/dashboard,/profile"`
	PublicRoutes      []string             `env:"AUTH_PUBLIC_ROUTES"      envDefault:"/login,/register"`
	AdminMatch        domainauth.MatchMode `env:"AUTH_ADMIN_MATCH"        envDefault:"prefix"`

	BypassPrefixes []string `env:"AUTH_BYPASS_PREFIXES" envDefault:"/_next/static,/_next/image,/favicon.ico,/api"`
	BypassExact    []string `env:"AUTH_BYPASS_EXACT"`
}

// Sanitize trims entries and drops empty ones.
func (r *RoutesConfig) Sanitize() {
	r.AdminPrefixes = cleanPaths(r.AdminPrefixes)
	r.ProtectedPrefixes = cleanPaths(r.ProtectedPrefixes)
	r.PublicRoutes = cleanPaths(r.PublicRoutes)
	r.BypassPrefixes = cleanPaths(r.BypassPrefixes)
	r.BypassExact = cleanPaths(r.BypassExact)
	if r.AdminMatch == "" {
		r.AdminMatch = domainauth.MatchPrefix
	}
}

// Table returns the route classification table.
func (r RoutesConfig) Table() domainauth.RouteTable {
	return domainauth.RouteTable{
		AdminPrefixes:     r.AdminPrefixes,
		ProtectedPrefixes: r.ProtectedPrefixes,
		PublicExact:       r.PublicRoutes,
		AdminMatch:        r.AdminMatch,
	}
}

func cleanPaths(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
