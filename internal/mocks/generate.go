// Package mocks provides mock implementations of the backend ports for service tests.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	users := mocks.NewMockUserBackend(ctrl)
//	users.EXPECT().GetUser(gomock.Any(), "tok", int64(7)).Return(doc, nil)
package mocks

// Generate mock for AuthBackend interface from internal/ports package.
// This creates MockAuthBackend with methods for all AuthBackend interface methods:
// Login
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=auth_backend_mock.go github.com/target/incident-portal/internal/ports AuthBackend

// Generate mock for UserBackend interface from internal/ports package.
// This creates MockUserBackend with methods for all UserBackend interface methods:
// CurrentUser, GetUser, UpdateUser
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=user_backend_mock.go github.com/target/incident-portal/internal/ports UserBackend

// Generate mock for IncidentBackend interface from internal/ports package.
// This creates MockIncidentBackend with methods for all IncidentBackend interface methods:
// ListIncidents, GetIncident, CreateIncident, UpdateIncident, DeleteIncident, ResolveIncident, IncidentsBySeverity
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=incident_backend_mock.go github.com/target/incident-portal/internal/ports IncidentBackend
