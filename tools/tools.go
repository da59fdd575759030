//go:build tools

// Package tools documents development tool dependencies.
// They are run with `go run` or installed with `go install` and are not tracked in go.mod.
package tools

// Development tools:
//
// mockgen - regenerates internal/mocks from the ports
//   Run: go generate ./internal/mocks
//   Version: go.uber.org/mock v0.6.0 (pinned in the go:generate directives)
//
// Air - live reload for cmd/portal
//   Install: go install github.com/air-verse/air@v1.63.0
//   Docs: https://github.com/air-verse/air
