//go:build tools

// Package tools lists the development tools the console relies on. They are
// run through `go run` or installed with `go install` and are not module
// dependencies.
package tools

// mockgen regenerates internal/mocks from the ports interfaces:
//
//	go generate ./internal/mocks
//
// It is pinned in the go:generate lines (go.uber.org/mock/mockgen@v0.6.0).
//
// Air restarts the console on Go changes. With IS_DEV=true the templates and
// static files are read from frontend/ on each request, so they need no restart.
//
//	go install github.com/air-verse/air@v1.63.0
//	air --build.cmd "go build -o ./tmp/console ./cmd/console" --build.bin ./tmp/console
