package httpx

import (
	"context"

	domainauth "github.com/haulmatch/admin-console/internal/domain/auth"
	"github.com/haulmatch/admin-console/internal/service"
)

// Unexported context key types to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same keys.
type (
	managerKey  struct{}
	clientIDKey struct{}
)

// WithManager returns a child context carrying the client's session manager.
// If m is nil, ctx is returned unchanged.
func WithManager(ctx context.Context, m *service.Manager) context.Context {
	if m == nil {
		return ctx
	}
	return context.WithValue(ctx, managerKey{}, m)
}

// ManagerFromContext returns the session manager placed by the guard.
func ManagerFromContext(ctx context.Context) (*service.Manager, bool) {
	m, ok := ctx.Value(managerKey{}).(*service.Manager)
	return m, ok && m != nil
}

// SessionFromContext returns a snapshot of the request's session. Requests
// that did not pass the guard get a signed-out session.
func SessionFromContext(ctx context.Context) domainauth.Session {
	if m, ok := ManagerFromContext(ctx); ok {
		return m.Snapshot()
	}
	return domainauth.Session{}
}

// WithClientID returns a child context carrying the browser's client id.
func WithClientID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, clientIDKey{}, id)
}

// ClientIDFromContext returns the client id set by ClientIdentity, or "".
func ClientIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(clientIDKey{}).(string)
	return id
}
