package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/haulmatch/admin-console/internal/domain/access"
	"github.com/haulmatch/admin-console/internal/observability/metrics"
	"github.com/haulmatch/admin-console/internal/service"
)

// SessionResolver hands out the initialized session Manager of a client.
type SessionResolver interface {
	Resolve(ctx context.Context, clientID, location string) (*service.Manager, string, error)
}

var _ SessionResolver = (*service.Registry)(nil)

// GuardConfig configures Guard.
type GuardConfig struct {
	Sessions SessionResolver         // Required
	Access   *access.Evaluator       // Required
	Metrics  *metrics.SessionMetrics // Optional
	Logger   *slog.Logger            // Optional
}

// Guard is the route guard. For every request it waits for the client's
// session to finish loading and then:
//
//  1. sends an authenticated admin away from the sign-in screens to the dashboard,
//  2. sends a signed-out client on a non-public path to the login page,
//  3. sends an admin whose role may not open a /dashboard path to /unauthorized,
//  4. otherwise serves the request with the Manager in the request context.
//
// Browsers are redirected (Hx-Redirect for htmx). API callers get 401 or 403 JSON.
// Static assets and the health check bypass the guard.
func Guard(cfg GuardConfig) Middleware {
	if cfg.Sessions == nil || cfg.Access == nil {
		panic("Guard: session resolver and access evaluator are required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "route_guard")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if bypassesGuard(path) {
				next.ServeHTTP(w, r)
				return
			}

			m, toDashboard, err := cfg.Sessions.Resolve(r.Context(), ClientIDFromContext(r.Context()), path)
			if err != nil {
				if r.Context().Err() != nil {
					return
				}
				logger.ErrorContext(r.Context(), "resolve session", "error", err, "path", path)
				if IsBrowserRequest(r) {
					http.Error(w, "Session unavailable", http.StatusInternalServerError)
				} else {
					WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "session_unavailable", Err: err})
				}
				return
			}
			r = r.WithContext(WithManager(r.Context(), m))
			role, authenticated := m.Snapshot().Role()

			switch {
			case access.IsPublic(path):
				if toDashboard != "" {
					cfg.Metrics.GuardDecision(metrics.DecisionDashboard)
					redirect(w, r, toDashboard)
					return
				}
			case !authenticated:
				cfg.Metrics.GuardDecision(metrics.DecisionLogin)
				if !IsBrowserRequest(r) {
					WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "authentication_required", Err: service.ErrNotAuthenticated})
					return
				}
				redirect(w, r, access.RouteLogin)
				return
			case access.IsProtected(path) && !cfg.Access.CheckRouteAccess(path, role):
				cfg.Metrics.GuardDecision(metrics.DecisionUnauthorized)
				logger.InfoContext(r.Context(), "route denied", "path", path, "role", int(role))
				if !IsBrowserRequest(r) {
					WriteError(w, ErrorParams{Code: http.StatusForbidden, ErrCode: "insufficient_permissions", Err: errRouteDenied})
					return
				}
				redirect(w, r, access.RouteUnauthorized)
				return
			}

			cfg.Metrics.GuardDecision(metrics.DecisionAllow)
			next.ServeHTTP(w, r)
		})
	}
}

var errRouteDenied = errors.New("your role does not grant access to this page")

func bypassesGuard(path string) bool {
	return path == access.RouteHealth || strings.HasPrefix(path, access.StaticPrefix)
}
