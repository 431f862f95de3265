package httpx

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/sessions"

	adminconsole "github.com/haulmatch/admin-console"
	"github.com/haulmatch/admin-console/internal/domain/access"
	"github.com/haulmatch/admin-console/internal/observability/metrics"
	"github.com/haulmatch/admin-console/internal/service"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Sessions    SessionResolver             // Required
	Access      *access.Evaluator           // Required
	Login       *service.LoginService       // Required
	Marketplace *service.MarketplaceService // Required
	// ClientStore keeps the signed client id cookie. Required.
	ClientStore      sessions.Store
	ClientCookieName string
	CookieDomain     string
	HealthChecks     map[string]HealthCheck
	Metrics          *metrics.SessionMetrics
	// TemplateFS overrides the template source. Defaults to the embedded
	// templates, or frontend/templates on disk in dev mode.
	TemplateFS fs.FS
	IsDev      bool
	Logger     *slog.Logger
}

type routeSpec struct {
	Method  string
	Pattern string
	Handler func(h *UIHandlers) http.HandlerFunc
}

func (s routeSpec) key() string { return s.Method + " " + s.Pattern }

// routeSpecs is the console's route table. Every /dashboard pattern here must
// have an access policy; NewRouter refuses to start otherwise.
//
//nolint:gochecknoglobals // static route table
var routeSpecs = []routeSpec{
	{http.MethodGet, "/{$}", func(h *UIHandlers) http.HandlerFunc { return h.Root }},
	{http.MethodGet, access.RouteLogin, func(h *UIHandlers) http.HandlerFunc { return h.LoginPage }},
	{http.MethodPost, access.RouteLogin, func(h *UIHandlers) http.HandlerFunc { return h.LoginSubmit }},
	{http.MethodGet, access.RouteVerifyOTP, func(h *UIHandlers) http.HandlerFunc { return h.VerifyPage }},
	{http.MethodPost, access.RouteVerifyOTP, func(h *UIHandlers) http.HandlerFunc { return h.VerifySubmit }},
	{http.MethodPost, access.RouteLogout, func(h *UIHandlers) http.HandlerFunc { return h.Logout }},
	{http.MethodGet, access.RouteAuthStatus, func(h *UIHandlers) http.HandlerFunc { return h.AuthStatus }},
	{http.MethodGet, access.RouteUnauthorized, func(h *UIHandlers) http.HandlerFunc { return h.Unauthorized }},

	{http.MethodGet, access.RouteDashboard, func(h *UIHandlers) http.HandlerFunc { return h.Dashboard }},
	{http.MethodGet, access.RouteUsers, func(h *UIHandlers) http.HandlerFunc { return h.Users }},
	{http.MethodGet, access.RouteUserDetail, func(h *UIHandlers) http.HandlerFunc { return h.UserDetail }},
	{http.MethodGet, access.RouteLoads, func(h *UIHandlers) http.HandlerFunc { return h.Loads }},
	{http.MethodGet, access.RouteLoadEdit, func(h *UIHandlers) http.HandlerFunc { return h.LoadEdit }},
	{http.MethodPost, access.RouteLoadEdit, func(h *UIHandlers) http.HandlerFunc { return h.LoadUpdate }},
	{http.MethodGet, access.RouteTrucks, func(h *UIHandlers) http.HandlerFunc { return h.Trucks }},
	{http.MethodGet, access.RouteTruckEdit, func(h *UIHandlers) http.HandlerFunc { return h.TruckEdit }},
	{http.MethodPost, access.RouteTruckEdit, func(h *UIHandlers) http.HandlerFunc { return h.TruckUpdate }},
	{http.MethodPost, access.RouteTruckVerify, func(h *UIHandlers) http.HandlerFunc { return h.TruckVerify }},
	{http.MethodGet, access.RouteBids, func(h *UIHandlers) http.HandlerFunc { return h.Bids }},
	{http.MethodGet, access.RouteSearch, func(h *UIHandlers) http.HandlerFunc { return h.Search }},
	{http.MethodGet, access.RouteStats, func(h *UIHandlers) http.HandlerFunc { return h.Stats }},
	{http.MethodGet, access.RouteAdminUsers, func(h *UIHandlers) http.HandlerFunc { return h.AdminUsers }},
	{http.MethodGet, access.RouteAdminUserCreate, func(h *UIHandlers) http.HandlerFunc { return h.AdminUserNew }},
	{http.MethodPost, access.RouteAdminUserCreate, func(h *UIHandlers) http.HandlerFunc { return h.AdminUserCreate }},
	{http.MethodGet, access.RouteAdminUserEdit, func(h *UIHandlers) http.HandlerFunc { return h.AdminUserEdit }},
	{http.MethodPost, access.RouteAdminUserEdit, func(h *UIHandlers) http.HandlerFunc { return h.AdminUserUpdate }},
	{http.MethodGet, access.RouteProfile, func(h *UIHandlers) http.HandlerFunc { return h.Profile }},
}

// ReachableRoutes lists every "METHOD pattern" the router serves.
func ReachableRoutes() []string {
	out := make([]string, 0, len(routeSpecs)+2)
	for _, s := range routeSpecs {
		out = append(out, s.key())
	}
	return append(out, http.MethodGet+" "+access.RouteHealth, http.MethodGet+" "+access.StaticPrefix)
}

// NewRouter builds the console handler. It fails when a reachable /dashboard
// route has no access policy or the templates do not parse.
func NewRouter(services RouterServices) (http.Handler, error) {
	if services.Sessions == nil || services.Access == nil || services.Login == nil ||
		services.Marketplace == nil || services.ClientStore == nil {
		return nil, errors.New("router: sessions, access, login, marketplace and client store are required")
	}
	if err := services.Access.Audit(ReachableRoutes()); err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	templateFS, err := templateSource(services)
	if err != nil {
		return nil, err
	}
	tr, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: templateFS, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("router: parse templates: %w", err)
	}

	ui := &UIHandlers{
		T:           tr,
		Login:       services.Login,
		Marketplace: services.Marketplace,
		Access:      services.Access,
		IsDev:       services.IsDev,
		Logger:      logger,
	}

	mux := http.NewServeMux()
	for _, s := range routeSpecs {
		mux.HandleFunc(s.key(), s.Handler(ui))
	}
	health := healthHandler(services.HealthChecks, logger)
	mux.Handle("GET "+access.RouteHealth, health)
	mux.Handle("HEAD "+access.RouteHealth, health)
	mux.Handle("GET "+access.StaticPrefix, staticHandler(services.IsDev, logger))
	mux.HandleFunc("/", ui.NotFound)

	return Chain(mux,
		Recover(logger),
		Logging(logger),
		BrowserDetection(),
		ClientIdentity(ClientIdentityConfig{
			Store:      services.ClientStore,
			CookieName: services.ClientCookieName,
			Logger:     logger,
		}),
		CSRFProtection(CSRFConfig{CookieDomain: services.CookieDomain}),
		Guard(GuardConfig{
			Sessions: services.Sessions,
			Access:   services.Access,
			Metrics:  services.Metrics,
			Logger:   logger,
		}),
	), nil
}

func templateSource(services RouterServices) (fs.FS, error) {
	switch {
	case services.TemplateFS != nil:
		return services.TemplateFS, nil
	case services.IsDev:
		return os.DirFS(TemplatePathFromRoot), nil
	}
	sub, err := fs.Sub(adminconsole.TemplateFS, TemplatePathFromRoot)
	if err != nil {
		return nil, fmt.Errorf("router: embedded templates: %w", err)
	}
	return sub, nil
}

// staticHandler serves /static/ from disk in dev mode and from the embedded
// assets otherwise.
func staticHandler(isDev bool, logger *slog.Logger) http.Handler {
	var root http.FileSystem
	if isDev {
		root = http.Dir("frontend/static")
	} else {
		sub, err := fs.Sub(adminconsole.StaticFS, "frontend/static")
		if err != nil {
			logger.Error("static assets unavailable, serving from disk", "error", err)
			root = http.Dir("frontend/static")
		} else {
			root = http.FS(sub)
		}
	}
	files := http.StripPrefix(strings.TrimSuffix(access.StaticPrefix, "/"), http.FileServer(root))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isDev {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		} else {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		}
		files.ServeHTTP(w, r)
	})
}
