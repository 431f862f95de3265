package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/haulmatch/admin-console/config"
	httpx "github.com/haulmatch/admin-console/internal/http"
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config       *config.AppConfig
	Services     ServiceContainer
	HealthChecks map[string]httpx.HealthCheck
	Logger       *slog.Logger
}

// BuildHTTPHandler assembles the console router. It fails when a protected
// route has no access policy.
func BuildHTTPHandler(cfg *HTTPServerConfig) (http.Handler, error) {
	if cfg == nil || cfg.Config == nil {
		return nil, errors.New("http server config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config

	hashKey, blockKey, random := httpx.ClientCookieKeys(appCfg.Auth.CookieHashKey, appCfg.Auth.CookieBlockKey)
	if random {
		logger.Warn("SESSION_COOKIE_HASH_KEY is empty; client cookies will not survive a restart")
	}

	handler, err := httpx.NewRouter(httpx.RouterServices{
		Sessions:         cfg.Services.Sessions,
		Access:           cfg.Services.Access,
		Login:            cfg.Services.Login,
		Marketplace:      cfg.Services.Marketplace,
		ClientStore:      httpx.NewClientCookieStore(hashKey, blockKey, appCfg.HTTP.CookieDomain),
		ClientCookieName: appCfg.Auth.ClientCookieName,
		CookieDomain:     appCfg.HTTP.CookieDomain,
		HealthChecks:     cfg.HealthChecks,
		Metrics:          cfg.Services.Observability.Session,
		IsDev:            appCfg.IsDev,
		Logger:           logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build router: %w", err)
	}
	return handler, nil
}

// StartHTTPServer builds the handler and serves it in the background.
// Listen failures are reported on errCh.
func StartHTTPServer(cfg *HTTPServerConfig, errCh chan<- error) (*http.Server, error) {
	handler, err := BuildHTTPHandler(cfg)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	server := &http.Server{
		Addr:              cfg.Config.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if server.Addr == "" {
		server.Addr = ":8080"
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()
	return server, nil
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	if server == nil {
		return nil
	}
	if logger != nil {
		logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if logger != nil {
		logger.Info("HTTP server stopped")
	}
	return nil
}
