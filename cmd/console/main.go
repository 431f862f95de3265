// Command console serves the HaulMatch admin console.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/haulmatch/admin-console/config"
	"github.com/haulmatch/admin-console/internal/bootstrap"
	"github.com/haulmatch/admin-console/internal/data/pgxutil"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	if err = bootstrap.ValidateConfig(&cfg); err != nil {
		return err
	}
	logStartupInfo(ctx, logger, &cfg)

	infra, err := bootstrap.ConnectInfrastructure(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := infra.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close infrastructure failed", "error", cerr)
		}
	}()

	// A nil *pgxpool.Pool must not become a non-nil interface.
	var pool pgxutil.PgxPool
	if infra.Pool != nil {
		pool = infra.Pool
	}
	stores, err := bootstrap.BuildTokenStores(bootstrap.TokenStoreDeps{
		Auth:   cfg.Auth,
		Redis:  infra.Redis,
		Pool:   pool,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("token stores: %w", err)
	}

	services, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config: &cfg,
		Stores: stores,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := services.Observability.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close metrics sink failed", "error", cerr)
		}
	}()

	return bootstrap.RunServicesWithShutdown(ctx, &bootstrap.ServiceOrchestrationConfig{
		Config:   &cfg,
		Services: services,
		Infra:    infra,
		Logger:   logger,
	})
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting admin console",
		"addr", cfg.HTTP.Addr,
		"backend", cfg.Backend.URL,
		"session_store", string(cfg.Auth.Store),
		"dev", cfg.IsDev,
		"metrics", cfg.Observability.Metrics.Enabled)
}
