package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/haulmatch/admin-console/config"
	httpx "github.com/haulmatch/admin-console/internal/http"
)

const shutdownWaitTimeout = 5 * time.Second

// Infrastructure holds the external connections of a durable deployment.
// Both are nil in memory mode.
type Infrastructure struct {
	Pool  *pgxpool.Pool
	Redis redis.UniversalClient
}

// Close releases every open connection.
func (i Infrastructure) Close() error {
	var errs []error
	if i.Redis != nil {
		if err := i.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if i.Pool != nil {
		i.Pool.Close()
	}
	return errors.Join(errs...)
}

// HealthChecks returns a readiness probe per connected dependency.
func (i Infrastructure) HealthChecks() map[string]httpx.HealthCheck {
	checks := map[string]httpx.HealthCheck{}
	if i.Redis != nil {
		checks["redis"] = func(ctx context.Context) error { return i.Redis.Ping(ctx).Err() }
	}
	if i.Pool != nil {
		checks["postgres"] = i.Pool.Ping
	}
	return checks
}

// ConnectInfrastructure opens Postgres and Redis for durable mode and applies
// migrations when enabled. Memory mode connects nothing.
func ConnectInfrastructure(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (Infrastructure, error) {
	if cfg.Auth.Store == config.TokenStoreMemory {
		return Infrastructure{}, nil
	}

	dbCfg := DatabaseConfig{DBConfig: cfg.Postgres, RedisConfig: cfg.Redis, Logger: logger}
	pool, err := ConnectDB(ctx, dbCfg)
	if err != nil {
		return Infrastructure{}, fmt.Errorf("connect db: %w", err)
	}
	infra := Infrastructure{Pool: pool}

	if cfg.Postgres.RunMigrationsOnStart {
		if err := RunMigrations(ctx, pool, logger); err != nil {
			return Infrastructure{}, errors.Join(err, infra.Close())
		}
	} else {
		logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
	}

	client, err := ConnectRedis(ctx, dbCfg)
	if err != nil {
		return Infrastructure{}, errors.Join(fmt.Errorf("connect redis: %w", err), infra.Close())
	}
	infra.Redis = client
	return infra, nil
}

// ServiceOrchestrationConfig groups what RunServicesWithShutdown manages.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Infra    Infrastructure
	Logger   *slog.Logger
}

// RunServicesWithShutdown serves HTTP and sweeps idle sessions until a
// shutdown signal arrives or the server fails.
func RunServicesWithShutdown(ctx context.Context, cfg *ServiceOrchestrationConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	errCh := make(chan error, 1)
	server, err := StartHTTPServer(&HTTPServerConfig{
		Config:       cfg.Config,
		Services:     cfg.Services,
		HealthChecks: cfg.Infra.HealthChecks(),
		Logger:       logger,
	}, errCh)
	if err != nil {
		return err
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		cfg.Services.Sessions.RunSweeper(sweepCtx, cfg.Config.Auth.SweepInterval)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	select {
	case <-quit:
		logger.Info("shutting down services...")
	case <-ctx.Done():
		logger.Info("context canceled, shutting down services...")
	case runErr = <-errCh:
		logger.Error("service error", "error", runErr)
	}

	stopSweep()
	stopErr := ShutdownHTTPServer(context.WithoutCancel(ctx), server, logger)
	waitForGroup(&wg, "session sweeper", logger)
	return errors.Join(runErr, stopErr)
}

func waitForGroup(wg *sync.WaitGroup, name string, logger *slog.Logger) {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		logger.Info(name + " stopped")
	case <-time.After(shutdownWaitTimeout):
		logger.Warn("timeout waiting for " + name + " to stop")
	}
}
