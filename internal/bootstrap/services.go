package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/haulmatch/admin-console/config"
	"github.com/haulmatch/admin-console/internal/adapters/backend"
	"github.com/haulmatch/admin-console/internal/domain/access"
	"github.com/haulmatch/admin-console/internal/observability/metrics"
	"github.com/haulmatch/admin-console/internal/observability/statsd"
	"github.com/haulmatch/admin-console/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Access      *access.Evaluator
	Sessions    *service.Registry
	Login       *service.LoginService
	Marketplace *service.MarketplaceService
	Backend     *backend.Client

	Observability ObservabilityContainer
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	// MetricsSink is nil when metrics are disabled.
	MetricsSink *statsd.Client
	Session     *metrics.SessionMetrics
}

// Close flushes and releases observability resources.
func (o ObservabilityContainer) Close() error {
	if o.MetricsSink == nil {
		return nil
	}
	return o.MetricsSink.Close()
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config *config.AppConfig
	Stores TokenStores
	Logger *slog.Logger
}

// buildObservability configures the StatsD sink. A sink that cannot be
// created disables metrics instead of failing startup.
func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig) ObservabilityContainer {
	if !cfg.Metrics.IsEnabled() {
		return ObservabilityContainer{}
	}
	client, err := statsd.NewClient(statsd.Config{
		Enabled: true,
		Address: cfg.Metrics.StatsdAddress,
		Prefix:  cfg.Metrics.Prefix,
		Logger:  logger,
	})
	if err != nil {
		logger.Error("failed to initialise statsd client", "error", err)
		return ObservabilityContainer{}
	}
	return ObservabilityContainer{MetricsSink: client, Session: metrics.NewSessionMetrics(client)}
}

// NewServices wires the backend client, access policies and session services.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps and config are required")
	}
	st := deps.Stores
	if st.Primary == nil || st.Fallback == nil || st.Pending == nil {
		return ServiceContainer{}, errors.New("primary, fallback and pending token stores are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	client, err := backend.NewClient(backend.Config{
		BaseURL: cfg.Backend.URL,
		Timeout: cfg.Backend.RequestTimeout,
		Logger:  logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("backend client: %w", err)
	}

	policies, err := access.NewDefaultEvaluator()
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("access policies: %w", err)
	}
	obs := buildObservability(logger, cfg.Observability)

	registry := service.NewRegistry(service.RegistryOptions{
		Deps: service.SessionDeps{
			Tokens: service.NewPersistence(service.PersistenceOptions{
				Primary:  st.Primary,
				Fallback: st.Fallback,
				TTL:      cfg.Auth.TokenTTL,
			}),
			Pending:   st.Pending,
			Validator: client,
			Metrics:   obs.Session,
			Logger:    logger,
		},
		Config: service.RegistryConfig{
			Session: service.SessionConfig{
				ValidateTimeout: cfg.Backend.ValidateTimeout,
				PendingTTL:      cfg.Auth.PendingTTL,
			},
			IdleTTL: cfg.Auth.IdleTTL,
		},
	})

	return ServiceContainer{
		Access:   policies,
		Sessions: registry,
		Login: service.NewLoginService(service.LoginServiceOptions{
			Authenticator: client,
			Metrics:       obs.Session,
			Logger:        logger,
		}),
		Marketplace: service.NewMarketplaceService(service.MarketplaceServiceOptions{
			API:    client,
			Access: policies,
			Logger: logger,
		}),
		Backend:       client,
		Observability: obs,
	}, nil
}
