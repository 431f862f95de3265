package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"

	"golang.org/x/net/publicsuffix"

	"github.com/haulmatch/admin-console/internal/adapters/backend"
	"github.com/haulmatch/admin-console/internal/adapters/filestore"
	"github.com/haulmatch/admin-console/internal/domain/access"
	"github.com/haulmatch/admin-console/internal/service"
)

// cliClientID is the key the CLI's token files are stored under. A state
// directory holds one CLI client.
const cliClientID = "console-admin"

// Token file namespaces inside the state directory.
const (
	primaryStoreName  = "primary"
	fallbackStoreName = "fallback"
	pendingStoreName  = "pending"
)

var errNotSignedIn = errors.New("not signed in; run `console-admin login` first")

type cliSession struct {
	Manager     *service.Manager
	Login       *service.LoginService
	Marketplace *service.MarketplaceService
	Access      *access.Evaluator
}

// openSession wires the session core to token files under the state
// directory and to a backend client that keeps cookies across calls.
func openSession(cmdCtx *commandContext) (*cliSession, error) {
	cfg := cmdCtx.Config

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	client, err := backend.NewClient(backend.Config{
		BaseURL:    cfg.Backend.URL,
		HTTPClient: &http.Client{Timeout: cfg.Backend.RequestTimeout, Jar: jar},
		UserAgent:  "haulmatch-console-admin",
		Logger:     cmdCtx.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("backend client: %w", err)
	}

	policies, err := access.NewDefaultEvaluator()
	if err != nil {
		return nil, fmt.Errorf("access policies: %w", err)
	}

	dir := cfg.CLI.StateDir
	manager := service.NewManager(service.ManagerOptions{
		ClientID: cliClientID,
		Deps: service.SessionDeps{
			Tokens: service.NewPersistence(service.PersistenceOptions{
				Primary:  filestore.NewTokenStore(dir, primaryStoreName),
				Fallback: filestore.NewTokenStore(dir, fallbackStoreName),
				TTL:      cfg.Auth.TokenTTL,
			}),
			Pending:   filestore.NewTokenStore(dir, pendingStoreName),
			Validator: client,
			Logger:    cmdCtx.Logger,
		},
		Config: service.SessionConfig{
			ValidateTimeout: cfg.Backend.ValidateTimeout,
			PendingTTL:      cfg.Auth.PendingTTL,
		},
	})

	return &cliSession{
		Manager: manager,
		Login: service.NewLoginService(service.LoginServiceOptions{
			Authenticator: client,
			Logger:        cmdCtx.Logger,
		}),
		Marketplace: service.NewMarketplaceService(service.MarketplaceServiceOptions{
			API:    client,
			Access: policies,
			Logger: cmdCtx.Logger,
		}),
		Access: policies,
	}, nil
}

// requireCaller restores the stored token and returns the signed-in caller.
func (s *cliSession) requireCaller(cmdCtx *commandContext) (service.Caller, error) {
	s.Manager.Initialize(cmdCtx.Ctx, "")
	if !s.Manager.IsAuthenticated() {
		return service.Caller{}, errNotSignedIn
	}
	return service.CallerFrom(s.Manager.Snapshot())
}
