package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultIdleTTL is how long an unused Manager stays in memory.
const DefaultIdleTTL = 12 * time.Hour

// ErrClientIDRequired is returned by Resolve for an empty client id.
var ErrClientIDRequired = errors.New("client id is required")

// RegistryConfig tunes the Registry.
type RegistryConfig struct {
	Session SessionConfig
	IdleTTL time.Duration
}

// RegistryOptions groups dependencies for NewRegistry.
type RegistryOptions struct {
	Deps   SessionDeps
	Config RegistryConfig
}

// Registry holds one Manager per client and makes sure each is initialized once.
// Evicting an idle Manager only drops memory; its token stays in the stores and
// is restored on the client's next request.
type Registry struct {
	deps    SessionDeps
	cfg     SessionConfig
	idleTTL time.Duration
	logger  *slog.Logger

	mu       sync.Mutex
	managers map[string]*Manager
	inits    singleflight.Group
}

// NewRegistry constructs a Registry. Dependencies are checked when the first Manager is built.
func NewRegistry(opts RegistryOptions) *Registry {
	logger := opts.Deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := opts.Config.Session
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.ValidateTimeout <= 0 {
		cfg.ValidateTimeout = DefaultValidateTimeout
	}
	idle := opts.Config.IdleTTL
	if idle <= 0 {
		idle = DefaultIdleTTL
	}
	return &Registry{
		deps:     opts.Deps,
		cfg:      cfg,
		idleTTL:  idle,
		logger:   logger.With("component", "session_registry"),
		managers: make(map[string]*Manager),
	}
}

// Resolve returns the client's Manager after its first Initialize has finished,
// together with Initialize's redirect for location. An already initialized
// Manager is refreshed from the token stores first, so a sign-in or sign-out
// made through another instance is seen on the next request.
//
// Concurrent first requests share one initialization. It runs detached from the
// caller's ctx, so a caller that gives up does not cut it short for the others;
// the caller itself returns ctx.Err().
func (r *Registry) Resolve(ctx context.Context, clientID, location string) (*Manager, string, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, "", ErrClientIDRequired
	}
	m := r.managerFor(clientID)

	if m.Loading() {
		initCtx := context.WithoutCancel(ctx)
		ch := r.inits.DoChan(clientID, func() (any, error) {
			ictx, cancel := context.WithTimeout(initCtx, 2*r.cfg.ValidateTimeout)
			defer cancel()
			m.Initialize(ictx, "")
			return nil, nil
		})
		select {
		case <-ch:
		case <-ctx.Done():
			return nil, "", ctx.Err()
		}
	} else {
		m.Refresh(ctx)
	}

	return m, m.Initialize(ctx, location), nil
}

// Lookup returns the Manager for clientID without creating or initializing one.
func (r *Registry) Lookup(clientID string) (*Manager, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.managers[clientID]
	return m, ok
}

// Len reports how many Managers are held.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.managers)
}

// Sweep drops Managers idle for longer than the idle TTL and returns how many were removed.
func (r *Registry) Sweep() int {
	cutoff := r.cfg.Now().Add(-r.idleTTL)
	r.mu.Lock()
	removed := 0
	for id, m := range r.managers {
		if m.Loading() {
			continue
		}
		if m.LastSeen().Before(cutoff) {
			delete(r.managers, id)
			removed++
		}
	}
	n := len(r.managers)
	r.mu.Unlock()

	r.deps.Metrics.ActiveClients(n)
	if removed > 0 {
		r.logger.Debug("swept idle sessions", "removed", removed, "remaining", n)
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.Sweep()
		}
	}
}

func (r *Registry) managerFor(clientID string) *Manager {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.managers[clientID]; ok {
		return m
	}
	m := NewManager(ManagerOptions{ClientID: clientID, Deps: r.deps, Config: r.cfg})
	r.managers[clientID] = m
	return m
}
