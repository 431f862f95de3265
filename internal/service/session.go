package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/haulmatch/admin-console/internal/domain/access"
	domainauth "github.com/haulmatch/admin-console/internal/domain/auth"
	"github.com/haulmatch/admin-console/internal/observability/metrics"
	"github.com/haulmatch/admin-console/internal/ports"
)

// Defaults applied by NewManager when the config leaves a value unset.
const (
	DefaultValidateTimeout = 10 * time.Second
	DefaultPendingTTL      = 10 * time.Minute
)

// ErrNotAuthenticated is returned by operations that need a signed-in admin.
var ErrNotAuthenticated = errors.New("not authenticated")

// SessionDeps are the collaborators shared by every Manager.
type SessionDeps struct {
	Tokens    *Persistence            // Required
	Pending   ports.TokenStore        // Required: short-lived username pending OTP
	Validator ports.IdentityValidator // Required
	Metrics   *metrics.SessionMetrics // Optional
	Logger    *slog.Logger            // Optional
}

// SessionConfig tunes Manager timing.
type SessionConfig struct {
	ValidateTimeout time.Duration
	PendingTTL      time.Duration
	Now             func() time.Time
}

// ManagerOptions groups dependencies for NewManager.
type ManagerOptions struct {
	ClientID string
	Deps     SessionDeps
	Config   SessionConfig
}

// Manager owns the Session of one console client. It is the only writer of that
// state; readers take copies through Snapshot. Safe for concurrent use.
type Manager struct {
	clientID        string
	tokens          *Persistence
	pending         ports.TokenStore
	validator       ports.IdentityValidator
	metrics         *metrics.SessionMetrics
	logger          *slog.Logger
	validateTimeout time.Duration
	pendingTTL      time.Duration
	now             func() time.Time

	initOnce sync.Once

	mu      sync.RWMutex
	token   string
	admin   *domainauth.Admin
	loading bool
	gen     uint64 // bumped on every sign-in or sign-out

	lastSeen atomic.Int64
}

// NewManager constructs a Manager in the loading state.
func NewManager(opts ManagerOptions) *Manager {
	d := opts.Deps
	if d.Tokens == nil || d.Pending == nil || d.Validator == nil {
		panic("session manager requires token persistence, pending store and validator")
	}
	if strings.TrimSpace(opts.ClientID) == "" {
		panic("session manager requires a client id")
	}

	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := opts.Config
	if cfg.ValidateTimeout <= 0 {
		cfg.ValidateTimeout = DefaultValidateTimeout
	}
	if cfg.PendingTTL <= 0 {
		cfg.PendingTTL = DefaultPendingTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	m := &Manager{
		clientID:        opts.ClientID,
		tokens:          d.Tokens,
		pending:         d.Pending,
		validator:       d.Validator,
		metrics:         d.Metrics,
		logger:          logger.With("component", "session", "client_id", shortID(opts.ClientID)),
		validateTimeout: cfg.ValidateTimeout,
		pendingTTL:      cfg.PendingTTL,
		now:             cfg.Now,
		loading:         true,
	}
	m.touch()
	return m
}

// ClientID returns the client this Manager belongs to.
func (m *Manager) ClientID() string { return m.clientID }

// Initialize restores the session from storage the first time it is called and
// is a no-op afterwards. It never fails: storage or backend problems leave the
// session signed out. The returned redirect is the dashboard when the session
// is authenticated and location is a sign-in screen, and "" otherwise.
func (m *Manager) Initialize(ctx context.Context, location string) string {
	m.initOnce.Do(func() { m.restore(ctx) })
	m.touch()
	if m.IsAuthenticated() && access.IsLoginOnly(location) {
		return access.RouteDashboard
	}
	return ""
}

func (m *Manager) restore(ctx context.Context) {
	start := m.now()
	defer func() {
		if r := recover(); r != nil {
			m.logger.ErrorContext(ctx, "session initialization panicked", "panic", r)
			m.reset()
		}
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
		m.metrics.Initialize(m.IsAuthenticated(), m.now().Sub(start))
	}()

	token, err := m.tokens.Load(ctx, m.clientID)
	if err != nil {
		if !errors.Is(err, ports.ErrTokenNotFound) {
			m.logger.WarnContext(ctx, "load persisted token", "error", err)
		}
		m.clearTokens(ctx)
		return
	}

	admin, ok := m.Validate(ctx, token)
	if !ok {
		m.logger.InfoContext(ctx, "persisted token rejected, signing out")
		m.clearStores(ctx)
		return
	}

	m.mu.Lock()
	m.token = token
	m.admin = &admin
	m.gen++
	m.mu.Unlock()
}

// Refresh reconciles an initialized session with the token stores, which other
// console instances share. A token that disappeared signs the client out; a
// different token is validated and adopted, or cleared when rejected. A store
// outage or a canceled ctx leaves the session as it is.
func (m *Manager) Refresh(ctx context.Context) {
	m.mu.RLock()
	current, gen, loading := m.token, m.gen, m.loading
	m.mu.RUnlock()
	if loading {
		return
	}

	stored, err := m.tokens.Load(ctx, m.clientID)
	switch {
	case errors.Is(err, ports.ErrTokenNotFound):
		stored = ""
	case err != nil:
		m.logger.WarnContext(ctx, "refresh persisted token", "error", err)
		return
	}
	if stored == current {
		return
	}
	if stored == "" {
		if m.resetIf(gen) {
			m.logger.InfoContext(ctx, "session ended on another instance")
		}
		return
	}

	admin, ok := m.Validate(ctx, stored)
	if ctx.Err() != nil {
		return
	}
	if !ok {
		if m.resetIf(gen) {
			m.logger.InfoContext(ctx, "persisted token rejected, signing out")
			m.clearTokens(ctx)
		}
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		return
	}
	m.token = stored
	m.admin = &admin
	m.gen++
}

// Validate asks the backend who owns token. Any failure, including a timeout or
// a canceled ctx, yields ok=false. It does not change the session.
func (m *Manager) Validate(ctx context.Context, token string) (domainauth.Admin, bool) {
	if strings.TrimSpace(token) == "" {
		return domainauth.Admin{}, false
	}
	ctx, cancel := context.WithTimeout(ctx, m.validateTimeout)
	defer cancel()

	start := m.now()
	admin, err := m.validator.Profile(ctx, token)
	if err == nil {
		err = admin.Validate()
	}
	m.metrics.Validate(err == nil, m.now().Sub(start), err)
	if err != nil {
		m.logger.DebugContext(ctx, "token validation failed", "error", err)
		return domainauth.Admin{}, false
	}
	return admin, true
}

// Login stores token in both token stores and marks the session authenticated
// for admin. The token is trusted because the backend just issued it. On a
// storage failure nothing is changed and the error is returned.
func (m *Manager) Login(ctx context.Context, token string, admin domainauth.Admin) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("login: token is required")
	}
	if err := admin.Validate(); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := m.tokens.Save(ctx, m.clientID, token); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	m.mu.Lock()
	m.token = token
	m.admin = &admin
	m.loading = false
	m.gen++
	m.mu.Unlock()
	m.touch()

	if err := m.pending.Delete(ctx, m.clientID); err != nil {
		m.logger.WarnContext(ctx, "clear pending username", "error", err)
	}
	m.logger.InfoContext(ctx, "admin signed in", "admin_id", admin.ID, "role", int(admin.Role))
	return nil
}

// Logout signs the client out and always returns the login path. Storage
// failures are logged; calling it repeatedly is harmless.
func (m *Manager) Logout(ctx context.Context) string {
	m.clearStores(ctx)
	m.reset()
	m.touch()
	m.metrics.Logout()
	return access.RouteLogin
}

// CheckAuth re-validates the current token without changing the session.
func (m *Manager) CheckAuth(ctx context.Context) bool {
	m.mu.RLock()
	token := m.token
	m.mu.RUnlock()
	if token == "" {
		return false
	}
	_, ok := m.Validate(ctx, token)
	return ok
}

// Snapshot returns a copy of the current session.
func (m *Manager) Snapshot() domainauth.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := domainauth.Session{
		Token:           m.token,
		IsAuthenticated: m.token != "" && m.admin != nil,
		IsLoading:       m.loading,
	}
	if m.admin != nil {
		a := *m.admin
		s.Admin = &a
	}
	return s
}

// IsAuthenticated reports whether the session holds a validated token.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token != "" && m.admin != nil
}

// Loading reports whether the first Initialize is still running.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// Token returns the bearer token, or "" when signed out.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// SetPendingUsername remembers who is between the password and OTP steps.
func (m *Manager) SetPendingUsername(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errors.New("pending username is required")
	}
	if err := m.pending.Save(ctx, m.clientID, username, m.pendingTTL); err != nil {
		return fmt.Errorf("save pending username: %w", err)
	}
	return nil
}

// PendingUsername returns the username awaiting OTP verification, if any.
func (m *Manager) PendingUsername(ctx context.Context) (string, bool) {
	u, err := m.pending.Load(ctx, m.clientID)
	if err != nil {
		if !errors.Is(err, ports.ErrTokenNotFound) {
			m.logger.WarnContext(ctx, "load pending username", "error", err)
		}
		return "", false
	}
	return u, u != ""
}

// LastSeen is when the client last touched this Manager.
func (m *Manager) LastSeen() time.Time {
	return time.Unix(0, m.lastSeen.Load())
}

func (m *Manager) touch() { m.lastSeen.Store(m.now().UnixNano()) }

func (m *Manager) reset() {
	m.mu.Lock()
	m.token = ""
	m.admin = nil
	m.gen++
	m.mu.Unlock()
}

// resetIf signs out only when nothing signed in or out since gen was read.
func (m *Manager) resetIf(gen uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		return false
	}
	m.token = ""
	m.admin = nil
	m.gen++
	return true
}

func (m *Manager) clearTokens(ctx context.Context) {
	if err := m.tokens.Clear(ctx, m.clientID); err != nil {
		m.logger.WarnContext(ctx, "clear persisted token", "error", err)
	}
}

func (m *Manager) clearStores(ctx context.Context) {
	m.clearTokens(ctx)
	if err := m.pending.Delete(ctx, m.clientID); err != nil {
		m.logger.WarnContext(ctx, "clear pending username", "error", err)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
