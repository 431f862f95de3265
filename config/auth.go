package config

import (
	"fmt"
	"strings"
	"time"
)

// TokenStoreMode selects where session tokens are persisted.
type TokenStoreMode string

const (
	// TokenStoreDurable keeps the primary copy in Redis and the fallback copy in Postgres.
	TokenStoreDurable TokenStoreMode = "durable"
	// TokenStoreMemory keeps both copies in process memory (development only).
	TokenStoreMemory TokenStoreMode = "memory"
)

// UnmarshalText implements encoding.TextUnmarshaler for TokenStoreMode.
func (m *TokenStoreMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "durable", "memory":
		*m = TokenStoreMode(v)
		return nil
	default:
		return fmt.Errorf("invalid TokenStoreMode: %q (valid options: durable, memory)", v)
	}
}

// AuthConfig groups session, cookie, and token persistence configuration.
type AuthConfig struct {
	// Store determines which token stores back the session persistence layer.
	Store TokenStoreMode `env:"SESSION_STORE" envDefault:"durable"`

	// ClientCookieName names the signed cookie carrying the browser's client id.
	ClientCookieName string `env:"SESSION_CLIENT_COOKIE" envDefault:"hm_client"`

	// CookieHashKey authenticates the client cookie. When empty a random key is
	// generated at startup, which invalidates existing cookies on restart.
	CookieHashKey string `env:"SESSION_COOKIE_HASH_KEY"`

	// CookieBlockKey encrypts the client cookie. Optional.
	CookieBlockKey string `env:"SESSION_COOKIE_BLOCK_KEY"`

	// TokenTTL is the expiry of the primary token copy.
	TokenTTL time.Duration `env:"SESSION_TOKEN_TTL" envDefault:"168h"`

	// PendingTTL bounds how long a username waits for OTP verification.
	PendingTTL time.Duration `env:"SESSION_PENDING_TTL" envDefault:"10m"`

	// IdleTTL evicts in-memory session managers that have not been used.
	IdleTTL time.Duration `env:"SESSION_IDLE_TTL" envDefault:"12h"`

	// SweepInterval controls how often idle managers are evicted.
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"5m"`

	// KeyPrefix namespaces Redis keys.
	KeyPrefix string `env:"SESSION_KEY_PREFIX" envDefault:"hmadmin:"`
}

// Sanitize applies guardrails to session configuration values.
func (a *AuthConfig) Sanitize() {
	if a.Store == "" {
		a.Store = TokenStoreDurable
	}
	if a.ClientCookieName = strings.TrimSpace(a.ClientCookieName); a.ClientCookieName == "" {
		a.ClientCookieName = "hm_client"
	}
	if a.TokenTTL <= 0 {
		a.TokenTTL = 7 * 24 * time.Hour
	}
	if a.PendingTTL <= 0 {
		a.PendingTTL = 10 * time.Minute
	}
	if a.IdleTTL <= 0 {
		a.IdleTTL = 12 * time.Hour
	}
	if a.SweepInterval <= 0 {
		a.SweepInterval = 5 * time.Minute
	}
}
