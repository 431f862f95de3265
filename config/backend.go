package config

import (
	"strings"
	"time"
)

// BackendConfig configures the marketplace REST API client.
type BackendConfig struct {
	// URL is the API base URL; endpoint paths such as /admin/login are appended to it.
	URL string `env:"URL" envDefault:"http://localhost:5000/api"`

	// RequestTimeout bounds every API call.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`

	// ValidateTimeout bounds token validation against /admin/profile.
	ValidateTimeout time.Duration `env:"VALIDATE_TIMEOUT" envDefault:"10s"`
}

// Sanitize applies guardrails to backend configuration values.
func (b *BackendConfig) Sanitize() {
	b.URL = strings.TrimRight(strings.TrimSpace(b.URL), "/")
	if b.RequestTimeout <= 0 {
		b.RequestTimeout = 15 * time.Second
	}
	if b.ValidateTimeout <= 0 {
		b.ValidateTimeout = 10 * time.Second
	}
	if b.ValidateTimeout > b.RequestTimeout {
		b.ValidateTimeout = b.RequestTimeout
	}
}
