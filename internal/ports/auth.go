package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"errors"
	"time"

	domainauth "github.com/haulmatch/admin-console/internal/domain/auth"
	"github.com/haulmatch/admin-console/internal/domain/model"
)

// ErrTokenNotFound is returned by TokenStore.Load when no value is stored under the key.
var ErrTokenNotFound = errors.New("token not found")

// TokenStore is a keyed string store used for bearer tokens and pending login state.
type TokenStore interface {
	// Load returns the stored value or ErrTokenNotFound.
	Load(ctx context.Context, key string) (string, error)
	// Save stores value under key. A zero ttl means the value never expires.
	Save(ctx context.Context, key, value string, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// IdentityValidator resolves a bearer token to the admin it belongs to.
// Any error means the token is not usable.
type IdentityValidator interface {
	Profile(ctx context.Context, token string) (domainauth.Admin, error)
}

// AdminAuthenticator performs the two-step password + OTP login against the backend.
type AdminAuthenticator interface {
	Login(ctx context.Context, username, password string) (model.LoginChallenge, error)
	VerifyOTP(ctx context.Context, username, otp string) (model.VerifiedLogin, error)
}
