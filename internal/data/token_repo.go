package data

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/haulmatch/admin-console/internal/data/pgxutil"
	apperrors "github.com/haulmatch/admin-console/internal/errors"
	"github.com/haulmatch/admin-console/internal/ports"
)

// TokenRepo is the durable Postgres implementation of ports.TokenStore.
// It is the fallback copy of a client's bearer token, so values normally carry no expiry.
type TokenRepo struct {
	pool pgxutil.PgxPool
	now  func() time.Time
}

// TokenRepoOptions groups dependencies for NewTokenRepo.
type TokenRepoOptions struct {
	Pool pgxutil.PgxPool
	Now  func() time.Time
}

// NewTokenRepo constructs a TokenRepo.
func NewTokenRepo(opts TokenRepoOptions) *TokenRepo {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &TokenRepo{pool: opts.Pool, now: now}
}

var _ ports.TokenStore = (*TokenRepo)(nil)

const (
	selectTokenSQL = `SELECT value, expires_at FROM admin_session_tokens WHERE key = $1`
	upsertTokenSQL = `INSERT INTO admin_session_tokens (key, value, expires_at, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at, updated_at = EXCLUDED.updated_at`
	deleteTokenSQL = `DELETE FROM admin_session_tokens WHERE key = $1`
)

// Load returns the stored value, treating expired rows as absent.
func (r *TokenRepo) Load(ctx context.Context, key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", ErrTokenKeyRequired
	}
	var (
		value     string
		expiresAt *time.Time
	)
	err := r.pool.QueryRow(ctx, selectTokenSQL, key).Scan(&value, &expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ports.ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load token: %w", apperrors.MapDBError(err))
	}
	if expiresAt != nil && !r.now().Before(*expiresAt) {
		if delErr := r.Delete(ctx, key); delErr != nil {
			return "", fmt.Errorf("cleanup expired token: %w", delErr)
		}
		return "", ports.ErrTokenNotFound
	}
	return value, nil
}

// Save upserts value; a zero ttl stores it without expiry.
func (r *TokenRepo) Save(ctx context.Context, key, value string, ttl time.Duration) error {
	if strings.TrimSpace(key) == "" {
		return ErrTokenKeyRequired
	}
	now := r.now().UTC()
	var expiresAt *time.Time
	if ttl > 0 {
		t := now.Add(ttl)
		expiresAt = &t
	}
	if _, err := r.pool.Exec(ctx, upsertTokenSQL, key, value, expiresAt, now); err != nil {
		return fmt.Errorf("save token: %w", apperrors.MapDBError(err))
	}
	return nil
}

// Delete removes key; a missing row is not an error.
func (r *TokenRepo) Delete(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return nil
	}
	if _, err := r.pool.Exec(ctx, deleteTokenSQL, key); err != nil {
		return fmt.Errorf("delete token: %w", apperrors.MapDBError(err))
	}
	return nil
}
