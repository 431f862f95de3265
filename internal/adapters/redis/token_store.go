package redis

// Package redis provides Redis-based adapters for the admin console.

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/haulmatch/admin-console/internal/ports"
)

// TokenStore is a Redis-backed ports.TokenStore.
// Expiry is delegated to Redis key TTLs.
type TokenStore struct {
	client redis.UniversalClient
	prefix string
}

var _ ports.TokenStore = (*TokenStore)(nil)

// NewTokenStore creates a token store whose keys are namespaced by prefix
// (e.g. "hmadmin:token:" or "hmadmin:pending:").
func NewTokenStore(client redis.UniversalClient, prefix string) *TokenStore {
	return &TokenStore{client: client, prefix: prefix}
}

func (s *TokenStore) key(k string) string { return s.prefix + k }

func (s *TokenStore) Load(ctx context.Context, key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", ports.ErrTokenNotFound
	}
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ports.ErrTokenNotFound
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	return val, nil
}

func (s *TokenStore) Save(ctx context.Context, key, value string, ttl time.Duration) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("token key cannot be empty")
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, s.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *TokenStore) Delete(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return nil // Nothing to delete
	}
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
