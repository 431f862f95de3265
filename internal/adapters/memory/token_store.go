// Package memory provides in-process adapters used in development mode and tests.
package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/haulmatch/admin-console/internal/ports"
)

type entry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

// TokenStore is a concurrency-safe in-memory ports.TokenStore with TTL support.
type TokenStore struct {
	mu   sync.Mutex
	data map[string]entry
	now  func() time.Time
}

var _ ports.TokenStore = (*TokenStore)(nil)

// NewTokenStore creates an empty store.
func NewTokenStore() *TokenStore {
	return &TokenStore{data: make(map[string]entry), now: time.Now}
}

// NewTokenStoreWithClock creates an empty store using now for expiry checks.
func NewTokenStoreWithClock(now func() time.Time) *TokenStore {
	s := NewTokenStore()
	if now != nil {
		s.now = now
	}
	return s
}

func (s *TokenStore) Load(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.data[key]
	if !ok {
		return "", ports.ErrTokenNotFound
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		delete(s.data, key)
		return "", ports.ErrTokenNotFound
	}
	return e.value, nil
}

func (s *TokenStore) Save(_ context.Context, key, value string, ttl time.Duration) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("token key cannot be empty")
	}
	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.mu.Lock()
	s.data[key] = e
	s.mu.Unlock()
	return nil
}

func (s *TokenStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored keys, including not-yet-reaped expired ones.
func (s *TokenStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}
