// Package filestore persists CLI tokens as small JSON files in a state directory.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/haulmatch/admin-console/internal/ports"
)

type tokenFile struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// TokenStore keeps one JSON file per key under dir/<name>/.
type TokenStore struct {
	dir string
	now func() time.Time
}

var _ ports.TokenStore = (*TokenStore)(nil)

// NewTokenStore stores files under filepath.Join(stateDir, name).
func NewTokenStore(stateDir, name string) *TokenStore {
	return &TokenStore{dir: filepath.Join(stateDir, name), now: time.Now}
}

func (s *TokenStore) path(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid token key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *TokenStore) Load(_ context.Context, key string) (string, error) {
	p, err := s.path(key)
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ports.ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	var tf tokenFile
	if err := json.Unmarshal(b, &tf); err != nil {
		return "", fmt.Errorf("decode token file: %w", err)
	}
	if tf.Value == "" {
		return "", ports.ErrTokenNotFound
	}
	if !tf.ExpiresAt.IsZero() && !s.now().Before(tf.ExpiresAt) {
		if rmErr := os.Remove(p); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			return "", fmt.Errorf("remove expired token file: %w", rmErr)
		}
		return "", ports.ErrTokenNotFound
	}
	return tf.Value, nil
}

// Save writes the file atomically via rename so a crash never leaves a torn token.
func (s *TokenStore) Save(_ context.Context, key, value string, ttl time.Duration) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	tf := tokenFile{Value: value}
	if ttl > 0 {
		tf.ExpiresAt = s.now().Add(ttl).UTC()
	}
	b, err := json.MarshalIndent(tf, "", "  ")
	if err != nil {
		return fmt.Errorf("encode token file: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".token-*")
	if err != nil {
		return fmt.Errorf("create temp token file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write token file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close token file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod token file: %w", err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("install token file: %w", err)
	}
	return nil
}

func (s *TokenStore) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return nil //nolint:nilerr // an unaddressable key has nothing to delete
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}
