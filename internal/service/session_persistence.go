package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/haulmatch/admin-console/internal/ports"
)

// DefaultTokenTTL is the primary store's expiry for a saved bearer token.
const DefaultTokenTTL = 7 * 24 * time.Hour

// PersistenceOptions groups dependencies for Persistence.
type PersistenceOptions struct {
	Primary  ports.TokenStore // Required: expiring store, read first
	Fallback ports.TokenStore // Required: durable store without expiry
	TTL      time.Duration    // Optional: primary expiry, DefaultTokenTTL when zero
}

// Persistence keeps one bearer token per client in two stores.
//
// Reads try the primary store and then the fallback, re-populating the primary
// when only the fallback has the value. Writes land in both stores or in neither.
type Persistence struct {
	primary  ports.TokenStore
	fallback ports.TokenStore
	ttl      time.Duration
	logger   *slog.Logger
}

// NewPersistence constructs a Persistence.
func NewPersistence(opts PersistenceOptions) *Persistence {
	if opts.Primary == nil || opts.Fallback == nil {
		panic("primary and fallback token stores are required")
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Persistence{
		primary:  opts.Primary,
		fallback: opts.Fallback,
		ttl:      ttl,
		logger:   slog.Default().With("component", "token_persistence"),
	}
}

// TTL returns the primary store expiry.
func (p *Persistence) TTL() time.Duration { return p.ttl }

// Load returns the stored token for key, or ports.ErrTokenNotFound.
// A failing primary is logged and skipped so the fallback can still answer.
func (p *Persistence) Load(ctx context.Context, key string) (string, error) {
	tok, err := p.primary.Load(ctx, key)
	switch {
	case err == nil && tok != "":
		return tok, nil
	case err != nil && !errors.Is(err, ports.ErrTokenNotFound):
		p.logger.WarnContext(ctx, "primary token store read failed", "error", err)
	}

	tok, err = p.fallback.Load(ctx, key)
	if err != nil {
		if errors.Is(err, ports.ErrTokenNotFound) {
			return "", ports.ErrTokenNotFound
		}
		return "", fmt.Errorf("load token from fallback: %w", err)
	}
	if strings.TrimSpace(tok) == "" {
		return "", ports.ErrTokenNotFound
	}

	if healErr := p.primary.Save(ctx, key, tok, p.ttl); healErr != nil {
		p.logger.WarnContext(ctx, "re-populate primary token store", "error", healErr)
	}
	return tok, nil
}

// Save writes token to both stores. If the fallback write fails, the primary
// write is undone so the two stores never disagree about a fresh login.
func (p *Persistence) Save(ctx context.Context, key, token string) error {
	if err := p.primary.Save(ctx, key, token, p.ttl); err != nil {
		return fmt.Errorf("save token to primary: %w", err)
	}
	if err := p.fallback.Save(ctx, key, token, 0); err != nil {
		saveErr := fmt.Errorf("save token to fallback: %w", err)
		if rbErr := p.primary.Delete(ctx, key); rbErr != nil {
			return errors.Join(saveErr, fmt.Errorf("roll back primary token: %w", rbErr))
		}
		return saveErr
	}
	return nil
}

// Clear removes the token from both stores. Both deletes are attempted.
func (p *Persistence) Clear(ctx context.Context, key string) error {
	var errs []error
	if err := p.primary.Delete(ctx, key); err != nil {
		errs = append(errs, fmt.Errorf("clear primary token: %w", err))
	}
	if err := p.fallback.Delete(ctx, key); err != nil {
		errs = append(errs, fmt.Errorf("clear fallback token: %w", err))
	}
	return errors.Join(errs...)
}
