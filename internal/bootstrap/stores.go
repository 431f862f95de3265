package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/haulmatch/admin-console/config"
	"github.com/haulmatch/admin-console/internal/adapters/memory"
	redisadapter "github.com/haulmatch/admin-console/internal/adapters/redis"
	"github.com/haulmatch/admin-console/internal/data"
	"github.com/haulmatch/admin-console/internal/data/pgxutil"
	"github.com/haulmatch/admin-console/internal/ports"
)

// Redis key namespaces below AuthConfig.KeyPrefix.
const (
	tokenKeySpace   = "token:"
	pendingKeySpace = "pending:"
)

// TokenStores are the keyed stores behind every client session.
type TokenStores struct {
	// Primary holds the token with an expiry.
	Primary ports.TokenStore
	// Fallback holds the token without expiry.
	Fallback ports.TokenStore
	// Pending holds the username awaiting OTP verification.
	Pending ports.TokenStore
}

// TokenStoreDeps groups the infrastructure a durable store set needs.
type TokenStoreDeps struct {
	Auth   config.AuthConfig
	Redis  redis.UniversalClient
	Pool   pgxutil.PgxPool
	Logger *slog.Logger
}

// BuildTokenStores selects the store set for deps.Auth.Store. Durable mode puts
// the primary and pending stores in Redis and the fallback store in Postgres.
func BuildTokenStores(deps TokenStoreDeps) (TokenStores, error) {
	switch deps.Auth.Store {
	case config.TokenStoreMemory:
		if deps.Logger != nil {
			deps.Logger.Warn("session tokens are kept in memory and are lost on restart")
		}
		return TokenStores{
			Primary:  memory.NewTokenStore(),
			Fallback: memory.NewTokenStore(),
			Pending:  memory.NewTokenStore(),
		}, nil

	case config.TokenStoreDurable, "":
		if deps.Redis == nil || deps.Pool == nil {
			return TokenStores{}, errors.New("durable token stores need both redis and postgres")
		}
		return TokenStores{
			Primary:  redisadapter.NewTokenStore(deps.Redis, deps.Auth.KeyPrefix+tokenKeySpace),
			Fallback: data.NewTokenRepo(data.TokenRepoOptions{Pool: deps.Pool}),
			Pending:  redisadapter.NewTokenStore(deps.Redis, deps.Auth.KeyPrefix+pendingKeySpace),
		}, nil

	default:
		return TokenStores{}, fmt.Errorf("unknown token store mode %q", deps.Auth.Store)
	}
}
