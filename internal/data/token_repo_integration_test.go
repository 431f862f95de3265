package data_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haulmatch/admin-console/internal/data"
	"github.com/haulmatch/admin-console/internal/ports"
	"github.com/haulmatch/admin-console/internal/testutil"
)

func TestTokenRepo_Integration(t *testing.T) {
	pool := testutil.SetupTestPool(t)
	clock := testutil.NewClock(time.Now().UTC())
	repo := data.NewTokenRepo(data.TokenRepoOptions{Pool: pool, Now: clock.Now})
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "client-a", "tok-1", 0))
	require.NoError(t, repo.Save(ctx, "client-a", "tok-2", 0))
	got, err := repo.Load(ctx, "client-a")
	require.NoError(t, err)
	assert.Equal(t, "tok-2", got)

	require.NoError(t, repo.Save(ctx, "client-b", "pending", time.Minute))
	clock.Advance(2 * time.Minute)
	_, err = repo.Load(ctx, "client-b")
	assert.ErrorIs(t, err, ports.ErrTokenNotFound)

	require.NoError(t, repo.Delete(ctx, "client-a"))
	require.NoError(t, repo.Delete(ctx, "client-a"))
	_, err = repo.Load(ctx, "client-a")
	assert.ErrorIs(t, err, ports.ErrTokenNotFound)
}
