package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisclient "github.com/muhammadheryan/storefront/cmd/redis"
	redisrepo "github.com/muhammadheryan/storefront/repository/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	c := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	redisclient.Set(c)
	t.Cleanup(func() {
		redisclient.Set(nil)
		_ = c.Close()
	})
	return mr
}

func TestRepository_Session(t *testing.T) {
	mr := setup(t)
	repo := redisrepo.NewRepository()
	ctx := context.Background()

	require.NoError(t, repo.SetSession(ctx, "abc", 42, time.Hour))
	assert.True(t, mr.Exists("session:abc"))

	id, err := repo.GetSession(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)

	require.NoError(t, repo.DeleteSession(ctx, "abc"))
	_, err = repo.GetSession(ctx, "abc")
	assert.True(t, redisrepo.IsMiss(err))
}

func TestRepository_IncrSetsTTLOnce(t *testing.T) {
	mr := setup(t)
	repo := redisrepo.NewRepository()
	ctx := context.Background()

	n, err := repo.Incr(ctx, "login_attempts:bob", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, time.Minute, mr.TTL("login_attempts:bob"))

	mr.FastForward(30 * time.Second)
	n, err = repo.Incr(ctx, "login_attempts:bob", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, 30*time.Second, mr.TTL("login_attempts:bob"))

	ttl, err := repo.TTL(ctx, "login_attempts:bob")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, ttl)

	ttl, err = repo.TTL(ctx, "missing")
	require.NoError(t, err)
	assert.Zero(t, ttl)
}

func TestRepository_NoClient(t *testing.T) {
	redisclient.Set(nil)
	repo := redisrepo.NewRepository()

	_, err := repo.Get(context.Background(), "wishlist:1")
	assert.True(t, redisrepo.IsMiss(err))
	assert.NoError(t, repo.SetWithTTL(context.Background(), "k", "v", time.Second))
}
