package localstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T, namespace string) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, namespace), mr
}

func TestRedisStore_RoundTrip(t *testing.T) {
	store, mr := setupTestRedis(t, "")
	ctx := context.Background()

	_, err := store.Get(ctx, "user")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "user", []byte(`{"username":"jane"}`)))
	stored, err := mr.Get("luxefurnish:user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"jane"}`, stored)
	assert.Zero(t, mr.TTL("luxefurnish:user"), "records are durable")

	got, err := store.Get(ctx, "user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"jane"}`, string(got))
}

func TestRedisStore_Namespace(t *testing.T) {
	store, mr := setupTestRedis(t, "device-1")

	require.NoError(t, store.Set(context.Background(), "cart", []byte(`{}`)))
	assert.True(t, mr.Exists("luxefurnish:device-1:cart"))
}

func TestRedisStore_Delete(t *testing.T) {
	store, mr := setupTestRedis(t, "")
	ctx := context.Background()

	mr.Set("luxefurnish:user", `{}`)
	require.NoError(t, store.Delete(ctx, "user"))
	assert.False(t, mr.Exists("luxefurnish:user"))
	assert.NoError(t, store.Delete(ctx, "user"))
}

func TestRedisStore_ServerDown(t *testing.T) {
	store, mr := setupTestRedis(t, "")
	mr.Close()

	_, err := store.Get(context.Background(), "user")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.ErrorContains(t, err, "redis get failed")
}
