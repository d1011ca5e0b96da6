package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := NewClient("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client
}

func TestSetAndGet(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	err := client.Set(ctx, "businesses:search:denver", `{"total":3}`, time.Minute)
	require.NoError(t, err)

	value, err := client.Get(ctx, "businesses:search:denver")
	require.NoError(t, err)
	assert.Equal(t, `{"total":3}`, value)
}

func TestGet_MissingKey(t *testing.T) {
	client := newTestClient(t)

	_, err := client.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, redis.Nil)
}

func TestExists(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	exists, err := client.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, client.Set(ctx, "k", "v", time.Minute))

	exists, err = client.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDelete(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "k1", "v", time.Minute))
	require.NoError(t, client.Set(ctx, "k2", "v", time.Minute))

	require.NoError(t, client.Delete(ctx, "k1", "k2"))

	exists, _ := client.Exists(ctx, "k1")
	assert.False(t, exists)
}

func TestDeletePattern(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "businesses:search:a", "v", time.Minute))
	require.NoError(t, client.Set(ctx, "businesses:search:b", "v", time.Minute))
	require.NoError(t, client.Set(ctx, "leads:recent", "v", time.Minute))

	require.NoError(t, client.DeletePattern(ctx, "businesses:*"))

	exists, _ := client.Exists(ctx, "businesses:search:a")
	assert.False(t, exists, "matching keys are gone")
	exists, _ = client.Exists(ctx, "leads:recent")
	assert.True(t, exists, "non-matching keys survive")
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient("not-a-url")

	assert.Error(t, err)
}
