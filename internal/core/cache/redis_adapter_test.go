package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T) (*RedisAdapter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	adapter, err := NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })

	return adapter, mr
}

func TestRedisAdapter_GetSet(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	key := "test_key"
	value := []byte("test_value")

	err := adapter.Set(ctx, key, value, 10*time.Second)
	assert.NoError(t, err)

	retrievedValue, err := adapter.Get(ctx, key)
	assert.NoError(t, err)
	assert.Equal(t, value, retrievedValue)
}

func TestRedisAdapter_GetNotFound(t *testing.T) {
	adapter, _ := newTestAdapter(t)

	_, err := adapter.Get(context.Background(), "non_existent_key")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.Contains(t, err.Error(), "non_existent_key")
}

func TestRedisAdapter_SetNX(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	stored, err := adapter.SetNX(ctx, "index", []byte("first"), 0)
	require.NoError(t, err)
	assert.True(t, stored)

	stored, err = adapter.SetNX(ctx, "index", []byte("second"), 0)
	require.NoError(t, err)
	assert.False(t, stored)

	value, err := adapter.Get(ctx, "index")
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), value)
}

func TestRedisAdapter_SetXX(t *testing.T) {
	adapter, mr := newTestAdapter(t)
	ctx := context.Background()

	stored, err := adapter.SetXX(ctx, "doc", []byte("orphan"), 0)
	require.NoError(t, err)
	assert.False(t, stored)
	assert.False(t, mr.Exists("doc"))

	require.NoError(t, adapter.Set(ctx, "doc", []byte("v1"), 0))

	stored, err = adapter.SetXX(ctx, "doc", []byte("v2"), 0)
	require.NoError(t, err)
	assert.True(t, stored)

	value, err := adapter.Get(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), value)
}

func TestRedisAdapter_Delete(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, adapter.Set(ctx, "b", []byte("2"), 0))

	err := adapter.Delete(ctx, "a", "b")
	assert.NoError(t, err)

	_, err = adapter.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	_, err = adapter.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// No keys is a no-op.
	assert.NoError(t, adapter.Delete(ctx))
}

func TestRedisAdapter_Scan(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	for _, key := range []string{"shipments:1", "shipments:2", "shipments:3", "tracking_numbers:X"} {
		require.NoError(t, adapter.Set(ctx, key, []byte("v"), 0))
	}

	keys, err := adapter.Scan(ctx, "shipments:*")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"shipments:1", "shipments:2", "shipments:3"}, keys)

	keys, err = adapter.Scan(ctx, "nothing:*")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestRedisAdapter_TTL(t *testing.T) {
	adapter, mr := newTestAdapter(t)
	ctx := context.Background()

	key := "ttl_test"
	err := adapter.Set(ctx, key, []byte("expires_soon"), 1*time.Second)
	require.NoError(t, err)

	_, err = adapter.Get(ctx, key)
	assert.NoError(t, err)

	mr.FastForward(2 * time.Second)

	_, err = adapter.Get(ctx, key)
	assert.Error(t, err)
}

func TestRedisAdapter_Ping(t *testing.T) {
	adapter, _ := newTestAdapter(t)

	err := adapter.Ping(context.Background())
	assert.NoError(t, err)
}

func TestRedisAdapter_Unreachable(t *testing.T) {
	adapter, mr := newTestAdapter(t)
	mr.Close()

	err := adapter.Ping(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping failed")
}

func TestRedisAdapter_InvalidURL(t *testing.T) {
	_, err := NewRedisAdapter("invalid://url")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse Redis URL")
}
