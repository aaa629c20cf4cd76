package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "key", map[string]string{"a": "b"}, 0))

	var got map[string]string
	found, err := c.Get(ctx, "key", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "b", got["a"])

	found, err = c.Get(ctx, "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCacheIncrement(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	for want := int64(1); want <= 3; want++ {
		n, err := c.Increment(ctx, "counter")
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}
}

func TestMemoryCacheExpireResetsCounter(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	n, err := c.Increment(ctx, "counter")
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	require.NoError(t, c.Expire(ctx, "counter", 10*time.Millisecond))
	time.Sleep(25 * time.Millisecond)

	// The window elapsed, so the count restarts.
	n, err = c.Increment(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMemoryCacheDeleteAppliesToCounters(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	_, err := c.Increment(ctx, "ratelimit:chat:1:0")
	require.NoError(t, err)
	_, err = c.Increment(ctx, "ratelimit:chat:1:0")
	require.NoError(t, err)

	require.NoError(t, c.DeletePattern(ctx, "ratelimit:*"))

	n, err := c.Increment(ctx, "ratelimit:chat:1:0")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
