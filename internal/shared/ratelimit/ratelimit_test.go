package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"orderbot-backend/pkg/cache"
)

func TestAllowWithinLimit(t *testing.T) {
	l := NewLimiter(cache.NewMemoryCache(), 3, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow(ctx, 4242), "message %d should pass", i+1)
	}
	assert.False(t, l.Allow(ctx, 4242))
}

func TestLimitIsPerChat(t *testing.T) {
	l := NewLimiter(cache.NewMemoryCache(), 1, time.Hour)
	ctx := context.Background()

	assert.True(t, l.Allow(ctx, 1))
	assert.False(t, l.Allow(ctx, 1))
	assert.True(t, l.Allow(ctx, 2))
}

func TestZeroLimitDisablesThrottling(t *testing.T) {
	l := NewLimiter(cache.NewMemoryCache(), 0, time.Hour)
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		assert.True(t, l.Allow(ctx, 4242))
	}
}
