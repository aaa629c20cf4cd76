package ratelimit

import (
	"context"
	"fmt"
	"time"

	"orderbot-backend/pkg/cache"
	"orderbot-backend/pkg/logger"
)

// Limiter is a fixed-window counter per chat, backed by redis. It keeps
// a single flooding chat from monopolizing the bot.
type Limiter struct {
	cache  cache.Cache
	limit  int
	window time.Duration
}

func NewLimiter(c cache.Cache, limit int, window time.Duration) *Limiter {
	return &Limiter{cache: c, limit: limit, window: window}
}

// Allow reports whether the chat may send another message in the current
// window. Redis failures fail open: a broken limiter must not take the
// bot down.
func (l *Limiter) Allow(ctx context.Context, chatID int64) bool {
	if l.limit <= 0 {
		return true
	}

	bucket := time.Now().Unix() / int64(l.window.Seconds())
	key := fmt.Sprintf("ratelimit:chat:%d:%d", chatID, bucket)

	count, err := l.cache.Increment(ctx, key)
	if err != nil {
		logger.Error("rate limiter increment failed", err)
		return true
	}

	if count == 1 {
		if err := l.cache.Expire(ctx, key, l.window); err != nil {
			logger.Error("rate limiter expire failed", err)
		}
	}

	return count <= int64(l.limit)
}
