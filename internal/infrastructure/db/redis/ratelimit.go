package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultLimit  = 100
	defaultWindow = time.Minute
)

// Limiter is a fixed-window request counter backed by Redis.
// Key format: ratelimit:<client_ip>:<window_number>
type Limiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewLimiter creates a Limiter allowing `limit` requests per client per
// window. Non-positive arguments fall back to defaults.
func NewLimiter(client *redis.Client, limit int, window time.Duration) *Limiter {
	if limit <= 0 {
		limit = defaultLimit
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &Limiter{client: client, limit: int64(limit), window: window}
}

// Allow increments the caller's counter for the current window and reports
// whether the request falls within the limit. The first increment of a
// window sets the key's expiry so counters clean themselves up.
func (l *Limiter) Allow(ctx context.Context, clientIP string) (bool, error) {
	key := l.key(clientIP, time.Now())

	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("ratelimit incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, fmt.Errorf("ratelimit expire: %w", err)
		}
	}
	return n <= l.limit, nil
}

func (l *Limiter) key(clientIP string, now time.Time) string {
	return fmt.Sprintf("ratelimit:%s:%d", clientIP, now.Unix()/int64(l.window.Seconds()))
}
