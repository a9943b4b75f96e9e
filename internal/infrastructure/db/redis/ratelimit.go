package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "ratelimit"

// WindowCounter counts requests per client in fixed windows.
// Key format: ratelimit:<client>:<window_start_unix>
type WindowCounter struct {
	client *redis.Client
}

// NewWindowCounter creates a WindowCounter wrapping the given Redis client.
func NewWindowCounter(client *redis.Client) *WindowCounter {
	return &WindowCounter{client: client}
}

// Incr adds one hit to the window starting at windowStart and returns the
// running count. The key expires once the window has passed.
func (w *WindowCounter) Incr(ctx context.Context, clientKey string, windowStart time.Time, window time.Duration) (int64, error) {
	key := windowKey(clientKey, windowStart)

	var incr *redis.IntCmd
	_, err := w.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireAt(ctx, key, windowStart.Add(window))
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("rate limit incr: %w", err)
	}
	return incr.Val(), nil
}

func windowKey(clientKey string, windowStart time.Time) string {
	return fmt.Sprintf("%s:%s:%d", rateLimitPrefix, clientKey, windowStart.Unix())
}
