package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/relaycrm/crm-api/internal/api/metrics"
)

// WindowStore counts hits per client within a fixed window.
type WindowStore interface {
	Incr(ctx context.Context, clientKey string, windowStart time.Time, window time.Duration) (int64, error)
}

// RateLimitConfig configures the per-IP fixed-window limiter.
type RateLimitConfig struct {
	Max    int
	Window time.Duration
	Store  WindowStore
	Logger zerolog.Logger
	Now    func() time.Time
}

// RateLimit rejects clients that exceed Max requests in the current window.
// Store errors let the request through.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Store == nil {
		cfg.Store = NewMemoryWindowStore()
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Max <= 0 || cfg.Window <= 0 {
				return next(c)
			}

			now := cfg.Now()
			start := now.Truncate(cfg.Window)
			reset := start.Add(cfg.Window)

			count, err := cfg.Store.Incr(c.Request().Context(), c.RealIP(), start, cfg.Window)
			if err != nil {
				cfg.Logger.Warn().Err(err).Str("ip", c.RealIP()).Msg("rate limit store unavailable")
				return next(c)
			}

			remaining := int64(cfg.Max) - count
			if remaining < 0 {
				remaining = 0
			}
			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Max))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

			if count > int64(cfg.Max) {
				metrics.RateLimitedTotal.Inc()
				h.Set("Retry-After", strconv.Itoa(int(reset.Sub(now).Seconds())+1))
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests, please try again later")
			}
			return next(c)
		}
	}
}

// MemoryWindowStore is a process-local WindowStore used when Redis is not
// configured.
type MemoryWindowStore struct {
	mu      sync.Mutex
	windows map[string]memoryWindow
}

type memoryWindow struct {
	start time.Time
	count int64
	until time.Time
}

func NewMemoryWindowStore() *MemoryWindowStore {
	return &MemoryWindowStore{windows: make(map[string]memoryWindow)}
}

func (m *MemoryWindowStore) Incr(_ context.Context, clientKey string, windowStart time.Time, window time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k, w := range m.windows {
		if !windowStart.Before(w.until) {
			delete(m.windows, k)
		}
	}

	w := m.windows[clientKey]
	if !w.start.Equal(windowStart) {
		w = memoryWindow{start: windowStart, until: windowStart.Add(window)}
	}
	w.count++
	m.windows[clientKey] = w
	return w.count, nil
}
