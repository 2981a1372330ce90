package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Counter increments a per-client request count inside a fixed window and
// returns the new count plus the time until the window resets.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// RateLimit rejects clients that exceed limit requests per window with a
// uniform 429 and a Retry-After hint. Counter errors fail open so the
// limiter never takes the API down with it.
func RateLimit(counter Counter, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ratelimit:" + clientID(c)

		count, ttl, err := counter.Incr(c.Request.Context(), key, window)
		if err != nil {
			c.Next()
			return
		}

		if count > int64(limit) {
			retryAfter := int(ttl.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "Too many requests, please try again later",
			})
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		remaining := limit - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		c.Next()
	}
}

func clientID(c *gin.Context) string {
	// Prefer proxy headers so every client behind the load balancer is
	// counted separately.
	ip := c.GetHeader("X-Forwarded-For")
	if ip == "" {
		ip = c.ClientIP()
	}
	return strings.TrimSpace(strings.Split(ip, ",")[0])
}

type redisCounter struct {
	rdb *redis.Client
}

// NewRedisCounter backs the rate limiter with Redis so limits hold across
// instances.
func NewRedisCounter(rdb *redis.Client) Counter {
	return &redisCounter{rdb: rdb}
}

func (r *redisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	count, err := r.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}
	if count == 1 {
		r.rdb.Expire(ctx, key, window)
	}
	ttl, err := r.rdb.TTL(ctx, key).Result()
	if err != nil {
		ttl = window
	}
	return count, ttl, nil
}

type memoryCounter struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
}

type memoryEntry struct {
	count   int64
	resetAt time.Time
}

// NewMemoryCounter keeps counters in process memory, used when Redis is
// not configured.
func NewMemoryCounter() Counter {
	return &memoryCounter{entries: make(map[string]*memoryEntry)}
}

func (m *memoryCounter) Incr(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	entry, ok := m.entries[key]
	if !ok || now.After(entry.resetAt) {
		entry = &memoryEntry{resetAt: now.Add(window)}
		m.entries[key] = entry
	}
	entry.count++
	return entry.count, entry.resetAt.Sub(now), nil
}
