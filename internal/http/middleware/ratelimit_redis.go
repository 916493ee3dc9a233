package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"rewards_wheel/internal/logger"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

var errRedisDisabled = errors.New("redis rate limiter not configured")

// InitRedisRateLimiter initializes a shared Redis client used by the middleware.
// Provide addr (host:port), password and db index. If connection fails, redisClient remains nil
// and middleware will act as fail-open.
func InitRedisRateLimiter(addr, password string, db int) {
	if addr == "" {
		logger.Info("REDIS_ADDR not set, rate limiting disabled")
		return
	}
	redisClient = redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, rate limiting disabled", "addr", addr, "error", err)
		redisClient = nil
		return
	}
	logger.Info("redis rate limiter ready", "addr", addr)
}

// CloseRedisRateLimiter releases the shared client
func CloseRedisRateLimiter() {
	if redisClient != nil {
		_ = redisClient.Close()
		redisClient = nil
	}
}

// RedisEnabled reports whether the limiter is backed by Redis
func RedisEnabled() bool {
	return redisClient != nil
}

// PingRedis checks the limiter's Redis connection
func PingRedis(ctx context.Context) error {
	if redisClient == nil {
		return errRedisDisabled
	}
	return redisClient.Ping(ctx).Err()
}

// RedisRateLimit implements a simple fixed-window rate limiter using Redis INCR/EXPIRE.
// key format: rl:<window_seconds>:<identifier>
func RedisRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "rl:" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + c.ClientIP()
		fixedWindow(c, key, limiterAPI, c.FullPath(), maxRequests, window, "rate limit exceeded")
	}
}

// fixedWindow counts the request under key and aborts with 429 once the
// window holds more than max. Redis errors fail open.
func fixedWindow(c *gin.Context, key, limiter, endpoint string, max int, window time.Duration, msg string) {
	if redisClient == nil {
		c.Next()
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
	defer cancel()

	val, err := redisClient.Incr(ctx, key).Result()
	if err != nil {
		c.Header("X-RateLimit-Error", "redis-error")
		c.Next()
		return
	}

	if val == 1 {
		// first increment, set expiry
		redisClient.Expire(ctx, key, window)
	}

	c.Header("X-RateLimit-Limit", strconv.Itoa(max))
	c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining(int64(max), val), 10))

	if val > int64(max) {
		RLBlocked.WithLabelValues(limiter, endpoint).Inc()
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":       msg,
			"retry_after": int(window.Seconds()),
		})
		return
	}

	RLRequests.WithLabelValues(limiter, endpoint).Inc()
	c.Next()
}

func remaining(limit, used int64) int64 {
	if used > limit {
		return 0
	}
	return limit - used
}
