package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// SpinRateLimit limits spins per client IP and wheel using Redis. Each wheel
// has its own budget, so browsing several wheels does not starve one.
func SpinRateLimit(maxSpins int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		wheelID := c.Param("id")
		key := "spin_rl:" + wheelID + ":" + c.ClientIP() + ":" + strconv.FormatInt(int64(window.Seconds()), 10)
		fixedWindow(c, key, limiterSpin, wheelID, maxSpins, window, "spin rate limit exceeded")
	}
}
