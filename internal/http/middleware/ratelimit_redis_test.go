package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func initRedisFromEnv(t *testing.T) {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping integration test")
	}
	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			db = n
		}
	}
	InitRedisRateLimiter(addr, os.Getenv("REDIS_PASSWORD"), db)
	if redisClient == nil {
		t.Fatalf("redis at %s not reachable", addr)
	}
	t.Cleanup(CloseRedisRateLimiter)
}

// Integration-style test: runs only if REDIS_ADDR env is set.
func TestRedisRateLimitIntegration(t *testing.T) {
	initRedisFromEnv(t)

	// small window for test
	w := 2 * time.Second
	limit := 2

	r := gin.New()
	r.GET("/test", RedisRateLimit(limit, w), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	for i := 0; i < limit; i++ {
		res, err := http.Get(srv.URL + "/test")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		res.Body.Close()
		if res.StatusCode != 200 {
			t.Fatalf("expected 200 got %d", res.StatusCode)
		}
	}

	// next request should be blocked
	res, err := http.Get(srv.URL + "/test")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != 429 {
		t.Fatalf("expected 429 got %d", res.StatusCode)
	}
}

func TestSpinRateLimitIntegration(t *testing.T) {
	initRedisFromEnv(t)

	r := gin.New()
	r.POST("/wheels/:id/spin", SpinRateLimit(1, 2*time.Second), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// unique wheel ids so reruns inside one window do not collide
	a, b := uuid.NewString(), uuid.NewString()
	do := func(id string) int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/wheels/"+id+"/spin", nil))
		return w.Code
	}

	if code := do(a); code != http.StatusOK {
		t.Fatalf("first spin: %d", code)
	}
	if code := do(a); code != http.StatusTooManyRequests {
		t.Fatalf("second spin on same wheel: %d; want 429", code)
	}
	if code := do(b); code != http.StatusOK {
		t.Fatalf("other wheel should have its own budget, got %d", code)
	}
}

func TestRedisRateLimitFailsOpen(t *testing.T) {
	saved := redisClient
	redisClient = nil
	defer func() { redisClient = saved }()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/wheels/:id/spin", RedisRateLimit(1, time.Minute), SpinRateLimit(1, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/wheels/premios/spin", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: got %d without redis", i, w.Code)
		}
	}
}
