package http

import (
	"context"
	"time"

	"rewards_wheel/internal/config"
	"rewards_wheel/internal/http/handlers"
	"rewards_wheel/internal/http/middleware"
	"rewards_wheel/internal/service"
	"rewards_wheel/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the services the routes are served from
type Deps struct {
	Wheels  *service.WheelService
	Hub     *ws.Hub
	DB      handlers.Pinger // nil without a database
	Config  *config.Config
	Version string
}

// RegisterRoutes mounts every endpoint on r. Background housekeeping stops with ctx.
func RegisterRoutes(ctx context.Context, r *gin.Engine, d Deps) {
	cfg := d.Config
	if cfg == nil {
		cfg = config.Default()
	}

	h := handlers.NewHandler(d.Wheels, d.Hub)

	var checks []handlers.Check
	if d.DB != nil {
		checks = append(checks, handlers.Check{Name: "database", Pinger: d.DB})
	}
	if middleware.RedisEnabled() {
		checks = append(checks, handlers.Check{Name: "redis", Pinger: handlers.PingFunc(middleware.PingRedis), Optional: true})
	}
	healthHandler := handlers.NewHealthHandler(d.Version, checks...)

	r.Use(middleware.RequestID())
	r.Use(middleware.CORS(cfg.AllowedOrigin))

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))
	{
		v1.GET("/wheels", h.ListWheels)
		v1.GET("/wheels/:id", h.WheelInfo)
		v1.POST("/wheels/:id/spin", middleware.SpinRateLimit(cfg.SpinRateLimit, cfg.SpinRateWindow), h.Spin)
		v1.GET("/cues", h.Cues)
		v1.GET("/sessions", h.Sessions)
	}

	// live sessions; upgrades are throttled in process so they work without redis
	upgrades := middleware.NewKeyedLimiter(cfg.WSUpgradesPerSecond, cfg.WSUpgradeBurst)
	go pruneLoop(ctx, upgrades)
	r.GET("/ws", middleware.IPRateLimit(upgrades), h.WS(cfg.AllowedOrigin))
}

func pruneLoop(ctx context.Context, l *middleware.KeyedLimiter) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.Prune(now)
		}
	}
}
