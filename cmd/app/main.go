package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rewards_wheel/internal/config"
	"rewards_wheel/internal/db"
	httpServer "rewards_wheel/internal/http"
	"rewards_wheel/internal/http/handlers"
	"rewards_wheel/internal/http/middleware"
	"rewards_wheel/internal/game"
	"rewards_wheel/internal/logger"
	"rewards_wheel/internal/repository"
	"rewards_wheel/internal/service"
	"rewards_wheel/internal/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		store  service.CatalogStore
		pinger handlers.Pinger
	)
	if pool := db.Connect(cfg.DatabaseURL); pool != nil {
		defer pool.Close()
		repo := repository.NewCatalogRepository(pool)
		store = repo
		pinger = repo
	}

	factory := game.NewFactory(game.Settings{
		SpinDuration:    cfg.SpinDuration,
		ExtraTurns:      cfg.ExtraTurns,
		TickIntervalDeg: cfg.TickIntervalDeg,
	})
	wheels := service.NewWheelService(store, factory)

	hub := ws.NewHub(wheels, ws.HubConfig{
		FrameInterval:  cfg.FrameInterval,
		SpinsPerSecond: cfg.WSSpinsPerSecond,
		IdleTimeout:    cfg.IdleTimeout,
	})
	hub.StartCleanup(ctx)

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer middleware.CloseRedisRateLimiter()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	httpServer.RegisterRoutes(ctx, r, httpServer.Deps{
		Wheels:  wheels,
		Hub:     hub,
		DB:      pinger,
		Config:  cfg,
		Version: cfg.Version,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "version", cfg.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// hijacked websocket connections are not closed by Shutdown
	hub.Shutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited")
}
