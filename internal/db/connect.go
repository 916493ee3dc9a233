package db

import (
	"context"
	"time"

	"rewards_wheel/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens the catalog database. An empty dsn returns nil: the service
// then runs on the built-in catalogs.
func Connect(dsn string) *pgxpool.Pool {
	if dsn == "" {
		logger.Info("DATABASE_URL not set, using built-in wheel catalogs")
		return nil
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		logger.Fatal("failed to create database pool", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		logger.Fatal("failed to ping database", "error", err)
	}

	logger.Info("database connected")
	return db
}
