package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"rewards_wheel/internal/game"
	"rewards_wheel/internal/logger"
	"rewards_wheel/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	apply := flag.Bool("apply", false, "apply migrations")
	seed := flag.Bool("seed", false, "upsert the built-in wheel catalogs")
	dir := flag.String("dir", filepath.Join("internal", "migrations"), "migrations directory")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Fatal("connect", "error", err)
	}
	defer db.Close()

	files, err := os.ReadDir(*dir)
	if err != nil {
		logger.Fatal("read migrations dir", "error", err)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })

	for _, f := range files {
		name := f.Name()
		if f.IsDir() || filepath.Ext(name) != ".sql" {
			continue
		}
		if !*apply {
			fmt.Println(name)
			continue
		}
		b, err := os.ReadFile(filepath.Join(*dir, name))
		if err != nil {
			logger.Fatal("read migration", "file", name, "error", err)
		}
		if _, err := db.Exec(ctx, string(b)); err != nil {
			logger.Fatal("apply migration", "file", name, "error", err)
		}
		fmt.Printf("applied %s\n", name)
	}

	if !*seed {
		return
	}

	repo := repository.NewCatalogRepository(db)
	for _, c := range game.DefaultCatalogs() {
		if _, err := c.Table(); err != nil {
			logger.Fatal("invalid built-in catalog", "wheel", c.ID, "error", err)
		}
		if err := repo.Upsert(ctx, &c); err != nil {
			logger.Fatal("seed catalog", "wheel", c.ID, "error", err)
		}
		fmt.Printf("seeded %s (%d prizes)\n", c.ID, len(c.Prizes))
	}
}
