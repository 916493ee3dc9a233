package repository

import (
	"context"
	"errors"
	"fmt"

	"rewards_wheel/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CatalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// List returns every stored wheel with its prizes in wheel order
func (r *CatalogRepository) List(ctx context.Context) ([]domain.Catalog, error) {
	rows, err := r.db.Query(ctx,
		`SELECT w.id, w.brand, w.name, s.label, s.weight, s.color
		 FROM wheels w
		 JOIN wheel_segments s ON s.wheel_id = w.id
		 ORDER BY w.id, s.position`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var catalogs []domain.Catalog
	for rows.Next() {
		var (
			id, brand, name string
			p               domain.Prize
		)
		if err := rows.Scan(&id, &brand, &name, &p.Label, &p.Weight, &p.Color); err != nil {
			return nil, err
		}
		if n := len(catalogs); n == 0 || catalogs[n-1].ID != id {
			catalogs = append(catalogs, domain.Catalog{ID: id, Brand: domain.Brand(brand), Name: name})
		}
		last := &catalogs[len(catalogs)-1]
		last.Prizes = append(last.Prizes, p)
	}

	return catalogs, rows.Err()
}

// Get returns one wheel, or domain.ErrCatalogNotFound
func (r *CatalogRepository) Get(ctx context.Context, id string) (*domain.Catalog, error) {
	c := &domain.Catalog{ID: id}
	var brand string
	err := r.db.QueryRow(ctx,
		`SELECT brand, name FROM wheels WHERE id = $1`, id,
	).Scan(&brand, &c.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCatalogNotFound
	}
	if err != nil {
		return nil, err
	}
	c.Brand = domain.Brand(brand)

	rows, err := r.db.Query(ctx,
		`SELECT label, weight, color FROM wheel_segments WHERE wheel_id = $1 ORDER BY position`, id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Prize
		if err := rows.Scan(&p.Label, &p.Weight, &p.Color); err != nil {
			return nil, err
		}
		c.Prizes = append(c.Prizes, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return c, nil
}

// Upsert stores a wheel and replaces its prize list atomically. Catalogs that
// would not build a valid outcome table are rejected before touching the database.
func (r *CatalogRepository) Upsert(ctx context.Context, c *domain.Catalog) error {
	if _, err := c.Table(); err != nil {
		return fmt.Errorf("catalog %s: %w", c.ID, err)
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`INSERT INTO wheels (id, brand, name) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET brand = EXCLUDED.brand, name = EXCLUDED.name, updated_at = now()`,
		c.ID, string(c.Brand), c.Name,
	); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM wheel_segments WHERE wheel_id = $1`, c.ID); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for i, p := range c.Prizes {
		batch.Queue(
			`INSERT INTO wheel_segments (wheel_id, position, label, weight, color) VALUES ($1, $2, $3, $4, $5)`,
			c.ID, i, p.Label, p.Weight, p.Color,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Delete removes a wheel and its prizes
func (r *CatalogRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM wheels WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCatalogNotFound
	}
	return nil
}

// Ping reports whether the database is reachable
func (r *CatalogRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
