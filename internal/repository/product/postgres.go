package product

import (
	"context"
	"errors"
	"io"
	"log"

	"vitalia/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `id::text, slug, sku, name, COALESCE(description, ''), category, price_cents, currency, stock, images, created_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (slug, sku, name, description, category, price_cents, currency, stock, images)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, COALESCE($9, '[]'::jsonb))
RETURNING ` + productColumns + `
`
	created, err := scanProduct(r.pool.QueryRow(ctx, q,
		p.Slug, p.SKU, p.Name, p.Description, p.Category, p.PriceCents, p.Currency, p.Stock, p.Images))
	if err != nil {
		return nil, mapInsertErr(err)
	}
	return &created, nil
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
UPDATE products
SET slug = $2,
    sku = $3,
    name = $4,
    description = NULLIF($5, ''),
    category = $6,
    price_cents = $7,
    currency = $8,
    stock = $9,
    images = COALESCE($10, '[]'::jsonb)
WHERE id = $1
RETURNING ` + productColumns + `
`
	updated, err := scanProduct(r.pool.QueryRow(ctx, q,
		p.ID, p.Slug, p.SKU, p.Name, p.Description, p.Category, p.PriceCents, p.Currency, p.Stock, p.Images))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, mapInsertErr(err)
	}
	return &updated, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Upsert inserts or refreshes a product by slug. Used by the CSV importer.
func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (slug, sku, name, description, category, price_cents, currency, stock, images)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, COALESCE($9, '[]'::jsonb))
ON CONFLICT (slug) DO UPDATE SET
    sku = EXCLUDED.sku,
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    category = EXCLUDED.category,
    price_cents = EXCLUDED.price_cents,
    currency = EXCLUDED.currency,
    stock = EXCLUDED.stock,
    images = EXCLUDED.images
RETURNING ` + productColumns + `
`
	upserted, err := scanProduct(r.pool.QueryRow(ctx, q,
		p.Slug, p.SKU, p.Name, p.Description, p.Category, p.PriceCents, p.Currency, p.Stock, p.Images))
	if err != nil {
		return nil, err
	}
	return &upserted, nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Slug, &p.SKU, &p.Name, &p.Description, &p.Category,
		&p.PriceCents, &p.Currency, &p.Stock, &p.Images, &p.CreatedAt)
	return p, err
}

func mapInsertErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrAlreadyExists
	}
	return err
}
