package listing

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

const listingColumns = `id::text, kind, slug, title, COALESCE(description, ''), price_cents, currency, starts_at, location, image, created_at`

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

func (r *postgresRepo) ListByKind(ctx context.Context, kind string) ([]domain.Listing, error) {
	const q = `
SELECT ` + listingColumns + `
FROM listings
WHERE kind = $1
ORDER BY starts_at NULLS LAST, created_at DESC
`
	rows, err := r.pool.Query(ctx, q, kind)
	if err != nil {
		r.logger.Printf("listing repo: list kind=%s error=%v", kind, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("listing repo: list rows kind=%s error=%v", kind, err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	const q = `
SELECT ` + listingColumns + `
FROM listings
WHERE id = $1
`
	l, err := scanListing(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("listing repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &l, nil
}

func (r *postgresRepo) Create(ctx context.Context, l domain.Listing) (*domain.Listing, error) {
	const q = `
INSERT INTO listings (kind, slug, title, description, price_cents, currency, starts_at, location, image)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9)
RETURNING ` + listingColumns + `
`
	created, err := scanListing(r.pool.QueryRow(ctx, q,
		l.Kind, l.Slug, l.Title, l.Description, l.PriceCents, l.Currency, l.StartsAt, l.Location, l.Image))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *postgresRepo) Update(ctx context.Context, l domain.Listing) (*domain.Listing, error) {
	const q = `
UPDATE listings
SET slug = $2,
    title = $3,
    description = NULLIF($4, ''),
    price_cents = $5,
    currency = $6,
    starts_at = $7,
    location = $8,
    image = $9
WHERE id = $1
RETURNING ` + listingColumns + `
`
	updated, err := scanListing(r.pool.QueryRow(ctx, q,
		l.ID, l.Slug, l.Title, l.Description, l.PriceCents, l.Currency, l.StartsAt, l.Location, l.Image))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanListing(row pgx.Row) (domain.Listing, error) {
	var l domain.Listing
	err := row.Scan(&l.ID, &l.Kind, &l.Slug, &l.Title, &l.Description,
		&l.PriceCents, &l.Currency, &l.StartsAt, &l.Location, &l.Image, &l.CreatedAt)
	return l, err
}
