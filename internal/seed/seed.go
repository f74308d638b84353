package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type productSeed struct {
	Slug        string
	SKU         string
	Name        string
	Description string
	Category    string
	PriceCents  int64
	Currency    string
	Stock       *int
}

type listingSeed struct {
	Kind        string
	Slug        string
	Title       string
	Description string
	PriceCents  int64
	Currency    string
	Location    string
}

func intp(n int) *int { return &n }

// Apply inserts demo catalog data plus an admin account for manual
// testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			Slug:        "vela-de-soja-lavanda",
			SKU:         "SKU-VELA-LAV",
			Name:        "Vela de soja con lavanda",
			Description: "Vela artesanal de cera de soja con aceite esencial de lavanda",
			Category:    "velas",
			PriceCents:  185000,
			Currency:    "ARS",
			Stock:       intp(24),
		},
		{
			Slug:        "aceite-esencial-eucalipto",
			SKU:         "SKU-ACEITE-EUC",
			Name:        "Aceite esencial de eucalipto",
			Description: "Frasco de 15 ml de aceite puro de eucalipto",
			Category:    "aromas",
			PriceCents:  92000,
			Currency:    "ARS",
			Stock:       intp(40),
		},
		{
			Slug:        "mat-de-yoga-corcho",
			SKU:         "SKU-MAT-CORCHO",
			Name:        "Mat de yoga de corcho",
			Description: "Mat antideslizante de corcho natural, 4 mm",
			Category:    "yoga",
			PriceCents:  650000,
			Currency:    "ARS",
			Stock:       intp(8),
		},
		{
			Slug:        "guia-meditacion-digital",
			SKU:         "SKU-GUIA-MED",
			Name:        "Guía de meditación (digital)",
			Description: "Descarga digital, sin límite de stock",
			Category:    "digital",
			PriceCents:  45000,
			Currency:    "ARS",
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Slug, err)
		}
	}

	listings := []listingSeed{
		{
			Kind:        "course",
			Slug:        "respiracion-consciente",
			Title:       "Curso de respiración consciente",
			Description: "Cuatro encuentros semanales online",
			PriceCents:  320000,
			Currency:    "ARS",
			Location:    "Online",
		},
		{
			Kind:        "event",
			Slug:        "retiro-primavera",
			Title:       "Retiro de primavera",
			Description: "Fin de semana de yoga y silencio en las sierras",
			PriceCents:  1500000,
			Currency:    "ARS",
			Location:    "Córdoba",
		},
		{
			Kind:        "service",
			Slug:        "sesion-reiki",
			Title:       "Sesión individual de reiki",
			Description: "Sesión presencial de una hora",
			PriceCents:  280000,
			Currency:    "ARS",
			Location:    "Palermo, Buenos Aires",
		},
	}

	for _, l := range listings {
		if err := upsertListing(ctx, pool, l); err != nil {
			return fmt.Errorf("upsert listing %s/%s: %w", l.Kind, l.Slug, err)
		}
	}

	if err := ensureAdmin(ctx, pool, "admin@vitalia.local", "Cambiame123"); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (slug, sku, name, description, category, price_cents, currency, stock, images)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, '[]'::jsonb)
ON CONFLICT (slug) DO UPDATE
SET sku = EXCLUDED.sku,
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    category = EXCLUDED.category,
    price_cents = EXCLUDED.price_cents,
    currency = EXCLUDED.currency,
    stock = EXCLUDED.stock
`
	_, err := pool.Exec(ctx, q, p.Slug, p.SKU, p.Name, p.Description, p.Category, p.PriceCents, p.Currency, p.Stock)
	return err
}

func upsertListing(ctx context.Context, pool *pgxpool.Pool, l listingSeed) error {
	const q = `
INSERT INTO listings (kind, slug, title, description, price_cents, currency, location)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (kind, slug) DO UPDATE
SET title = EXCLUDED.title,
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    currency = EXCLUDED.currency,
    location = EXCLUDED.location
`
	_, err := pool.Exec(ctx, q, l.Kind, l.Slug, l.Title, l.Description, l.PriceCents, l.Currency, l.Location)
	return err
}

// ensureAdmin creates the bootstrap admin only when the email is free, so
// a rotated password in a live database is never overwritten.
func ensureAdmin(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	const q = `
INSERT INTO customers (email, password_hash, first_name, last_name, is_admin)
VALUES ($1, $2, 'Admin', 'Vitalia', TRUE)
ON CONFLICT (email) DO NOTHING
`
	_, err = pool.Exec(ctx, q, email, string(hash))
	return err
}
