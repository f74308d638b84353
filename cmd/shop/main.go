package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"vitalia/internal/cart"
	"vitalia/internal/client"
	"vitalia/internal/config"
	"vitalia/internal/domain"
	"vitalia/internal/format"
	"vitalia/internal/session"
	"vitalia/internal/shuffle"
)

// productPage mirrors the /api/products response.
type productPage struct {
	Items      []domain.Product `json:"items"`
	Page       int              `json:"page"`
	PerPage    int              `json:"perPage"`
	TotalItems int              `json:"totalItems"`
	TotalPages int              `json:"totalPages"`
}

type listingList struct {
	Items []domain.Listing `json:"items"`
}

// Storefront walkthrough against a running API: fetches the catalog
// sections concurrently, shuffles a featured strip, fills a persistent
// cart and prints a formatted summary.
func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[shop] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	if cfg.APIBaseURL == "" {
		logger.Fatalf("API_BASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sess := session.New()
	api := client.NewAPI(cfg.APIBaseURL, client.WithTokenSource(sess))

	products := client.NewResource[productPage](api, "/api/products", false)
	courses := client.NewResource[listingList](api, "/api/courses", false)
	events := client.NewResource[listingList](api, "/api/events", false)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { _, err := products.Fetch(gctx); return err })
	g.Go(func() error { _, err := courses.Fetch(gctx); return err })
	g.Go(func() error { _, err := events.Fetch(gctx); return err })
	if err := g.Wait(); err != nil {
		logger.Fatalf("fetch catalog: %v", err)
	}

	page := products.State().Data
	fmt.Printf("Catálogo: %d productos\n", page.TotalItems)

	featured := shuffle.SeededSlice(time.Now().UnixNano(), append([]domain.Product(nil), page.Items...))
	if len(featured) > 4 {
		featured = featured[:4]
	}
	fmt.Println("\nDestacados:")
	for _, p := range featured {
		fmt.Printf("  %-40s %s\n", p.Name, format.Price(p.PriceCents))
	}

	if courseList := courses.State().Data; courseList != nil && len(courseList.Items) > 0 {
		fmt.Println("\nCursos:")
		for _, l := range courseList.Items {
			when := "fecha a confirmar"
			if l.StartsAt != nil {
				ts := l.StartsAt.Format(time.RFC3339)
				when = format.Date(ts) + ", " + format.Time(ts)
			}
			fmt.Printf("  %-40s %s (%s)\n", l.Title, format.Price(l.PriceCents), when)
		}
	}

	store, err := newCartStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("init cart storage: %v", err)
	}

	for i, p := range page.Items {
		if i >= 2 {
			break
		}
		store.Add(cart.Item{
			ID:         p.ID,
			Name:       p.Name,
			PriceCents: p.PriceCents,
			Stock:      p.Stock,
		}, 1)
	}
	if items := store.Items(); len(items) > 0 {
		store.Increase(items[0].ID)
	}

	fmt.Printf("\nCarrito: %d artículos\n", store.Count())
	for _, it := range store.Items() {
		fmt.Printf("  %dx %-37s %s\n", it.Quantity, it.Name, format.Price(it.PriceCents*int64(it.Quantity)))
	}
	fmt.Printf("Subtotal: %s\n", format.Price(store.SubtotalCents()))
}

func newCartStore(ctx context.Context, cfg config.Config, logger *log.Logger) (*cart.Store, error) {
	if cfg.RedisAddr != "" {
		storage, err := cart.NewRedisStorage(ctx, cfg.RedisAddr, uuid.NewString())
		if err != nil {
			return nil, err
		}
		return cart.New(storage, logger), nil
	}
	storage, err := cart.NewFileStorage(cfg.CartDir)
	if err != nil {
		return nil, err
	}
	return cart.New(storage, logger), nil
}
