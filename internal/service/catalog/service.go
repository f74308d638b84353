// Package catalog exposes the storefront read/write operations over
// products and listings.
package catalog

import (
	"context"
	"errors"
	"sort"
	"strings"

	"vitalia/internal/domain"
	"vitalia/internal/paging"
	listingrepo "vitalia/internal/repository/listing"
	productrepo "vitalia/internal/repository/product"
	"vitalia/internal/shuffle"
)

type Service struct {
	products productRepo
	listings listingRepo
}

type productRepo interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type listingRepo interface {
	ListByKind(ctx context.Context, kind string) ([]domain.Listing, error)
	GetByID(ctx context.Context, id string) (*domain.Listing, error)
	Create(ctx context.Context, l domain.Listing) (*domain.Listing, error)
	Update(ctx context.Context, l domain.Listing) (*domain.Listing, error)
	Delete(ctx context.Context, id string) error
}

func New(products productrepo.Repository, listings listingrepo.Repository) *Service {
	return &Service{products: products, listings: listings}
}

// Query mirrors the listing-page query parameters: category, free-text
// search, sort key and page window.
type Query struct {
	Category string
	Search   string
	Sort     string
	Page     int
	PerPage  int
}

// Products filters, sorts and pages the catalog. Filtering happens on the
// full fetched list, matching the storefront's client-side behavior.
func (s *Service) Products(ctx context.Context, q Query) (paging.Page[domain.Product], error) {
	all, err := s.products.List(ctx)
	if err != nil {
		return paging.Page[domain.Product]{}, err
	}

	filtered := all[:0:0]
	search := strings.ToLower(strings.TrimSpace(q.Search))
	for _, p := range all {
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		filtered = append(filtered, p)
	}

	sortProducts(filtered, q.Sort)
	return paging.Slice(filtered, q.Page, q.PerPage), nil
}

// Product fetches one product by ID.
func (s *Service) Product(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

// Featured returns up to limit products in a seeded-random order. The seed
// is fixed per fetch (typically per session), so re-rendering the section
// does not reshuffle it.
func (s *Service) Featured(ctx context.Context, seed int64, limit int) ([]domain.Product, error) {
	all, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	shuffle.SeededSlice(seed, all)
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (s *Service) CreateProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	return s.products.Create(ctx, p)
}

func (s *Service) UpdateProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	return s.products.Update(ctx, p)
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

// Listings returns the catalog entries of one kind (course, event or
// service offering).
func (s *Service) Listings(ctx context.Context, kind string) ([]domain.Listing, error) {
	if !validKind(kind) {
		return nil, errors.New("unknown listing kind")
	}
	return s.listings.ListByKind(ctx, kind)
}

func (s *Service) Listing(ctx context.Context, id string) (*domain.Listing, error) {
	return s.listings.GetByID(ctx, id)
}

func (s *Service) CreateListing(ctx context.Context, l domain.Listing) (*domain.Listing, error) {
	if err := validateListing(l); err != nil {
		return nil, err
	}
	return s.listings.Create(ctx, l)
}

func (s *Service) UpdateListing(ctx context.Context, l domain.Listing) (*domain.Listing, error) {
	if err := validateListing(l); err != nil {
		return nil, err
	}
	return s.listings.Update(ctx, l)
}

func (s *Service) DeleteListing(ctx context.Context, id string) error {
	return s.listings.Delete(ctx, id)
}

func sortProducts(products []domain.Product, key string) {
	switch key {
	case "price-asc":
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].PriceCents < products[j].PriceCents
		})
	case "price-desc":
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].PriceCents > products[j].PriceCents
		})
	case "name-desc":
		sort.SliceStable(products, func(i, j int) bool {
			return strings.ToLower(products[i].Name) > strings.ToLower(products[j].Name)
		})
	case "name-asc":
		sort.SliceStable(products, func(i, j int) bool {
			return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
		})
	default:
		// Keep repository order (newest first).
	}
}

func validateProduct(p domain.Product) error {
	if strings.TrimSpace(p.Slug) == "" {
		return errors.New("slug required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name required")
	}
	if p.PriceCents < 0 {
		return errors.New("price must be non-negative")
	}
	if strings.TrimSpace(p.Currency) == "" {
		return errors.New("currency required")
	}
	if p.Stock != nil && *p.Stock < 0 {
		return errors.New("stock must be non-negative")
	}
	return nil
}

func validateListing(l domain.Listing) error {
	if !validKind(l.Kind) {
		return errors.New("unknown listing kind")
	}
	if strings.TrimSpace(l.Slug) == "" {
		return errors.New("slug required")
	}
	if strings.TrimSpace(l.Title) == "" {
		return errors.New("title required")
	}
	if l.PriceCents < 0 {
		return errors.New("price must be non-negative")
	}
	if strings.TrimSpace(l.Currency) == "" {
		return errors.New("currency required")
	}
	return nil
}

func validKind(kind string) bool {
	switch kind {
	case domain.KindCourse, domain.KindEvent, domain.KindService:
		return true
	}
	return false
}
