package listing

import (
	"context"

	"vitalia/internal/domain"
)

type Repository interface {
	ListByKind(ctx context.Context, kind string) ([]domain.Listing, error)
	GetByID(ctx context.Context, id string) (*domain.Listing, error)
	Create(ctx context.Context, l domain.Listing) (*domain.Listing, error)
	Update(ctx context.Context, l domain.Listing) (*domain.Listing, error)
	Delete(ctx context.Context, id string) error
}
