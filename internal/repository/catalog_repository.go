package repository

import (
	"context"

	"storefront-service/internal/domain"
)

type CatalogRepository interface {
	// Load returns the singleton configuration, creating it with empty
	// defaults when it does not exist yet. Concurrent first calls create it once.
	Load(ctx context.Context) (*domain.CatalogConfig, error)
	// Save persists cfg only if the stored version still equals cfg.Version,
	// then increments cfg.Version. A stale version yields
	// domain.ErrConcurrentModification.
	Save(ctx context.Context, cfg *domain.CatalogConfig) error
}

type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
}
