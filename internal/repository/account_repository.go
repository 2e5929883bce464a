package repository

import (
	"context"

	"storefront-service/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, a *domain.Account) error
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindAll(ctx context.Context) ([]domain.Account, error)
}

// Store bundles one backend's implementations of every repository.
type Store struct {
	Accounts AccountRepository
	Catalog  CatalogRepository
	Products ProductRepository
	Carts    CartRepository
	Orders   OrderRepository
	Close    func() error
}
