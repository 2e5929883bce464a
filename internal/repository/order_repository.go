package repository

import (
	"context"

	"storefront-service/internal/domain"
)

type OrderRepository interface {
	// ConvertLine is the only way an order is created: it removes the source
	// cart line and persists order as one unit. It returns
	// domain.ErrLineAlreadyConverted when the line is already gone and never
	// leaves an order behind for a line that is still in the cart.
	ConvertLine(ctx context.Context, line domain.CartLine, order *domain.Order) error
	FindAll(ctx context.Context) ([]domain.Order, error)
	FindByAccount(ctx context.Context, accountID string) ([]domain.Order, error)
}
