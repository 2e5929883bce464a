package repository

import (
	"context"

	"storefront-service/internal/domain"
)

type CartRepository interface {
	Add(ctx context.Context, line *domain.CartLine) error
	// ListByAccount returns the account's lines ordered by creation time, then id.
	ListByAccount(ctx context.Context, accountID string) ([]domain.CartLine, error)
	// Delete removes the line if present and reports whether a row was removed.
	Delete(ctx context.Context, id string) (bool, error)
}
