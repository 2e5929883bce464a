package services

import (
	"context"
	"errors"
	"fmt"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type CartService struct {
	accounts repository.AccountRepository
	carts    repository.CartRepository
	newID    func() string
}

func NewCartService(a repository.AccountRepository, c repository.CartRepository) *CartService {
	return &CartService{
		accounts: a,
		carts:    c,
		newID:    uuid.NewString,
	}
}

// AddToCart stores line as a new cart entry. Adding the same product twice
// yields two lines; quantities are never merged.
func (s *CartService) AddToCart(ctx context.Context, line domain.CartLine) (*domain.CartLine, error) {
	if line.AccountID == "" {
		return nil, fmt.Errorf("userId is required: %w", domain.ErrInvalidInput)
	}
	if line.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", domain.ErrInvalidInput)
	}
	if _, err := s.accounts.FindByID(ctx, line.AccountID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("unknown account %q: %w", line.AccountID, domain.ErrInvalidInput)
		}
		return nil, err
	}

	line.ID = s.newID()
	if err := s.carts.Add(ctx, &line); err != nil {
		return nil, err
	}
	log.Debug().Str("line_id", line.ID).Str("account_id", line.AccountID).Msg("added to cart")
	return &line, nil
}

func (s *CartService) ListCart(ctx context.Context, accountID string) ([]domain.CartLine, error) {
	return s.carts.ListByAccount(ctx, accountID)
}

func (s *CartService) RemoveLine(ctx context.Context, id string) error {
	removed, err := s.carts.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrNotFound
	}
	return nil
}
