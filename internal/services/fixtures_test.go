package services

import (
	"context"
	"testing"

	"storefront-service/internal/domain"
	cache "storefront-service/internal/infra/redis"
	"storefront-service/internal/mocks"
	"storefront-service/internal/repository"
	"storefront-service/internal/repository/memory"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	TestAccountID = "acc-1"
	TestOtherID   = "acc-2"
)

func quietPublisher() *mocks.MockPublisher {
	pub := new(mocks.MockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	return pub
}

// seedStore returns a memory store holding the given accounts.
func seedStore(t *testing.T, accountIDs ...string) repository.Store {
	t.Helper()
	store := memory.NewStore()
	for _, id := range accountIDs {
		require.NoError(t, store.Accounts.Create(context.Background(), &domain.Account{
			ID:    id,
			Email: id + "@example.com",
		}))
	}
	return store
}

func addLines(t *testing.T, carts repository.CartRepository, accountID string, titles ...string) []domain.CartLine {
	t.Helper()
	out := make([]domain.CartLine, 0, len(titles))
	for _, title := range titles {
		line := domain.CartLine{
			ID:        accountID + "-" + title,
			AccountID: accountID,
			Title:     title,
			Size:      "M",
			Quantity:  1,
			Price:     25,
		}
		require.NoError(t, carts.Add(context.Background(), &line))
		out = append(out, line)
	}
	return out
}

func newProductService(store repository.Store) *ProductService {
	return NewProductService(store.Products, NewCatalogService(store.Catalog, quietPublisher()), cache.NopCache{})
}

func lineIDs(lines []domain.CartLine) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.ID)
	}
	return out
}
