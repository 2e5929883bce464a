package memory

import (
	"context"
	"sync"
	"testing"

	"storefront-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_LoadAndCompareAndSwap(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	first, err := store.Catalog.Load(ctx)
	require.NoError(t, err)
	second, err := store.Catalog.Load(ctx)
	require.NoError(t, err)

	first.AddCategory("Shoes")
	require.NoError(t, store.Catalog.Save(ctx, first))
	assert.Equal(t, int64(1), first.Version)

	second.AddCategory("Bags")
	assert.ErrorIs(t, store.Catalog.Save(ctx, second), domain.ErrConcurrentModification)

	current, err := store.Catalog.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Shoes"}, current.Categories)
}

func TestCart_ListOrderAndDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, store.Carts.Add(ctx, &domain.CartLine{ID: id, AccountID: "acc-1"}))
	}
	require.NoError(t, store.Carts.Add(ctx, &domain.CartLine{ID: "z", AccountID: "acc-2"}))

	lines, err := store.Carts.ListByAccount(ctx, "acc-1")
	require.NoError(t, err)
	ids := []string{}
	for _, l := range lines {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids, "lines come back in insertion order")

	removed, err := store.Carts.Delete(ctx, "a")
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = store.Carts.Delete(ctx, "a")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestOrders_ConvertLineAtMostOnce(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	line := domain.CartLine{ID: "line-1", AccountID: "acc-1"}
	require.NoError(t, store.Carts.Add(ctx, &line))

	var wg sync.WaitGroup
	results := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			order := domain.NewOrderFromLine("order-"+string(rune('a'+i)), line, domain.ShippingInfo{}, "cod", "")
			results[i] = store.Orders.ConvertLine(ctx, line, order)
		}(i)
	}
	wg.Wait()

	converted := 0
	for _, err := range results {
		if err == nil {
			converted++
		} else {
			assert.ErrorIs(t, err, domain.ErrLineAlreadyConverted)
		}
	}
	assert.Equal(t, 1, converted)

	orders, err := store.Orders.FindByAccount(ctx, "acc-1")
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	lines, err := store.Carts.ListByAccount(ctx, "acc-1")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestAccounts_UniqueEmail(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	require.NoError(t, store.Accounts.Create(ctx, &domain.Account{ID: "1", Email: "a@b.c"}))
	assert.ErrorIs(t, store.Accounts.Create(ctx, &domain.Account{ID: "2", Email: "a@b.c"}), domain.ErrDuplicate)

	_, err := store.Accounts.FindByEmail(ctx, "nobody@b.c")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProducts_StoredCopyIsIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	p := &domain.Product{ID: "p-1", Title: "Shirt", Carousel: []string{"a.png"}, Sizes: []string{"S", "M"}}
	require.NoError(t, store.Products.Create(ctx, p))
	p.Carousel[0] = "changed.png"
	p.Sizes[1] = "XL"

	got, err := store.Products.FindByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png"}, got.Carousel)
	assert.Equal(t, []string{"S", "M"}, got.Sizes)

	got.Sizes[0] = "XS"
	all, err := store.Products.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, []string{"S", "M"}, all[0].Sizes)

	update := &domain.Product{ID: "p-1", Title: "Shirt", Sizes: []string{"L"}}
	require.NoError(t, store.Products.Update(ctx, update))
	update.Sizes[0] = "XXL"

	got, err = store.Products.FindByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"L"}, got.Sizes)
}
