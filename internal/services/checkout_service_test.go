package services

import (
	"context"
	"sync"
	"testing"

	"storefront-service/internal/domain"
	"storefront-service/internal/mocks"
	"storefront-service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// failingOrders fails the conversion of selected lines and delegates the rest.
type failingOrders struct {
	repository.OrderRepository
	fail map[string]bool
}

func (f *failingOrders) ConvertLine(ctx context.Context, line domain.CartLine, order *domain.Order) error {
	if f.fail[line.ID] {
		return domain.ErrStoreUnavailable
	}
	return f.OrderRepository.ConvertLine(ctx, line, order)
}

func checkoutRequest(accountID string) CheckoutRequest {
	return CheckoutRequest{
		AccountID: accountID,
		Shipping: domain.ShippingInfo{
			Name:    "Ana",
			Mobile:  "555-0100",
			Email:   "ana@example.com",
			Address: "1 Main St",
			Pincode: "12345",
		},
		PaymentMethod: "cod",
		OrderDate:     "2024-05-01",
	}
}

func TestCheckoutService_PlaceOrder_ConvertsWholeCart(t *testing.T) {
	store := seedStore(t, TestAccountID, TestOtherID)
	lines := addLines(t, store.Carts, TestAccountID, "shirt", "shoes", "hat")
	addLines(t, store.Carts, TestOtherID, "bag")

	service := NewCheckoutService(store.Carts, store.Orders, quietPublisher())
	result, err := service.PlaceOrder(context.Background(), checkoutRequest(TestAccountID))

	require.NoError(t, err)
	assert.Equal(t, 3, result.OrdersCreated)
	assert.Empty(t, result.FailedLineIDs)
	assert.Empty(t, result.SkippedLineIDs)
	assert.False(t, result.Partial())

	remaining, err := store.Carts.ListByAccount(context.Background(), TestAccountID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	other, err := store.Carts.ListByAccount(context.Background(), TestOtherID)
	require.NoError(t, err)
	assert.Len(t, other, 1)

	orders, err := store.Orders.FindByAccount(context.Background(), TestAccountID)
	require.NoError(t, err)
	require.Len(t, orders, 3)

	byLine := map[string]domain.Order{}
	for _, o := range orders {
		byLine[o.LineID] = o
	}
	for _, l := range lines {
		o, ok := byLine[l.ID]
		require.True(t, ok, "no order for line %s", l.ID)
		assert.Equal(t, l.Title, o.Title)
		assert.Equal(t, l.Size, o.Size)
		assert.Equal(t, l.Quantity, o.Quantity)
		assert.Equal(t, l.Price, o.Price)
		assert.Equal(t, "Ana", o.Name)
		assert.Equal(t, "12345", o.Pincode)
		assert.Equal(t, "cod", o.PaymentMethod)
		assert.Equal(t, "2024-05-01", o.OrderDate)
	}
}

func TestCheckoutService_PlaceOrder_EmptyCart(t *testing.T) {
	store := seedStore(t, TestAccountID)
	service := NewCheckoutService(store.Carts, store.Orders, quietPublisher())

	for i := 0; i < 2; i++ {
		result, err := service.PlaceOrder(context.Background(), checkoutRequest(TestAccountID))
		require.NoError(t, err)
		assert.Equal(t, 0, result.OrdersCreated)
		assert.Empty(t, result.FailedLineIDs)
	}

	orders, err := store.Orders.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCheckoutService_PlaceOrder_ConcurrentCheckoutsConvertEachLineOnce(t *testing.T) {
	const lineCount = 12
	store := seedStore(t, TestAccountID)
	titles := make([]string, lineCount)
	for i := range titles {
		titles[i] = string(rune('a' + i))
	}
	addLines(t, store.Carts, TestAccountID, titles...)

	service := NewCheckoutService(store.Carts, store.Orders, quietPublisher())

	var wg sync.WaitGroup
	results := make([]*domain.CheckoutResult, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := service.PlaceOrder(context.Background(), checkoutRequest(TestAccountID))
			assert.NoError(t, err)
			results[i] = res
		}(i)
	}
	wg.Wait()

	created := 0
	for _, r := range results {
		require.NotNil(t, r)
		assert.Empty(t, r.FailedLineIDs)
		created += r.OrdersCreated
	}
	assert.Equal(t, lineCount, created)

	orders, err := store.Orders.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, orders, lineCount)

	seen := map[string]bool{}
	for _, o := range orders {
		assert.False(t, seen[o.LineID], "line %s converted twice", o.LineID)
		seen[o.LineID] = true
	}
}

func TestCheckoutService_PlaceOrder_PartialFailure(t *testing.T) {
	store := seedStore(t, TestAccountID)
	lines := addLines(t, store.Carts, TestAccountID, "one", "two", "three")
	orders := &failingOrders{OrderRepository: store.Orders, fail: map[string]bool{lines[1].ID: true}}

	service := NewCheckoutService(store.Carts, orders, quietPublisher())
	result, err := service.PlaceOrder(context.Background(), checkoutRequest(TestAccountID))

	require.NoError(t, err)
	assert.Equal(t, 2, result.OrdersCreated)
	assert.Equal(t, []string{lines[1].ID}, result.FailedLineIDs)
	assert.True(t, result.Partial())

	remaining, err := store.Carts.ListByAccount(context.Background(), TestAccountID)
	require.NoError(t, err)
	assert.Equal(t, []string{lines[1].ID}, lineIDs(remaining))

	// The store recovers: a retry converts only the line that is left.
	delete(orders.fail, lines[1].ID)
	retry, err := service.PlaceOrder(context.Background(), checkoutRequest(TestAccountID))
	require.NoError(t, err)
	assert.Equal(t, 1, retry.OrdersCreated)
	assert.Empty(t, retry.FailedLineIDs)

	all, err := store.Orders.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCheckoutService_PlaceOrder_Mocked(t *testing.T) {
	line1 := domain.CartLine{ID: "l-1", AccountID: TestAccountID, Title: "shirt", Quantity: 1}
	line2 := domain.CartLine{ID: "l-2", AccountID: TestAccountID, Title: "hat", Quantity: 2}

	tests := []struct {
		name          string
		setupMocks    func(*mocks.MockCartRepository, *mocks.MockOrderRepository, *mocks.MockPublisher)
		expectedError error
		expected      *domain.CheckoutResult
	}{
		{
			name: "snapshot failure is a top level error",
			setupMocks: func(carts *mocks.MockCartRepository, orders *mocks.MockOrderRepository, pub *mocks.MockPublisher) {
				carts.On("ListByAccount", mock.Anything, TestAccountID).Return(nil, domain.ErrStoreUnavailable)
			},
			expectedError: domain.ErrStoreUnavailable,
		},
		{
			name: "line converted elsewhere is skipped",
			setupMocks: func(carts *mocks.MockCartRepository, orders *mocks.MockOrderRepository, pub *mocks.MockPublisher) {
				carts.On("ListByAccount", mock.Anything, TestAccountID).Return([]domain.CartLine{line1, line2}, nil)
				orders.On("ConvertLine", mock.Anything, line1, mock.AnythingOfType("*domain.Order")).Return(domain.ErrLineAlreadyConverted)
				orders.On("ConvertLine", mock.Anything, line2, mock.AnythingOfType("*domain.Order")).Return(nil)
				pub.On("Publish", mock.Anything, domain.EventOrderPlaced, mock.Anything).Return(nil).Maybe()
			},
			expected: &domain.CheckoutResult{OrdersCreated: 1, FailedLineIDs: []string{}, SkippedLineIDs: []string{"l-1"}},
		},
		{
			name: "every line fails",
			setupMocks: func(carts *mocks.MockCartRepository, orders *mocks.MockOrderRepository, pub *mocks.MockPublisher) {
				carts.On("ListByAccount", mock.Anything, TestAccountID).Return([]domain.CartLine{line1, line2}, nil)
				orders.On("ConvertLine", mock.Anything, mock.Anything, mock.Anything).Return(domain.ErrStoreUnavailable)
			},
			expected: &domain.CheckoutResult{OrdersCreated: 0, FailedLineIDs: []string{"l-1", "l-2"}, SkippedLineIDs: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			carts := new(mocks.MockCartRepository)
			orders := new(mocks.MockOrderRepository)
			pub := new(mocks.MockPublisher)
			tt.setupMocks(carts, orders, pub)

			result, err := NewCheckoutService(carts, orders, pub).PlaceOrder(context.Background(), checkoutRequest(TestAccountID))

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
				orders.AssertNotCalled(t, "ConvertLine", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
			carts.AssertExpectations(t)
			orders.AssertExpectations(t)
		})
	}
}

func TestCheckoutService_PublishesOrderPlaced(t *testing.T) {
	store := seedStore(t, TestAccountID)
	lines := addLines(t, store.Carts, TestAccountID, "shirt")

	published := make(chan domain.OrderPlacedEvent, 1)
	pub := new(mocks.MockPublisher)
	pub.On("Publish", mock.Anything, domain.EventOrderPlaced, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		published <- args.Get(2).(domain.OrderPlacedEvent)
	}).Once()

	_, err := NewCheckoutService(store.Carts, store.Orders, pub).PlaceOrder(context.Background(), checkoutRequest(TestAccountID))
	require.NoError(t, err)

	evt := <-published
	assert.Equal(t, lines[0].ID, evt.LineID)
	assert.Equal(t, TestAccountID, evt.AccountID)
	assert.NotEmpty(t, evt.OrderID)
}
