package services

import (
	"context"
	"errors"

	"storefront-service/internal/domain"
	rabbit "storefront-service/internal/infra/rabbitmq"
	"storefront-service/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// CheckoutRequest carries everything a checkout copies onto each order.
type CheckoutRequest struct {
	AccountID     string
	Shipping      domain.ShippingInfo
	PaymentMethod string
	OrderDate     string
}

type CheckoutService struct {
	carts     repository.CartRepository
	orders    repository.OrderRepository
	publisher rabbit.PublisherInterface
	newID     func() string
}

func NewCheckoutService(c repository.CartRepository, o repository.OrderRepository, pub rabbit.PublisherInterface) *CheckoutService {
	return &CheckoutService{
		carts:     c,
		orders:    o,
		publisher: pub,
		newID:     uuid.NewString,
	}
}

// PlaceOrder converts a snapshot of the account's cart into orders, one line
// at a time. Lines are independent: a failing line stays in the cart and is
// reported in FailedLineIDs, a line converted concurrently by another checkout
// is reported in SkippedLineIDs. Only a failure to read the snapshot is
// returned as an error.
func (s *CheckoutService) PlaceOrder(ctx context.Context, req CheckoutRequest) (*domain.CheckoutResult, error) {
	lines, err := s.carts.ListByAccount(ctx, req.AccountID)
	if err != nil {
		log.Error().Err(err).Str("account_id", req.AccountID).Msg("snapshot cart")
		return nil, err
	}

	result := &domain.CheckoutResult{
		FailedLineIDs:  []string{},
		SkippedLineIDs: []string{},
	}
	for _, line := range lines {
		order := domain.NewOrderFromLine(s.newID(), line, req.Shipping, req.PaymentMethod, req.OrderDate)

		err := s.orders.ConvertLine(ctx, line, order)
		switch {
		case err == nil:
			result.OrdersCreated++
			go publishEvent(s.publisher, domain.EventOrderPlaced, domain.OrderPlacedEvent{
				OrderID:   order.ID,
				LineID:    line.ID,
				AccountID: order.AccountID,
				Title:     order.Title,
				Quantity:  order.Quantity,
				Price:     order.Price,
				CreatedAt: order.CreatedAt,
			})
		case errors.Is(err, domain.ErrLineAlreadyConverted):
			log.Info().Str("line_id", line.ID).Str("account_id", req.AccountID).Msg("cart line already converted, skipping")
			result.SkippedLineIDs = append(result.SkippedLineIDs, line.ID)
		default:
			log.Error().Err(err).Str("line_id", line.ID).Str("account_id", req.AccountID).Msg("convert cart line")
			result.FailedLineIDs = append(result.FailedLineIDs, line.ID)
		}
	}

	log.Info().
		Str("account_id", req.AccountID).
		Int("lines", len(lines)).
		Int("orders_created", result.OrdersCreated).
		Int("failed", len(result.FailedLineIDs)).
		Int("skipped", len(result.SkippedLineIDs)).
		Msg("checkout finished")
	return result, nil
}
