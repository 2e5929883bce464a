package mysql

import (
	"context"
	"errors"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

// ConvertLine deletes the cart line and inserts the order inside one
// transaction. The row lock taken by the DELETE makes a concurrent conversion
// of the same line wait and then see zero affected rows.
func (r *orderRepo) ConvertLine(ctx context.Context, line domain.CartLine, order *domain.Order) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", line.ID).Delete(&domain.CartLine{})
		if res.Error != nil {
			return storeError("delete cart line", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrLineAlreadyConverted
		}

		if err := tx.Create(order).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrLineAlreadyConverted
			}
			return storeError("create order", err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrLineAlreadyConverted) {
			log.Error().Err(err).Str("line_id", line.ID).Str("account_id", line.AccountID).Msg("convert cart line")
		}
		return err
	}

	log.Debug().Str("order_id", order.ID).Str("line_id", line.ID).Msg("cart line converted")
	return nil
}

func (r *orderRepo) FindAll(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		log.Error().Err(err).Msg("find orders")
		return nil, storeError("find orders", err)
	}
	return out, nil
}

func (r *orderRepo) FindByAccount(ctx context.Context, accountID string) ([]domain.Order, error) {
	var out []domain.Order
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).Order("created_at DESC").Find(&out).Error; err != nil {
		log.Error().Err(err).Str("account_id", accountID).Msg("find orders by account")
		return nil, storeError("find orders by account", err)
	}
	return out, nil
}
