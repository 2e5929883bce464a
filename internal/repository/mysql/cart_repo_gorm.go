package mysql

import (
	"context"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type cartRepo struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepo{db: db}
}

func (r *cartRepo) Add(ctx context.Context, line *domain.CartLine) error {
	if err := r.db.WithContext(ctx).Create(line).Error; err != nil {
		log.Error().Err(err).Str("account_id", line.AccountID).Msg("add cart line")
		return storeError("add cart line", err)
	}
	return nil
}

func (r *cartRepo) ListByAccount(ctx context.Context, accountID string) ([]domain.CartLine, error) {
	var out []domain.CartLine
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		log.Error().Err(err).Str("account_id", accountID).Msg("list cart lines")
		return nil, storeError("list cart lines", err)
	}
	return out, nil
}

func (r *cartRepo) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.CartLine{})
	if res.Error != nil {
		log.Error().Err(res.Error).Str("line_id", id).Msg("delete cart line")
		return false, storeError("delete cart line", res.Error)
	}
	return res.RowsAffected > 0, nil
}
