package mysql

import (
	"context"
	"errors"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type accountRepo struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepo{db: db}
}

func (r *accountRepo) Create(ctx context.Context, a *domain.Account) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		err = storeError("create account", err)
		if !errors.Is(err, domain.ErrDuplicate) {
			log.Error().Err(err).Str("email", a.Email).Msg("create account")
		}
		return err
	}
	return nil
}

func (r *accountRepo) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	var a domain.Account
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, storeError("find account", err)
	}
	return &a, nil
}

func (r *accountRepo) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var a domain.Account
	if err := r.db.WithContext(ctx).First(&a, "email = ?", email).Error; err != nil {
		return nil, storeError("find account by email", err)
	}
	return &a, nil
}

func (r *accountRepo) FindAll(ctx context.Context) ([]domain.Account, error) {
	var out []domain.Account
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&out).Error; err != nil {
		log.Error().Err(err).Msg("find accounts")
		return nil, storeError("find accounts", err)
	}
	return out, nil
}
