package mysql

import (
	"context"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type productRepo struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, p *domain.Product) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		log.Error().Err(err).Str("product_id", p.ID).Msg("create product")
		return storeError("create product", err)
	}
	return nil
}

func (r *productRepo) Update(ctx context.Context, p *domain.Product) error {
	res := r.db.WithContext(ctx).
		Model(p).
		Select("title", "description", "main_img", "carousel", "category", "sizes", "gender", "price", "discount", "updated_at").
		Updates(p)
	if res.Error != nil {
		log.Error().Err(res.Error).Str("product_id", p.ID).Msg("update product")
		return storeError("update product", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *productRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, storeError("find product", err)
	}
	return &p, nil
}

func (r *productRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&out).Error; err != nil {
		log.Error().Err(err).Msg("find products")
		return nil, storeError("find products", err)
	}
	return out, nil
}
