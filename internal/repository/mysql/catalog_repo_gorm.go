package mysql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type catalogRepo struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) repository.CatalogRepository {
	return &catalogRepo{db: db}
}

func (r *catalogRepo) Load(ctx context.Context) (*domain.CatalogConfig, error) {
	cfg, err := r.find(ctx)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Msg("load catalog config")
		return nil, storeError("load catalog config", err)
	}

	// First access: insert the empty singleton, ignoring a row created by a
	// concurrent caller in the meantime, then read back whichever row won.
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(domain.NewCatalogConfig()).Error; err != nil {
		log.Error().Err(err).Msg("create catalog config")
		return nil, storeError("create catalog config", err)
	}
	cfg, err = r.find(ctx)
	if err != nil {
		log.Error().Err(err).Msg("reload catalog config")
		return nil, storeError("reload catalog config", err)
	}
	log.Info().Msg("catalog config created")
	return cfg, nil
}

func (r *catalogRepo) find(ctx context.Context) (*domain.CatalogConfig, error) {
	var cfg domain.CatalogConfig
	if err := r.db.WithContext(ctx).First(&cfg, domain.CatalogConfigID).Error; err != nil {
		return nil, err
	}
	if cfg.Categories == nil {
		cfg.Categories = []string{}
	}
	return &cfg, nil
}

func (r *catalogRepo) Save(ctx context.Context, cfg *domain.CatalogConfig) error {
	categories, err := json.Marshal(cfg.Categories)
	if err != nil {
		return fmt.Errorf("encode categories: %w", err)
	}

	res := r.db.WithContext(ctx).
		Model(&domain.CatalogConfig{}).
		Where("id = ? AND version = ?", domain.CatalogConfigID, cfg.Version).
		Updates(map[string]any{
			"banner":     cfg.Banner,
			"categories": string(categories),
			"version":    gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		log.Error().Err(res.Error).Int64("version", cfg.Version).Msg("save catalog config")
		return storeError("save catalog config", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrConcurrentModification
	}
	cfg.Version++
	return nil
}
