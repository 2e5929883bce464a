package services

import (
	"context"
	"errors"
	"time"

	"storefront-service/internal/domain"
	rabbit "storefront-service/internal/infra/rabbitmq"
	"storefront-service/internal/repository"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// CatalogService owns the singleton catalog configuration: the banner and the
// registered category names.
type CatalogService struct {
	repo      repository.CatalogRepository
	publisher rabbit.PublisherInterface
	loads     singleflight.Group
}

func NewCatalogService(r repository.CatalogRepository, pub rabbit.PublisherInterface) *CatalogService {
	return &CatalogService{
		repo:      r,
		publisher: pub,
	}
}

const (
	catalogLoadKey     = "catalog"
	catalogLoadTimeout = 5 * time.Second
)

// config coalesces concurrent read-only loads into one store round trip. The
// shared load is detached from any single caller's cancellation; each caller
// stops waiting when its own context ends. The shared result must not be
// mutated by callers.
func (s *CatalogService) config(ctx context.Context) (*domain.CatalogConfig, error) {
	ch := s.loads.DoChan(catalogLoadKey, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), catalogLoadTimeout)
		defer cancel()
		return s.repo.Load(loadCtx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.CatalogConfig), nil
	}
}

func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	cfg, err := s.config(ctx)
	if err != nil {
		return nil, err
	}
	return append([]string{}, cfg.Categories...), nil
}

func (s *CatalogService) Banner(ctx context.Context) (string, error) {
	cfg, err := s.config(ctx)
	if err != nil {
		return "", err
	}
	return cfg.Banner, nil
}

// RegisterCategoryIfNew adds name to the category list unless it is already
// there. A concurrent writer forces one reload and reapply; a second conflict
// is returned to the caller.
func (s *CatalogService) RegisterCategoryIfNew(ctx context.Context, name string) (*domain.CatalogConfig, error) {
	var added bool
	cfg, err := s.update(ctx, func(cfg *domain.CatalogConfig) bool {
		added = cfg.AddCategory(name)
		return added
	})
	if err != nil {
		log.Error().Err(err).Str("category", name).Msg("register category")
		return nil, err
	}
	if added {
		log.Info().Str("category", name).Int64("version", cfg.Version).Msg("category registered")
		go publishEvent(s.publisher, domain.EventCategoryAdded, domain.CategoryAddedEvent{
			Category: name,
			Version:  cfg.Version,
		})
	}
	return cfg, nil
}

func (s *CatalogService) UpdateBanner(ctx context.Context, banner string) error {
	_, err := s.update(ctx, func(cfg *domain.CatalogConfig) bool {
		if cfg.Banner == banner {
			return false
		}
		cfg.Banner = banner
		return true
	})
	if err != nil {
		log.Error().Err(err).Msg("update banner")
	}
	return err
}

// update runs a compare-and-swap read-modify-write of the configuration. apply
// reports whether it changed anything; unchanged configs are not saved.
func (s *CatalogService) update(ctx context.Context, apply func(*domain.CatalogConfig) bool) (*domain.CatalogConfig, error) {
	const attempts = 2

	var err error
	for i := 0; i < attempts; i++ {
		var cfg *domain.CatalogConfig
		cfg, err = s.repo.Load(ctx)
		if err != nil {
			return nil, err
		}
		if !apply(cfg) {
			return cfg, nil
		}
		err = s.repo.Save(ctx, cfg)
		if err == nil {
			// reads that start from here on must not join a load begun
			// before this save
			s.loads.Forget(catalogLoadKey)
			return cfg, nil
		}
		if !errors.Is(err, domain.ErrConcurrentModification) {
			return nil, err
		}
		log.Warn().Int("attempt", i+1).Msg("catalog config changed concurrently, reloading")
	}
	return nil, err
}
