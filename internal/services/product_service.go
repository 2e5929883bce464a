package services

import (
	"context"
	"fmt"

	"storefront-service/internal/domain"
	cache "storefront-service/internal/infra/redis"
	"storefront-service/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ProductService struct {
	repo    repository.ProductRepository
	catalog *CatalogService
	cache   cache.CacheInterface
	newID   func() string
}

func NewProductService(r repository.ProductRepository, catalog *CatalogService, c cache.CacheInterface) *ProductService {
	return &ProductService{
		repo:    r,
		catalog: catalog,
		cache:   c,
		newID:   uuid.NewString,
	}
}

// resolveCategory returns the category a product is stored under, registering
// it first when the input introduces a new one.
func (s *ProductService) resolveCategory(ctx context.Context, in domain.ProductInput) (string, error) {
	category, isNew := in.ResolvedCategory()
	if isNew {
		if category == "" {
			return "", fmt.Errorf("new category name is required: %w", domain.ErrInvalidInput)
		}
		if _, err := s.catalog.RegisterCategoryIfNew(ctx, category); err != nil {
			return "", err
		}
		return category, nil
	}

	if category == "" {
		return "", nil
	}
	cfg, err := s.catalog.config(ctx)
	if err != nil {
		return "", err
	}
	if !cfg.HasCategory(category) {
		return "", fmt.Errorf("unknown category %q: %w", category, domain.ErrInvalidInput)
	}
	return category, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	category, err := s.resolveCategory(ctx, in)
	if err != nil {
		return nil, err
	}

	p := &domain.Product{ID: s.newID()}
	in.Apply(p, category)
	if err := s.repo.Create(ctx, p); err != nil {
		log.Error().Err(err).Str("category", category).Msg("create product")
		return nil, err
	}

	s.invalidate(ctx, cache.ProductListKey)
	log.Info().Str("product_id", p.ID).Str("category", category).Msg("product created")
	return p, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id string, in domain.ProductInput) (*domain.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category, err := s.resolveCategory(ctx, in)
	if err != nil {
		return nil, err
	}

	in.Apply(p, category)
	if err := s.repo.Update(ctx, p); err != nil {
		log.Error().Err(err).Str("product_id", id).Msg("update product")
		return nil, err
	}

	s.invalidate(ctx, cache.ProductKey(id), cache.ProductListKey)
	return p, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	key := cache.ProductKey(id)

	var cached domain.Product
	if ok, err := s.cache.Get(ctx, key, &cached); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	} else if ok {
		return &cached, nil
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, p); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return p, nil
}

func (s *ProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var cached []domain.Product
	if ok, err := s.cache.Get(ctx, cache.ProductListKey, &cached); err != nil {
		log.Warn().Err(err).Str("key", cache.ProductListKey).Msg("cache read failed")
	} else if ok {
		return cached, nil
	}

	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, cache.ProductListKey, products); err != nil {
		log.Warn().Err(err).Str("key", cache.ProductListKey).Msg("cache write failed")
	}
	return products, nil
}

func (s *ProductService) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("cache invalidation failed")
	}
}
