package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/mocks"
	"storefront-service/internal/repository"
	"storefront-service/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func catalog(version int64, categories ...string) *domain.CatalogConfig {
	cfg := domain.NewCatalogConfig()
	cfg.Categories = append(cfg.Categories, categories...)
	cfg.Version = version
	return cfg
}

func TestCatalogService_RegisterCategoryIfNew(t *testing.T) {
	tests := []struct {
		name          string
		category      string
		setupMocks    func(*mocks.MockCatalogRepository)
		expectedError error
		expectedCats  []string
		expectedSaves int
	}{
		{
			name:     "new category is appended",
			category: "Hats",
			setupMocks: func(repo *mocks.MockCatalogRepository) {
				repo.On("Load", mock.Anything).Return(catalog(1, "Shoes"), nil).Once()
				repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.CatalogConfig")).Return(nil).Once()
			},
			expectedCats:  []string{"Shoes", "Hats"},
			expectedSaves: 1,
		},
		{
			name:     "existing category is not saved again",
			category: "Shoes",
			setupMocks: func(repo *mocks.MockCatalogRepository) {
				repo.On("Load", mock.Anything).Return(catalog(1, "Shoes"), nil).Once()
			},
			expectedCats: []string{"Shoes"},
		},
		{
			name:     "conflict reloads and reapplies once",
			category: "Hats",
			setupMocks: func(repo *mocks.MockCatalogRepository) {
				repo.On("Load", mock.Anything).Return(catalog(1), nil).Once()
				repo.On("Load", mock.Anything).Return(catalog(2, "Bags"), nil).Once()
				repo.On("Save", mock.Anything, mock.Anything).Return(domain.ErrConcurrentModification).Once()
				repo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
			},
			expectedCats:  []string{"Bags", "Hats"},
			expectedSaves: 2,
		},
		{
			name:     "conflict reload finds the category already added",
			category: "Hats",
			setupMocks: func(repo *mocks.MockCatalogRepository) {
				repo.On("Load", mock.Anything).Return(catalog(1), nil).Once()
				repo.On("Load", mock.Anything).Return(catalog(2, "Hats"), nil).Once()
				repo.On("Save", mock.Anything, mock.Anything).Return(domain.ErrConcurrentModification).Once()
			},
			expectedCats:  []string{"Hats"},
			expectedSaves: 1,
		},
		{
			name:     "second conflict propagates",
			category: "Hats",
			setupMocks: func(repo *mocks.MockCatalogRepository) {
				repo.On("Load", mock.Anything).Return(catalog(1), nil).Twice()
				repo.On("Save", mock.Anything, mock.Anything).Return(domain.ErrConcurrentModification).Twice()
			},
			expectedError: domain.ErrConcurrentModification,
			expectedSaves: 2,
		},
		{
			name:     "store unavailable on load",
			category: "Hats",
			setupMocks: func(repo *mocks.MockCatalogRepository) {
				repo.On("Load", mock.Anything).Return(nil, domain.ErrStoreUnavailable).Once()
			},
			expectedError: domain.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockCatalogRepository)
			tt.setupMocks(repo)

			service := NewCatalogService(repo, quietPublisher())
			cfg, err := service.RegisterCategoryIfNew(context.Background(), tt.category)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedCats, cfg.Categories)
			}
			repo.AssertNumberOfCalls(t, "Save", tt.expectedSaves)
			repo.AssertExpectations(t)
		})
	}
}

func TestCatalogService_RegisterPublishesEvent(t *testing.T) {
	repo := new(mocks.MockCatalogRepository)
	repo.On("Load", mock.Anything).Return(catalog(4), nil).Once()
	repo.On("Save", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.CatalogConfig).Version++
	}).Once()

	published := make(chan domain.CategoryAddedEvent, 1)
	pub := new(mocks.MockPublisher)
	pub.On("Publish", mock.Anything, domain.EventCategoryAdded, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		published <- args.Get(2).(domain.CategoryAddedEvent)
	}).Once()

	_, err := NewCatalogService(repo, pub).RegisterCategoryIfNew(context.Background(), "Hats")
	require.NoError(t, err)

	evt := <-published
	assert.Equal(t, "Hats", evt.Category)
	assert.Equal(t, int64(5), evt.Version)
}

func TestCatalogService_UpdateBanner(t *testing.T) {
	t.Run("saves changed banner", func(t *testing.T) {
		repo := new(mocks.MockCatalogRepository)
		repo.On("Load", mock.Anything).Return(catalog(1), nil).Once()
		repo.On("Save", mock.Anything, mock.MatchedBy(func(cfg *domain.CatalogConfig) bool {
			return cfg.Banner == "summer.png"
		})).Return(nil).Once()

		err := NewCatalogService(repo, quietPublisher()).UpdateBanner(context.Background(), "summer.png")

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("unchanged banner is not saved", func(t *testing.T) {
		repo := new(mocks.MockCatalogRepository)
		cfg := catalog(1)
		cfg.Banner = "summer.png"
		repo.On("Load", mock.Anything).Return(cfg, nil).Once()

		err := NewCatalogService(repo, quietPublisher()).UpdateBanner(context.Background(), "summer.png")

		assert.NoError(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("banner survives a concurrent category addition", func(t *testing.T) {
		store := seedStore(t)
		catalogSvc := NewCatalogService(store.Catalog, quietPublisher())
		_, err := catalogSvc.RegisterCategoryIfNew(context.Background(), "Shoes")
		require.NoError(t, err)

		require.NoError(t, catalogSvc.UpdateBanner(context.Background(), "summer.png"))

		banner, err := catalogSvc.Banner(context.Background())
		require.NoError(t, err)
		cats, err := catalogSvc.Categories(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "summer.png", banner)
		assert.Equal(t, []string{"Shoes"}, cats)
	})
}

func TestCatalogService_LazyDefaults(t *testing.T) {
	store := seedStore(t)
	service := NewCatalogService(store.Catalog, quietPublisher())

	cats, err := service.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{}, cats)

	banner, err := service.Banner(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", banner)
}

// gatedCatalog holds its first Load after reading, until release is closed,
// and then honours the caller's context like a real driver would.
type gatedCatalog struct {
	repository.CatalogRepository
	loads   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func newGatedCatalog(repo repository.CatalogRepository) *gatedCatalog {
	return &gatedCatalog{
		CatalogRepository: repo,
		started:           make(chan struct{}),
		release:           make(chan struct{}),
	}
}

func (g *gatedCatalog) Load(ctx context.Context) (*domain.CatalogConfig, error) {
	cfg, err := g.CatalogRepository.Load(ctx)
	if g.loads.Add(1) == 1 {
		close(g.started)
		<-g.release
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	return cfg, err
}

type categoriesResult struct {
	cats []string
	err  error
}

func readCategories(ctx context.Context, svc *CatalogService) <-chan categoriesResult {
	out := make(chan categoriesResult, 1)
	go func() {
		cats, err := svc.Categories(ctx)
		out <- categoriesResult{cats, err}
	}()
	return out
}

func TestCatalogService_CancelledReaderDoesNotFailOthers(t *testing.T) {
	store := memory.NewStore()
	_, err := NewCatalogService(store.Catalog, quietPublisher()).RegisterCategoryIfNew(context.Background(), "Shoes")
	require.NoError(t, err)

	repo := newGatedCatalog(store.Catalog)
	svc := NewCatalogService(repo, quietPublisher())

	ctxA, cancelA := context.WithCancel(context.Background())
	first := readCategories(ctxA, svc)
	<-repo.started

	second := readCategories(context.Background(), svc)
	cancelA()

	resA := <-first
	assert.ErrorIs(t, resA.err, context.Canceled)

	close(repo.release)
	resB := <-second
	require.NoError(t, resB.err)
	assert.Equal(t, []string{"Shoes"}, resB.cats)
}

func TestCatalogService_RegistrationVisibleToLaterRead(t *testing.T) {
	store := memory.NewStore()
	repo := newGatedCatalog(store.Catalog)
	svc := NewCatalogService(repo, quietPublisher())

	stale := readCategories(context.Background(), svc)
	<-repo.started

	_, err := svc.RegisterCategoryIfNew(context.Background(), "Hats")
	require.NoError(t, err)

	select {
	case res := <-readCategories(context.Background(), svc):
		require.NoError(t, res.err)
		assert.Equal(t, []string{"Hats"}, res.cats)
	case <-time.After(2 * time.Second):
		t.Fatal("read after registration waited on a load started before it")
	}

	close(repo.release)
	res := <-stale
	require.NoError(t, res.err)
	assert.Empty(t, res.cats)
}
