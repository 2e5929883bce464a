package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-service/internal/config"
	"storefront-service/internal/controllers/http"
	mongoinfra "storefront-service/internal/infra/mongodb"
	mmysql "storefront-service/internal/infra/mysql"
	"storefront-service/internal/infra/rabbitmq"
	cache "storefront-service/internal/infra/redis"
	"storefront-service/internal/logger"
	"storefront-service/internal/repository"
	"storefront-service/internal/repository/memory"
	mongorepo "storefront-service/internal/repository/mongodb"
	mysqlrepo "storefront-service/internal/repository/mysql"
	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("storefront service")
	}
}

// run owns every resource it opens; deferred closes run before main exits.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Setup(cfg.LogLevel, cfg.IsDevelopment())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storeOpener(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn().Err(err).Msg("close store")
		}
	}()

	var publisher rabbitmq.PublisherInterface = rabbitmq.NopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			return fmt.Errorf("init publisher: %w", err)
		}
		defer p.Close()
		publisher = p
	} else {
		log.Warn().Msg("RABBITMQ_URL not set, events are dropped")
	}

	var productCache cache.CacheInterface = cache.NopCache{}
	if cfg.Redis.Addr() != "" {
		client, err := cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		c := cache.NewCache(client, cfg.Redis.TTL)
		defer c.Close()
		productCache = c
	} else {
		log.Warn().Msg("REDIS_HOST not set, product cache disabled")
	}

	catalog := services.NewCatalogService(store.Catalog, publisher)
	handler := http.NewHandler(
		services.NewAccountService(store.Accounts),
		catalog,
		services.NewProductService(store.Products, catalog, productCache),
		services.NewCartService(store.Accounts, store.Carts),
		services.NewCheckoutService(store.Carts, store.Orders, publisher),
		services.NewOrderService(store.Orders),
	)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &nethttp.Server{
		Addr:              ":" + cfg.Port,
		Handler:           http.NewRouter(handler, cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("starting storefront service")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// storeOpener is replaced in tests.
var storeOpener = openStore

func openStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		conn, err := mongoinfra.NewMongo(ctx, cfg.Mongo)
		if err != nil {
			return repository.Store{}, err
		}
		return mongorepo.NewStore(conn), nil
	case config.DriverMemory:
		log.Warn().Msg("using in-memory store, data is lost on restart")
		return memory.NewStore(), nil
	default:
		db, err := mmysql.NewMySQL(cfg.MySQL)
		if err != nil {
			return repository.Store{}, err
		}
		return mysqlrepo.NewStore(db), nil
	}
}
