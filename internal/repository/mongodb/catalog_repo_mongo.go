package mongodb

import (
	"context"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type catalogRepo struct {
	coll *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) repository.CatalogRepository {
	return &catalogRepo{coll: db.Collection(catalogColl)}
}

func (r *catalogRepo) Load(ctx context.Context) (*domain.CatalogConfig, error) {
	filter := bson.M{"_id": domain.CatalogConfigID}
	update := bson.M{"$setOnInsert": bson.M{
		"banner":     "",
		"categories": bson.A{},
		"version":    int64(0),
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var cfg domain.CatalogConfig
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&cfg)
	if mongo.IsDuplicateKeyError(err) {
		// Two first-time upserts raced; the other one inserted the document.
		err = r.coll.FindOne(ctx, filter).Decode(&cfg)
	}
	if err != nil {
		log.Error().Err(err).Msg("load catalog config")
		return nil, storeError("load catalog config", err)
	}

	cfg.ID = domain.CatalogConfigID
	if cfg.Categories == nil {
		cfg.Categories = []string{}
	}
	return &cfg, nil
}

func (r *catalogRepo) Save(ctx context.Context, cfg *domain.CatalogConfig) error {
	categories := cfg.Categories
	if categories == nil {
		categories = []string{}
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": domain.CatalogConfigID, "version": cfg.Version},
		bson.M{
			"$set": bson.M{"banner": cfg.Banner, "categories": categories},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		log.Error().Err(err).Int64("version", cfg.Version).Msg("save catalog config")
		return storeError("save catalog config", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrConcurrentModification
	}
	cfg.Version++
	return nil
}
