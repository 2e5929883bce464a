package mongodb

import (
	"context"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type cartRepo struct {
	coll *mongo.Collection
}

func NewCartRepository(db *mongo.Database) repository.CartRepository {
	return &cartRepo{coll: db.Collection(cartsColl)}
}

func (r *cartRepo) Add(ctx context.Context, line *domain.CartLine) error {
	line.CreatedAt = time.Now().UTC()
	if _, err := r.coll.InsertOne(ctx, line); err != nil {
		log.Error().Err(err).Str("account_id", line.AccountID).Msg("add cart line")
		return storeError("add cart line", err)
	}
	return nil
}

func (r *cartRepo) ListByAccount(ctx context.Context, accountID string) ([]domain.CartLine, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"userId": accountID}, opts)
	if err != nil {
		log.Error().Err(err).Str("account_id", accountID).Msg("list cart lines")
		return nil, storeError("list cart lines", err)
	}
	out := []domain.CartLine{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeError("decode cart lines", err)
	}
	return out, nil
}

func (r *cartRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Error().Err(err).Str("line_id", id).Msg("delete cart line")
		return false, storeError("delete cart line", err)
	}
	return res.DeletedCount > 0, nil
}
