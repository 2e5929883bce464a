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

type accountRepo struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) repository.AccountRepository {
	return &accountRepo{coll: db.Collection(accountsColl)}
}

func (r *accountRepo) Create(ctx context.Context, a *domain.Account) error {
	a.CreatedAt = time.Now().UTC()
	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		if !mongo.IsDuplicateKeyError(err) {
			log.Error().Err(err).Str("email", a.Email).Msg("create account")
		}
		return storeError("create account", err)
	}
	return nil
}

func (r *accountRepo) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *accountRepo) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *accountRepo) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	var a domain.Account
	if err := r.coll.FindOne(ctx, filter).Decode(&a); err != nil {
		return nil, storeError("find account", err)
	}
	return &a, nil
}

func (r *accountRepo) FindAll(ctx context.Context) ([]domain.Account, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		log.Error().Err(err).Msg("find accounts")
		return nil, storeError("find accounts", err)
	}
	out := []domain.Account{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeError("decode accounts", err)
	}
	return out, nil
}
