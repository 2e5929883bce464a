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

type productRepo struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) repository.ProductRepository {
	return &productRepo{coll: db.Collection(productsColl)}
}

func (r *productRepo) Create(ctx context.Context, p *domain.Product) error {
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		log.Error().Err(err).Str("product_id", p.ID).Msg("create product")
		return storeError("create product", err)
	}
	return nil
}

func (r *productRepo) Update(ctx context.Context, p *domain.Product) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": p.ID}, bson.M{"$set": bson.M{
		"title":       p.Title,
		"description": p.Description,
		"mainImg":     p.MainImg,
		"carousel":    p.Carousel,
		"category":    p.Category,
		"sizes":       p.Sizes,
		"gender":      p.Gender,
		"price":       p.Price,
		"discount":    p.Discount,
		"updatedAt":   p.UpdatedAt,
	}})
	if err != nil {
		log.Error().Err(err).Str("product_id", p.ID).Msg("update product")
		return storeError("update product", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *productRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, storeError("find product", err)
	}
	return &p, nil
}

func (r *productRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		log.Error().Err(err).Msg("find products")
		return nil, storeError("find products", err)
	}
	out := []domain.Product{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeError("decode products", err)
	}
	return out, nil
}
