package mongodb

import (
	"context"
	"errors"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type orderRepo struct {
	client       *mongo.Client
	orders       *mongo.Collection
	lines        *mongo.Collection
	transactions bool
}

// NewOrderRepository converts cart lines inside a multi-document transaction
// when transactions is set. Without it the order is inserted first and the
// unique lineId index decides which caller converts a line.
func NewOrderRepository(db *mongo.Database, transactions bool) repository.OrderRepository {
	return &orderRepo{
		client:       db.Client(),
		orders:       db.Collection(ordersColl),
		lines:        db.Collection(cartsColl),
		transactions: transactions,
	}
}

func (r *orderRepo) ConvertLine(ctx context.Context, line domain.CartLine, order *domain.Order) error {
	order.CreatedAt = time.Now().UTC()

	var err error
	if r.transactions {
		err = r.convertInTransaction(ctx, line, order)
	} else {
		err = r.convertOrderFirst(ctx, line, order)
	}
	switch {
	case err == nil:
		log.Debug().Str("order_id", order.ID).Str("line_id", line.ID).Msg("cart line converted")
		return nil
	case errors.Is(err, domain.ErrLineAlreadyConverted), mongo.IsDuplicateKeyError(err):
		return domain.ErrLineAlreadyConverted
	default:
		log.Error().Err(err).Str("line_id", line.ID).Str("account_id", line.AccountID).Msg("convert cart line")
		return storeError("convert cart line", err)
	}
}

// convertInTransaction deletes the line and inserts its order atomically.
// Write conflicts between concurrent callers are retried by WithTransaction;
// the retry sees the line gone.
func (r *orderRepo) convertInTransaction(ctx context.Context, line domain.CartLine, order *domain.Order) error {
	sess, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		res, err := r.lines.DeleteOne(sc, bson.M{"_id": line.ID})
		if err != nil {
			return nil, err
		}
		if res.DeletedCount == 0 {
			return nil, domain.ErrLineAlreadyConverted
		}
		_, err = r.orders.InsertOne(sc, order)
		return nil, err
	})
	return err
}

// convertOrderFirst inserts the order before removing the line, so a failure
// at any step leaves the line in the cart or its order in place, never
// neither. A line whose order already exists is removed and reported as
// converted.
func (r *orderRepo) convertOrderFirst(ctx context.Context, line domain.CartLine, order *domain.Order) error {
	if _, err := r.orders.InsertOne(ctx, order); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			r.dropLine(ctx, line)
			return domain.ErrLineAlreadyConverted
		}
		return err
	}
	r.dropLine(ctx, line)
	return nil
}

// dropLine removes a line whose order exists. A failure leaves the line for
// the next checkout, which finds the order and removes it then.
func (r *orderRepo) dropLine(ctx context.Context, line domain.CartLine) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if _, err := r.lines.DeleteOne(ctx, bson.M{"_id": line.ID}); err != nil {
		log.Warn().Err(err).Str("line_id", line.ID).Msg("remove converted cart line")
	}
}

func (r *orderRepo) FindAll(ctx context.Context) ([]domain.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *orderRepo) FindByAccount(ctx context.Context, accountID string) ([]domain.Order, error) {
	return r.find(ctx, bson.M{"userId": accountID})
}

func (r *orderRepo) find(ctx context.Context, filter bson.M) ([]domain.Order, error) {
	cur, err := r.orders.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		log.Error().Err(err).Msg("find orders")
		return nil, storeError("find orders", err)
	}
	out := []domain.Order{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeError("decode orders", err)
	}
	return out, nil
}
