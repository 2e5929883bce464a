package mongodb

import (
	"context"
	"time"

	"storefront-service/internal/config"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionAccounts = "accounts"
	CollectionProducts = "products"
	CollectionCatalog  = "catalog_configs"
	CollectionCarts    = "cart_lines"
	CollectionOrders   = "orders"
)

// Conn is an open deployment. Transactions is set when the deployment is a
// replica set or a sharded cluster; standalone servers reject multi-document
// transactions.
type Conn struct {
	Client       *mongo.Client
	DB           *mongo.Database
	Transactions bool
}

// NewMongo connects, pings the primary and makes sure the indexes the
// repositories depend on exist.
func NewMongo(ctx context.Context, cfg config.MongoConfig) (*Conn, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(100).
		SetMinPoolSize(5).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	db := client.Database(cfg.Database)
	if err := EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	txn, err := SupportsTransactions(ctx, db)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	log.Info().Str("database", cfg.Database).Bool("transactions", txn).Msg("connected to mongodb")
	return &Conn{Client: client, DB: db, Transactions: txn}, nil
}

// SupportsTransactions asks the server for its topology through hello.
func SupportsTransactions(ctx context.Context, db *mongo.Database) (bool, error) {
	var hello struct {
		SetName string `bson:"setName"`
		Msg     string `bson:"msg"`
	}
	if err := db.RunCommand(ctx, bson.D{{Key: "hello", Value: 1}}).Decode(&hello); err != nil {
		return false, err
	}
	return hello.SetName != "" || hello.Msg == "isdbgrid", nil
}

// EnsureIndexes creates the unique keys that enforce one account per email
// and at most one order per cart line.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	models := map[string][]mongo.IndexModel{
		CollectionAccounts: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CollectionOrders: {
			{Keys: bson.D{{Key: "lineId", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		CollectionCarts: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: 1}}},
		},
		CollectionProducts: {
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
	}
	for coll, idx := range models {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, idx); err != nil {
			log.Error().Err(err).Str("collection", coll).Msg("create indexes")
			return err
		}
	}
	return nil
}
