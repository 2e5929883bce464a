// Package mongodb implements the repositories on a MongoDB database. Every
// entity lives in its own collection and is keyed by its string id.
package mongodb

import (
	"context"
	"time"

	mongoinfra "storefront-service/internal/infra/mongodb"
	"storefront-service/internal/repository"
)

func NewStore(conn *mongoinfra.Conn) repository.Store {
	db := conn.DB
	return repository.Store{
		Accounts: NewAccountRepository(db),
		Catalog:  NewCatalogRepository(db),
		Products: NewProductRepository(db),
		Carts:    NewCartRepository(db),
		Orders:   NewOrderRepository(db, conn.Transactions),
		Close: func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return conn.Client.Disconnect(ctx)
		},
	}
}

var (
	accountsColl = mongoinfra.CollectionAccounts
	productsColl = mongoinfra.CollectionProducts
	catalogColl  = mongoinfra.CollectionCatalog
	cartsColl    = mongoinfra.CollectionCarts
	ordersColl   = mongoinfra.CollectionOrders
)
