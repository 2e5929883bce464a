package mysql

import (
	"storefront-service/internal/repository"

	"gorm.io/gorm"
)

// NewStore wires every gorm repository onto one connection pool.
func NewStore(db *gorm.DB) repository.Store {
	return repository.Store{
		Accounts: NewAccountRepository(db),
		Catalog:  NewCatalogRepository(db),
		Products: NewProductRepository(db),
		Carts:    NewCartRepository(db),
		Orders:   NewOrderRepository(db),
		Close: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}
