package mongodb

import (
	"errors"
	"fmt"

	"storefront-service/internal/domain"

	"go.mongodb.org/mongo-driver/mongo"
)

// storeError maps driver errors onto the domain error kinds.
func storeError(op string, err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return domain.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}
