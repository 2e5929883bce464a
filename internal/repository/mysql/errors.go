package mysql

import (
	"errors"
	"fmt"

	"storefront-service/internal/domain"

	"gorm.io/gorm"
)

// storeError maps gorm errors onto the domain error kinds.
func storeError(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}
