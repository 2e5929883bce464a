package domain

import "errors"

var (
	ErrNotFound               = errors.New("not found")
	ErrDuplicate              = errors.New("duplicate resource")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrStoreUnavailable       = errors.New("store unavailable")
	ErrConcurrentModification = errors.New("concurrent modification")

	// ErrLineAlreadyConverted is returned by the per-line conversion unit when the
	// cart line no longer exists, i.e. another checkout already turned it into an order.
	ErrLineAlreadyConverted = errors.New("cart line already converted")
)
