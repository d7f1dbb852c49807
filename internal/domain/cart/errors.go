package cart

import "errors"

var (
	ErrOutOfStock      = errors.New("requested quantity is out of stock")
	ErrProductNotFound = errors.New("product not found in cart")
	ErrInvalidAmount   = errors.New("product amount must be at least 1")

	// ErrStockRelease is non-fatal: the local mutation already took effect
	// and stands, only the compensating remote stock release failed.
	ErrStockRelease = errors.New("reserved stock release failed")
)
