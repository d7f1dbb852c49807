package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrRemoteCall      = errors.New("inventory service request failed")
)
