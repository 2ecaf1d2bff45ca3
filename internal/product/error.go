package product

import "errors"

var (
	// -- Validation & Input --
	ErrMissingCode   = errors.New("product code is required")
	ErrInvalidPrice  = errors.New("product price must be greater than zero")
	ErrNegativeStock = errors.New("product stock cannot be negative")
)
