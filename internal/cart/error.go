package cart

import "errors"

var (
	// -- Stock validation --
	ErrOutOfStock = errors.New("not enough stock to add more units")

	// -- Checkout preconditions --
	ErrEmptyCart = errors.New("the cart is empty")

	// -- Input --
	// ErrInvalidQuantity is deliberately never returned by SetQuantity
	// (malformed input is rejected silently); it exists for callers that
	// want to pre-validate.
	ErrInvalidQuantity = errors.New("quantity must be a non-negative integer")
)
