package inventory

import "errors"

var (
	// -- Remote service --
	ErrNetwork = errors.New("could not reach the inventory service")

	// -- Resource state --
	ErrProductNotFound = errors.New("product not found")

	// -- Stock editor input --
	ErrInvalidStock   = errors.New("stock must be a non-negative integer")
	ErrStockUnchanged = errors.New("stock equals the current value")
)

// RejectionError carries a rejection message supplied by the inventory
// service (e.g. a duplicate product code). Surfaced to callers verbatim.
type RejectionError struct {
	Message string
}

func (e *RejectionError) Error() string {
	return e.Message
}

// IsRejection reports whether err is a server-side rejection rather than a
// transport failure, and returns its message when it is.
func IsRejection(err error) (string, bool) {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej.Message, true
	}
	return "", false
}
