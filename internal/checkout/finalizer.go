package checkout

import (
	"context"
	"sync"

	"ecomarket/internal/cart"
	"ecomarket/internal/logger"
	"ecomarket/internal/product"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Inventory is the slice of the inventory store the finalizer needs.
type Inventory interface {
	Lookup(code string) (product.Product, bool)
	Update(ctx context.Context, code string, p product.Product) error
}

// OrderResult reports the outcome of one finalize attempt. Transient, never
// persisted.
type OrderResult struct {
	OK        bool   `json:"ok"`
	Message   string `json:"message"`
	Reference string `json:"reference,omitempty"`
}

// Finalizer converts the cart into per-product stock deductions and clears
// the cart when every deduction lands.
type Finalizer struct {
	cart      *cart.Store
	inventory Inventory
}

func NewFinalizer(c *cart.Store, inv Inventory) *Finalizer {
	return &Finalizer{cart: c, inventory: inv}
}

// Finalize issues one stock update per cart line. All updates are issued
// before any is awaited; their server-side order is unspecified. On full
// success the cart is emptied and closed. On any failure the first failing
// line's message is reported and the cart is left as it was; updates that
// already succeeded are NOT rolled back, so a retry re-deducts those lines.
// The remote contract offers no batch endpoint or idempotency key to close
// that gap; callers should refresh before retrying.
func (f *Finalizer) Finalize(ctx context.Context) OrderResult {
	lines := f.cart.Lines()
	if len(lines) == 0 {
		return OrderResult{OK: false, Message: cart.ErrEmptyCart.Error()}
	}

	reference := uuid.New().String()
	log := logger.FromCtx(ctx).With(
		zap.String("order_reference", reference),
		zap.Int("line_count", len(lines)),
	)

	errs := make([]error, len(lines))
	var wg sync.WaitGroup

	for i, line := range lines {
		p, ok := f.inventory.Lookup(line.ProductCode)
		if !ok {
			// Already reconciled away on the catalog side; nothing to deduct.
			continue
		}

		nextStock := p.StockQuantity - line.Quantity
		if nextStock < 0 {
			nextStock = 0
		}

		updated := p
		updated.StockQuantity = nextStock

		wg.Add(1)
		go func(i int, code string, updated product.Product) {
			defer wg.Done()
			errs[i] = f.inventory.Update(ctx, code, updated)
		}(i, line.ProductCode, updated)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			log.Error("order finalization failed",
				zap.String("code", lines[i].ProductCode),
				zap.Error(err),
			)
			return OrderResult{OK: false, Message: err.Error(), Reference: reference}
		}
	}

	f.cart.Clear()
	log.Info("order finalized")
	return OrderResult{
		OK:        true,
		Message:   "Order confirmed and stock updated.",
		Reference: reference,
	}
}
