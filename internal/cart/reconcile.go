package cart

import (
	"ecomarket/internal/logger"
	"ecomarket/internal/product"

	"go.uber.org/zap"
)

// Reconcile re-aligns the cart with a freshly replaced catalog snapshot.
// For every line: drop it when its product disappeared or its stock hit
// zero, clamp the quantity when it exceeds the new stock, and refresh the
// display snapshot otherwise. The new line list is swapped in atomically,
// so readers never observe a line violating the stock invariant.
//
// Registered as an inventory.Listener, which runs it synchronously on
// every snapshot replacement.
func (s *Store) Reconcile(products []product.Product) {
	byCode := make(map[string]product.Product, len(products))
	for _, p := range products {
		byCode[p.Code] = p
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Line, 0, len(s.lines))
	for _, line := range s.lines {
		p, ok := byCode[line.ProductCode]
		if !ok || p.StockQuantity == 0 {
			logger.L().Debug("cart line evicted",
				zap.String("code", line.ProductCode),
				zap.Bool("product_missing", !ok),
			)
			continue
		}

		if line.Quantity > p.StockQuantity {
			line.Quantity = p.StockQuantity
		}
		next = append(next, line.refreshSnapshot(p))
	}
	s.lines = next
}
