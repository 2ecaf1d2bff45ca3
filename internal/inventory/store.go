package inventory

import (
	"context"
	"strconv"
	"sync"

	"ecomarket/internal/logger"
	"ecomarket/internal/product"

	"go.uber.org/zap"
)

// Listener is invoked synchronously with the new snapshot every time the
// product cache is replaced.
type Listener func(products []product.Product)

// Store holds the authoritative local view of the catalog and keeps it in
// sync with the remote inventory service. The cache is one atomically
// replaceable snapshot: readers never observe a partially updated list.
type Store struct {
	remote Remote

	mu       sync.RWMutex
	products []product.Product

	listeners []Listener
}

func NewStore(remote Remote) *Store {
	return &Store{remote: remote}
}

// Subscribe registers a listener for snapshot replacements. Must be called
// during wiring, before the store starts serving mutations.
func (s *Store) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

// ListProducts returns the current cached list. It never triggers network
// I/O on its own.
func (s *Store) ListProducts() []product.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]product.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Lookup returns the cached product with the given code, if any.
func (s *Store) Lookup(code string) (product.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.Code == code {
			return p, true
		}
	}
	return product.Product{}, false
}

// StockOf returns the cached stock for code, or 0 when the product is
// unknown.
func (s *Store) StockOf(code string) int {
	p, ok := s.Lookup(code)
	if !ok {
		return 0
	}
	return p.StockQuantity
}

// Refresh fetches the full product list and replaces the cache wholesale.
// On failure the cache is left unchanged.
func (s *Store) Refresh(ctx context.Context) error {
	products, err := s.remote.FetchAll(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("catalog refresh failed", zap.Error(err))
		return err
	}

	s.replace(products)
	return nil
}

// replace swaps in the new snapshot and notifies listeners. Listeners run
// synchronously but outside the store's lock, so they may read the store.
func (s *Store) replace(products []product.Product) {
	s.mu.Lock()
	s.products = products
	s.mu.Unlock()

	for _, l := range s.listeners {
		l(products)
	}
}

// Create sends a create request to the remote service. Code uniqueness is
// not checked locally; the service is authoritative and a duplicate comes
// back as a RejectionError. On success the cache is refreshed.
func (s *Store) Create(ctx context.Context, p product.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.remote.Create(ctx, p); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("product created", zap.String("code", p.Code))
	return s.Refresh(ctx)
}

// Update sends a full-replace request keyed by code. On success the cache
// is refreshed; on failure it is left unchanged. No compare-and-swap is
// offered by the remote contract, so concurrent updates for the same code
// are last-writer-wins.
func (s *Store) Update(ctx context.Context, code string, p product.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.remote.Update(ctx, code, p); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("product updated",
		zap.String("code", code),
		zap.Int("stock", p.StockQuantity),
	)
	return s.Refresh(ctx)
}

// Delete removes the product on the remote service, then refreshes.
func (s *Store) Delete(ctx context.Context, code string) error {
	if err := s.remote.Delete(ctx, code); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("product deleted", zap.String("code", code))
	return s.Refresh(ctx)
}

// SetStock is the admin stock editor: it parses the raw input, validates
// it, and pushes a full product update with the new quantity. Setting the
// current value again is rejected so the UI can tell the admin nothing
// happened.
func (s *Store) SetStock(ctx context.Context, code, rawQuantity string) (product.Product, error) {
	quantity, err := strconv.Atoi(rawQuantity)
	if err != nil || quantity < 0 {
		return product.Product{}, ErrInvalidStock
	}

	current, ok := s.Lookup(code)
	if !ok {
		return product.Product{}, ErrProductNotFound
	}
	if current.StockQuantity == quantity {
		return product.Product{}, ErrStockUnchanged
	}

	updated := current
	updated.StockQuantity = quantity
	if err := s.Update(ctx, code, updated); err != nil {
		return product.Product{}, err
	}
	return updated, nil
}

// Bootstrap fills the catalog at startup. If the remote service is
// unreachable the seed list is swapped in locally so the storefront still
// renders; if the service is reachable but empty, the seed is pushed
// through the normal create path.
func (s *Store) Bootstrap(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		logger.FromCtx(ctx).Warn("inventory service unreachable, using seed catalog", zap.Error(err))
		s.replace(product.Seed())
		return
	}

	if len(s.ListProducts()) > 0 {
		return
	}

	for _, p := range product.Seed() {
		if err := s.remote.Create(ctx, p); err != nil {
			logger.FromCtx(ctx).Warn("failed seeding product",
				zap.String("code", p.Code),
				zap.Error(err),
			)
		}
	}
	if err := s.Refresh(ctx); err != nil {
		s.replace(product.Seed())
	}
}
