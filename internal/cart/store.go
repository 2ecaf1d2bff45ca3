package cart

import (
	"strconv"
	"sync"

	"ecomarket/internal/logger"
	"ecomarket/internal/product"

	"go.uber.org/zap"
)

// Catalog is the stock view the cart validates against. It is the cached
// snapshot at the moment of mutation; drift between mutations is closed by
// reconciliation.
type Catalog interface {
	Lookup(code string) (product.Product, bool)
}

// Store is the session-scoped cart: an ordered list of lines, oldest added
// first, one line per product code. All quantity math is clamped, never
// failing; the only explicit failure is AddToCart refusing to exceed stock.
type Store struct {
	catalog Catalog

	mu    sync.RWMutex
	lines []Line
	open  bool
}

func NewStore(catalog Catalog) *Store {
	return &Store{catalog: catalog}
}

// AddToCart adds one unit of the product, creating the line with snapshotted
// display fields when it does not exist yet. Fails with ErrOutOfStock when
// one more unit would exceed the cached stock, leaving the cart unchanged.
// A successful add opens the cart.
func (s *Store) AddToCart(code string) (Line, error) {
	p, ok := s.catalog.Lookup(code)
	stock := 0
	if ok {
		stock = p.StockQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(code)
	existingQty := 0
	if idx >= 0 {
		existingQty = s.lines[idx].Quantity
	}

	if existingQty+1 > stock {
		logger.L().Debug("add to cart rejected",
			zap.String("code", code),
			zap.Int("in_cart", existingQty),
			zap.Int("stock", stock),
		)
		return Line{}, ErrOutOfStock
	}

	var line Line
	if idx >= 0 {
		s.lines[idx].Quantity = existingQty + 1
		line = s.lines[idx]
	} else {
		line = newLine(p, 1)
		s.lines = append(s.lines, line)
	}
	s.open = true
	return line, nil
}

// RemoveFromCart deletes the line if present; calling it again is a no-op.
func (s *Store) RemoveFromCart(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOf(code); idx >= 0 {
		s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	}
}

// IncrementQuantity adds one unit, silently capped at the cached stock.
// This is a UI affordance, not a validated action, so no error is signaled.
func (s *Store) IncrementQuantity(code string) {
	stock := s.stockOf(code)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(code)
	if idx < 0 || s.lines[idx].Quantity >= stock {
		return
	}
	s.lines[idx].Quantity++
}

// DecrementQuantity removes one unit, never going below one. Removal goes
// through RemoveFromCart or SetQuantity(code, "0").
func (s *Store) DecrementQuantity(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(code)
	if idx < 0 {
		return
	}
	if s.lines[idx].Quantity > 1 {
		s.lines[idx].Quantity--
	}
}

// SetQuantity sets the line's quantity from raw user input. Malformed or
// negative input is rejected silently, zero removes the line, anything else
// is clamped to the cached stock.
func (s *Store) SetQuantity(code, rawQuantity string) {
	requested, err := strconv.Atoi(rawQuantity)
	if err != nil || requested < 0 {
		return
	}

	if requested == 0 {
		s.RemoveFromCart(code)
		return
	}

	stock := s.stockOf(code)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(code)
	if idx < 0 {
		return
	}
	if requested > stock {
		requested = stock
	}
	s.lines[idx].Quantity = requested
}

// Lines returns a copy of the cart lines in insertion order.
func (s *Store) Lines() []Line {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Total is Σ price snapshot × quantity, recomputed on every read.
func (s *Store) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64
	for _, l := range s.lines {
		total += l.UnitPrice * float64(l.Quantity)
	}
	return total
}

// ItemCount is Σ quantity, recomputed on every read.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	for _, l := range s.lines {
		count += l.Quantity
	}
	return count
}

// Clear empties the cart and closes it.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.open = false
}

func (s *Store) IsOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.open
}

func (s *Store) Open() {
	s.mu.Lock()
	s.open = true
	s.mu.Unlock()
}

func (s *Store) Close() {
	s.mu.Lock()
	s.open = false
	s.mu.Unlock()
}

func (s *Store) stockOf(code string) int {
	p, ok := s.catalog.Lookup(code)
	if !ok {
		return 0
	}
	return p.StockQuantity
}

// indexOf must be called with the lock held.
func (s *Store) indexOf(code string) int {
	for i, l := range s.lines {
		if l.ProductCode == code {
			return i
		}
	}
	return -1
}
