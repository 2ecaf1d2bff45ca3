package cart

import (
	"testing"

	"ecomarket/internal/product"

	"github.com/stretchr/testify/assert"
)

func TestReconcile_ClampsToReducedStock(t *testing.T) {
	// Cart has P01 quantity 5; admin sets P01 stock to 2.
	store := NewStore(catalogWith("P01", 5))
	store.Restore([]Line{{ProductCode: "P01", Quantity: 5, UnitPrice: 1500, Name: "Producto P01"}})

	store.Reconcile([]product.Product{
		{Code: "P01", Name: "Producto P01", UnitPrice: 1500, StockQuantity: 2},
	})

	lines := store.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestReconcile_DropsDeletedProduct(t *testing.T) {
	// Cart has P01 qty 2 and P02 qty 1; admin deletes P02.
	store := NewStore(stubCatalog{})
	store.Restore([]Line{
		{ProductCode: "P01", Quantity: 2, UnitPrice: 1500},
		{ProductCode: "P02", Quantity: 1, UnitPrice: 2500},
	})

	store.Reconcile([]product.Product{
		{Code: "P01", UnitPrice: 1500, StockQuantity: 10},
	})

	lines := store.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, "P01", lines[0].ProductCode)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestReconcile_DropsZeroStockLines(t *testing.T) {
	store := NewStore(stubCatalog{})
	store.Restore([]Line{{ProductCode: "P01", Quantity: 1}})

	store.Reconcile([]product.Product{
		{Code: "P01", UnitPrice: 1500, StockQuantity: 0},
	})

	assert.Empty(t, store.Lines())
}

func TestReconcile_RefreshesSnapshotFields(t *testing.T) {
	store := NewStore(stubCatalog{})
	store.Restore([]Line{{
		ProductCode: "P01", Quantity: 2,
		UnitPrice: 1500, Name: "Old name", ImageRef: "/old.png", UnitLabel: "kg",
	}})

	store.Reconcile([]product.Product{{
		Code: "P01", Name: "New name", UnitPrice: 1990,
		ImageRef: "/new.png", UnitLabel: "bolsa", StockQuantity: 10,
	}})

	line := store.Lines()[0]
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, "New name", line.Name)
	assert.Equal(t, 1990.0, line.UnitPrice)
	assert.Equal(t, "/new.png", line.ImageRef)
	assert.Equal(t, "bolsa", line.UnitLabel)
}

// Clamp law: after reconciliation no line exceeds the refreshed stock, and
// zero-stock or missing products have no line at all.
func TestReconcile_ClampLaw(t *testing.T) {
	store := NewStore(stubCatalog{})
	store.Restore([]Line{
		{ProductCode: "P01", Quantity: 9},
		{ProductCode: "P02", Quantity: 4},
		{ProductCode: "P03", Quantity: 1},
		{ProductCode: "P04", Quantity: 2},
	})

	snapshot := []product.Product{
		{Code: "P01", UnitPrice: 100, StockQuantity: 3},
		{Code: "P02", UnitPrice: 100, StockQuantity: 4},
		{Code: "P03", UnitPrice: 100, StockQuantity: 0},
		// P04 absent.
	}
	store.Reconcile(snapshot)

	stocks := map[string]int{}
	for _, p := range snapshot {
		stocks[p.Code] = p.StockQuantity
	}

	lines := store.Lines()
	assert.Len(t, lines, 2)
	for _, l := range lines {
		assert.Positive(t, l.Quantity)
		assert.LessOrEqual(t, l.Quantity, stocks[l.ProductCode])
	}
}

func TestReconcile_PreservesLineOrder(t *testing.T) {
	store := NewStore(stubCatalog{})
	store.Restore([]Line{
		{ProductCode: "P03", Quantity: 1},
		{ProductCode: "P01", Quantity: 1},
		{ProductCode: "P02", Quantity: 1},
	})

	store.Reconcile([]product.Product{
		{Code: "P01", UnitPrice: 100, StockQuantity: 5},
		{Code: "P02", UnitPrice: 100, StockQuantity: 5},
		{Code: "P03", UnitPrice: 100, StockQuantity: 5},
	})

	lines := store.Lines()
	assert.Equal(t, "P03", lines[0].ProductCode)
	assert.Equal(t, "P01", lines[1].ProductCode)
	assert.Equal(t, "P02", lines[2].ProductCode)
}
