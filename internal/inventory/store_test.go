package inventory

import (
	"context"
	"testing"

	"ecomarket/internal/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRemote is a mock implementation of the Remote interface
type MockRemote struct {
	mock.Mock
}

func (m *MockRemote) FetchAll(ctx context.Context) ([]product.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.Product), args.Error(1)
}

func (m *MockRemote) Create(ctx context.Context, p product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRemote) Update(ctx context.Context, code string, p product.Product) error {
	args := m.Called(ctx, code, p)
	return args.Error(0)
}

func (m *MockRemote) Delete(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func catalogOf(stocks map[string]int) []product.Product {
	out := make([]product.Product, 0, len(stocks))
	for code, stock := range stocks {
		out = append(out, product.Product{
			Code: code, Name: "Producto " + code, UnitPrice: 1000, StockQuantity: stock,
		})
	}
	return out
}

func TestStore_Refresh(t *testing.T) {
	t.Run("ReplacesCacheAndNotifies", func(t *testing.T) {
		remote := new(MockRemote)
		store := NewStore(remote)

		var notified []product.Product
		store.Subscribe(func(products []product.Product) {
			notified = products
		})

		fetched := catalogOf(map[string]int{"P01": 3})
		remote.On("FetchAll", mock.Anything).Return(fetched, nil)

		err := store.Refresh(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, fetched, store.ListProducts())
		assert.Equal(t, fetched, notified)
	})

	t.Run("FailureLeavesCacheUnchanged", func(t *testing.T) {
		remote := new(MockRemote)
		store := NewStore(remote)

		remote.On("FetchAll", mock.Anything).Return(catalogOf(map[string]int{"P01": 3}), nil).Once()
		assert.NoError(t, store.Refresh(context.Background()))

		remote.On("FetchAll", mock.Anything).Return(nil, ErrNetwork).Once()
		err := store.Refresh(context.Background())

		assert.ErrorIs(t, err, ErrNetwork)
		assert.Len(t, store.ListProducts(), 1)
	})
}

func TestStore_Lookup(t *testing.T) {
	remote := new(MockRemote)
	store := NewStore(remote)

	remote.On("FetchAll", mock.Anything).Return(catalogOf(map[string]int{"P01": 3}), nil)
	assert.NoError(t, store.Refresh(context.Background()))

	p, ok := store.Lookup("P01")
	assert.True(t, ok)
	assert.Equal(t, 3, p.StockQuantity)
	assert.Equal(t, 3, store.StockOf("P01"))

	_, ok = store.Lookup("missing")
	assert.False(t, ok)
	assert.Equal(t, 0, store.StockOf("missing"))
}

func TestStore_Create(t *testing.T) {
	p := product.Product{Code: "P09", Name: "Kale", UnitPrice: 990, StockQuantity: 10}

	t.Run("SuccessTriggersRefresh", func(t *testing.T) {
		remote := new(MockRemote)
		store := NewStore(remote)

		remote.On("Create", mock.Anything, p).Return(nil)
		remote.On("FetchAll", mock.Anything).Return([]product.Product{p}, nil)

		assert.NoError(t, store.Create(context.Background(), p))
		assert.Len(t, store.ListProducts(), 1)
		remote.AssertCalled(t, "FetchAll", mock.Anything)
	})

	t.Run("RejectionLeavesCacheUnchanged", func(t *testing.T) {
		remote := new(MockRemote)
		store := NewStore(remote)

		remote.On("Create", mock.Anything, p).Return(&RejectionError{Message: "duplicate code"})

		err := store.Create(context.Background(), p)

		msg, ok := IsRejection(err)
		assert.True(t, ok)
		assert.Equal(t, "duplicate code", msg)
		assert.Empty(t, store.ListProducts())
		remote.AssertNotCalled(t, "FetchAll", mock.Anything)
	})

	t.Run("InvalidProductNeverReachesRemote", func(t *testing.T) {
		remote := new(MockRemote)
		store := NewStore(remote)

		err := store.Create(context.Background(), product.Product{UnitPrice: 100})

		assert.ErrorIs(t, err, product.ErrMissingCode)
		remote.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestStore_Update(t *testing.T) {
	remote := new(MockRemote)
	store := NewStore(remote)

	updated := product.Product{Code: "P01", Name: "Manzana", UnitPrice: 1500, StockQuantity: 2}

	remote.On("Update", mock.Anything, "P01", updated).Return(nil)
	remote.On("FetchAll", mock.Anything).Return([]product.Product{updated}, nil)

	assert.NoError(t, store.Update(context.Background(), "P01", updated))
	assert.Equal(t, 2, store.StockOf("P01"))
}

func TestStore_Delete(t *testing.T) {
	remote := new(MockRemote)
	store := NewStore(remote)

	remote.On("FetchAll", mock.Anything).Return(catalogOf(map[string]int{"P01": 3}), nil).Once()
	assert.NoError(t, store.Refresh(context.Background()))

	remote.On("Delete", mock.Anything, "P01").Return(nil)
	remote.On("FetchAll", mock.Anything).Return([]product.Product{}, nil).Once()

	assert.NoError(t, store.Delete(context.Background(), "P01"))
	assert.Empty(t, store.ListProducts())
}

func TestStore_SetStock(t *testing.T) {
	setup := func() (*MockRemote, *Store) {
		remote := new(MockRemote)
		store := NewStore(remote)

		remote.On("FetchAll", mock.Anything).Return(catalogOf(map[string]int{"P01": 5}), nil).Once()
		assert.NoError(t, store.Refresh(context.Background()))
		return remote, store
	}

	t.Run("PushesFullProductUpdate", func(t *testing.T) {
		remote, store := setup()

		remote.On("Update", mock.Anything, "P01", mock.MatchedBy(func(p product.Product) bool {
			return p.StockQuantity == 2 && p.Name == "Producto P01"
		})).Return(nil)
		remote.On("FetchAll", mock.Anything).Return(catalogOf(map[string]int{"P01": 2}), nil)

		updated, err := store.SetStock(context.Background(), "P01", "2")

		assert.NoError(t, err)
		assert.Equal(t, 2, updated.StockQuantity)
	})

	t.Run("RejectsMalformedInput", func(t *testing.T) {
		remote, store := setup()

		for _, raw := range []string{"abc", "1.5", "-1", ""} {
			_, err := store.SetStock(context.Background(), "P01", raw)
			assert.ErrorIs(t, err, ErrInvalidStock, "input %q", raw)
		}
		remote.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("RejectsUnknownProduct", func(t *testing.T) {
		_, store := setup()

		_, err := store.SetStock(context.Background(), "nope", "2")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("RejectsUnchangedValue", func(t *testing.T) {
		remote, store := setup()

		_, err := store.SetStock(context.Background(), "P01", "5")
		assert.ErrorIs(t, err, ErrStockUnchanged)
		remote.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}
