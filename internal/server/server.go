package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"ecomarket/internal/cart"
	"ecomarket/internal/checkout"
	"ecomarket/internal/identity"
	"ecomarket/internal/inventory"
	"ecomarket/internal/logger"
	"ecomarket/internal/product"
	"ecomarket/internal/storage"

	"go.uber.org/zap"
)

// Server is the storefront's JSON surface over the stores. It is also the
// host integration for cart persistence: the cart blob is saved after each
// successful cart mutation and after checkout, never implicitly.
type Server struct {
	Inventory *inventory.Store
	Cart      *cart.Store
	Finalizer *checkout.Finalizer
	Identity  identity.Provider
	Blobs     storage.BlobStore
	CartKey   string
	SecretKey string
}

// Handler builds the route table with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/catalog", s.handleCatalog)
	mux.HandleFunc("POST /api/catalog/refresh", s.handleRefresh)

	mux.HandleFunc("GET /api/cart", s.handleCartView)
	mux.HandleFunc("POST /api/cart/items", s.handleAddToCart)
	mux.HandleFunc("DELETE /api/cart/items/{code}", s.handleRemoveFromCart)
	mux.HandleFunc("POST /api/cart/items/{code}/increment", s.handleIncrement)
	mux.HandleFunc("POST /api/cart/items/{code}/decrement", s.handleDecrement)
	mux.HandleFunc("PUT /api/cart/items/{code}", s.handleSetQuantity)

	mux.HandleFunc("POST /api/checkout", s.handleCheckout)

	mux.HandleFunc("POST /api/products", s.requireAdmin(s.handleCreateProduct))
	mux.HandleFunc("PUT /api/products/{code}", s.requireAdmin(s.handleUpdateProduct))
	mux.HandleFunc("DELETE /api/products/{code}", s.requireAdmin(s.handleDeleteProduct))
	mux.HandleFunc("PUT /api/products/{code}/stock", s.requireAdmin(s.handleSetStock))

	var h http.Handler = mux
	h = RateLimitMiddleware(h)
	h = AuthMiddleware(s.SecretKey, h)
	h = LoggingMiddleware(h)
	h = RequestIDMiddleware(h)
	return h
}

// ---- catalog ----

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Inventory.ListProducts())
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.Inventory.Refresh(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Inventory.ListProducts())
}

// ---- cart ----

type cartView struct {
	Lines     []cart.Line `json:"lines"`
	Total     float64     `json:"total"`
	ItemCount int         `json:"itemCount"`
	IsOpen    bool        `json:"isOpen"`
}

func (s *Server) handleCartView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, cartView{
		Lines:     s.Cart.Lines(),
		Total:     s.Cart.Total(),
		ItemCount: s.Cart.ItemCount(),
		IsOpen:    s.Cart.IsOpen(),
	})
}

func (s *Server) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code string `json:"codigo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Code == "" {
		http.Error(w, "codigo is required", http.StatusBadRequest)
		return
	}

	line, err := s.Cart.AddToCart(body.Code)
	if err != nil {
		writeError(w, err)
		return
	}

	s.persistCart(r)
	writeJSON(w, http.StatusCreated, line)
}

func (s *Server) handleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	s.Cart.RemoveFromCart(r.PathValue("code"))
	s.persistCart(r)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleIncrement(w http.ResponseWriter, r *http.Request) {
	s.Cart.IncrementQuantity(r.PathValue("code"))
	s.persistCart(r)
	s.handleCartView(w, r)
}

func (s *Server) handleDecrement(w http.ResponseWriter, r *http.Request) {
	s.Cart.DecrementQuantity(r.PathValue("code"))
	s.persistCart(r)
	s.handleCartView(w, r)
}

func (s *Server) handleSetQuantity(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Quantity string `json:"cantidad"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	s.Cart.SetQuantity(r.PathValue("code"), body.Quantity)
	s.persistCart(r)
	s.handleCartView(w, r)
}

// ---- checkout ----

type checkoutRequest struct {
	Name  string `json:"nombre"`
	Email string `json:"email"`
	Phone string `json:"telefono"`
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	// Guests must supply contact fields; signed-in users already carry them.
	if _, ok := s.Identity.CurrentUser(r.Context()); !ok {
		var body checkoutRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil ||
			body.Name == "" || body.Email == "" || body.Phone == "" {
			http.Error(w, "nombre, email and telefono are required for guest checkout", http.StatusBadRequest)
			return
		}
	}

	result := s.Finalizer.Finalize(r.Context())
	s.persistCart(r)

	status := http.StatusOK
	if !result.OK {
		status = http.StatusConflict
	}
	writeJSON(w, status, result)
}

// ---- admin stock editor ----

func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := s.Identity.CurrentUser(r.Context())
		if !ok || !user.IsAdmin {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var p product.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid product body", http.StatusBadRequest)
		return
	}

	if err := s.Inventory.Create(r.Context(), p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var p product.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid product body", http.StatusBadRequest)
		return
	}

	if err := s.Inventory.Update(r.Context(), r.PathValue("code"), p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.Inventory.Delete(r.Context(), r.PathValue("code")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetStock(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Quantity string `json:"cantidad"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	updated, err := s.Inventory.SetStock(r.Context(), r.PathValue("code"), body.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}

	// Reconciliation already ran inside the refresh; persist its outcome.
	s.persistCart(r)
	writeJSON(w, http.StatusOK, updated)
}

// ---- helpers ----

// persistCart is the defined save point for the cart blob.
func (s *Server) persistCart(r *http.Request) {
	data, err := s.Cart.Encode()
	if err != nil {
		logger.FromCtx(r.Context()).Error("failed to encode cart", zap.Error(err))
		return
	}
	if err := s.Blobs.Save(r.Context(), s.CartKey, data); err != nil {
		logger.FromCtx(r.Context()).Error("failed to persist cart", zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy to HTTP statuses, carrying server
// rejection messages through verbatim.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, cart.ErrOutOfStock), errors.Is(err, cart.ErrEmptyCart),
		errors.Is(err, inventory.ErrStockUnchanged):
		status = http.StatusConflict
	case errors.Is(err, inventory.ErrProductNotFound):
		status = http.StatusNotFound
	case errors.Is(err, inventory.ErrInvalidStock),
		errors.Is(err, product.ErrMissingCode),
		errors.Is(err, product.ErrInvalidPrice),
		errors.Is(err, product.ErrNegativeStock):
		status = http.StatusBadRequest
	case errors.Is(err, inventory.ErrNetwork):
		status = http.StatusBadGateway
	default:
		if _, ok := inventory.IsRejection(err); ok {
			status = http.StatusUnprocessableEntity
		}
	}

	writeJSON(w, status, map[string]string{"message": err.Error()})
}
