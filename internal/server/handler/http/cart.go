package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/atinyakov/SmileCare/internal/catalog"
	"github.com/atinyakov/SmileCare/internal/models"
	"github.com/atinyakov/SmileCare/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CartService is the cart store as seen by the handlers.
type CartService interface {
	Add(ctx context.Context, p models.Product, quantity int) error
	Remove(ctx context.Context, productID int) error
	UpdateQuantity(ctx context.Context, productID, quantity int) error
	Clear(ctx context.Context) error
	Checkout(ctx context.Context) (service.Order, error)
	Items() []models.LineItem
	Total() float64
	Count() int
}

// CartHandler exposes the marketplace cart.
type CartHandler struct {
	Cart   CartService
	Logger *zap.Logger
}

// AddItemRequest adds quantity units of a catalog product.
type AddItemRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// QuantityRequest sets the quantity of a line.
type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

// Get returns the cart contents and totals.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	p, ok := catalog.ProductByID(req.ProductID)
	if !ok {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if err := h.Cart.Add(r.Context(), p, req.Quantity); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	h.respond(w, http.StatusOK)
}

// UpdateItem sets a line's quantity; zero or less removes the line.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	var req QuantityRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.Cart.UpdateQuantity(r.Context(), id, req.Quantity); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	h.respond(w, http.StatusOK)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	if err := h.Cart.Remove(r.Context(), id); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	h.respond(w, http.StatusOK)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.Cart.Clear(r.Context()); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	h.respond(w, http.StatusOK)
}

// Checkout places the order and empties the cart. No payment is taken.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	order, err := h.Cart.Checkout(r.Context())
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *CartHandler) respond(w http.ResponseWriter, code int) {
	writeJSON(w, code, service.Order{
		Items: h.Cart.Items(),
		Count: h.Cart.Count(),
		Total: h.Cart.Total(),
	})
}

func productID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return 0, false
	}
	return id, true
}
