package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/atinyakov/SmileCare/internal/metrics"
	"github.com/atinyakov/SmileCare/internal/models"
	"github.com/atinyakov/SmileCare/internal/storage"
	"go.uber.org/zap"
)

// KeyCart holds the persisted cart when cart persistence is enabled.
const KeyCart = "cart"

// Order summarises a checked-out cart.
type Order struct {
	Items []models.LineItem `json:"items"`
	Count int               `json:"count"`
	Total float64           `json:"total"`
}

// CartStore owns the marketplace cart: one line item per product, in the
// order products were first added.
type CartStore struct {
	storage storage.Storage
	log     *zap.Logger
	metrics *metrics.Metrics

	mu    sync.Mutex
	items []models.LineItem
}

// NewCartStore returns an empty cart, or the persisted one when
// WithCartStorage is given.
func NewCartStore(ctx context.Context, opts ...Option) (*CartStore, error) {
	o := buildOptions(opts)
	c := &CartStore{
		storage: o.cartStore,
		log:     o.log,
		metrics: o.metrics,
		items:   []models.LineItem{},
	}
	if c.storage == nil {
		return c, nil
	}

	raw, err := c.storage.Get(ctx, KeyCart)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("load cart: %w", err)
	default:
		if err := json.Unmarshal(raw, &c.items); err != nil {
			return nil, fmt.Errorf("decode cart: %w", err)
		}
		// drop anything a hand-edited file may have left below the floor
		c.items = slices.DeleteFunc(c.items, func(l models.LineItem) bool { return l.Quantity < 1 })
	}
	return c, nil
}

// Add puts quantity units of p in the cart, merging with an existing line.
func (c *CartStore) Add(ctx context.Context, p models.Product, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1, got %d", ErrValidation, quantity)
	}
	return c.mutate(ctx, "add", func(items []models.LineItem) []models.LineItem {
		if i := indexOf(items, p.ID); i >= 0 {
			items[i].Quantity += quantity
			return items
		}
		return append(items, models.LineItem{Product: p, Quantity: quantity})
	})
}

// Remove drops the line for productID, if any.
func (c *CartStore) Remove(ctx context.Context, productID int) error {
	return c.mutate(ctx, "remove", func(items []models.LineItem) []models.LineItem {
		return slices.DeleteFunc(items, func(l models.LineItem) bool { return l.Product.ID == productID })
	})
}

// UpdateQuantity sets the quantity of productID's line. A quantity of zero
// or less removes the line. Unknown products are ignored.
func (c *CartStore) UpdateQuantity(ctx context.Context, productID, quantity int) error {
	return c.mutate(ctx, "update", func(items []models.LineItem) []models.LineItem {
		i := indexOf(items, productID)
		if i < 0 {
			return items
		}
		if quantity <= 0 {
			return slices.Delete(items, i, i+1)
		}
		items[i].Quantity = quantity
		return items
	})
}

// Clear empties the cart.
func (c *CartStore) Clear(ctx context.Context) error {
	return c.mutate(ctx, "clear", func([]models.LineItem) []models.LineItem {
		return []models.LineItem{}
	})
}

// Checkout returns the order for the current cart and empties it.
func (c *CartStore) Checkout(ctx context.Context) (Order, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) == 0 {
		return Order{}, fmt.Errorf("%w: cart is empty", ErrValidation)
	}
	order := Order{Items: c.items, Count: count(c.items), Total: total(c.items)}
	if err := c.commit(ctx, "checkout", []models.LineItem{}); err != nil {
		return Order{}, err
	}
	c.log.Info("order placed", zap.Int("items", order.Count), zap.Float64("total", order.Total))
	return order, nil
}

// Items returns a copy of the cart lines.
func (c *CartStore) Items() []models.LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.LineItem{}, c.items...)
}

// Total returns the sum of price × quantity over all lines.
func (c *CartStore) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return total(c.items)
}

// Count returns the sum of quantities over all lines.
func (c *CartStore) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return count(c.items)
}

// mutate applies fn to a copy of the lines and commits the result.
func (c *CartStore) mutate(ctx context.Context, op string, fn func([]models.LineItem) []models.LineItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := fn(slices.Clone(c.items))
	if next == nil {
		next = []models.LineItem{}
	}
	return c.commit(ctx, op, next)
}

// commit persists next when a storage is configured and then publishes it.
// Callers hold c.mu.
func (c *CartStore) commit(ctx context.Context, op string, next []models.LineItem) error {
	if c.storage != nil {
		b, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("encode cart: %w", err)
		}
		if err := c.storage.Set(ctx, KeyCart, b); err != nil {
			return fmt.Errorf("save cart: %w", err)
		}
	}
	c.items = next
	c.metrics.CartOp(op, count(next), total(next))
	return nil
}

func indexOf(items []models.LineItem, productID int) int {
	return slices.IndexFunc(items, func(l models.LineItem) bool { return l.Product.ID == productID })
}

func total(items []models.LineItem) float64 {
	var sum float64
	for _, l := range items {
		sum += l.Subtotal()
	}
	return sum
}

func count(items []models.LineItem) int {
	n := 0
	for _, l := range items {
		n += l.Quantity
	}
	return n
}
