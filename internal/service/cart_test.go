package service

import (
	"context"
	"testing"

	"github.com/atinyakov/SmileCare/internal/models"
	"github.com/atinyakov/SmileCare/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	toothbrush = models.Product{ID: 1, Name: "Electric Toothbrush Pro", Price: 89.99, InStock: true}
	floss      = models.Product{ID: 2, Name: "Premium Dental Floss Pack", Price: 12.99, InStock: true}
	sample     = models.Product{ID: 3, Name: "Free Sample", Price: 0, InStock: true}
)

func newCart(t *testing.T, opts ...Option) *CartStore {
	t.Helper()
	c, err := NewCartStore(context.Background(), opts...)
	require.NoError(t, err)
	return c
}

func TestCart_Empty(t *testing.T) {
	c := newCart(t)
	assert.Equal(t, 0, c.Count())
	assert.Zero(t, c.Total())
	assert.Empty(t, c.Items())
}

func TestCart_AddMergesLines(t *testing.T) {
	ctx := context.Background()
	c := newCart(t)

	require.NoError(t, c.Add(ctx, toothbrush, 2))
	require.NoError(t, c.Add(ctx, toothbrush, 3))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.InDelta(t, 5*toothbrush.Price, c.Total(), 1e-9)
}

func TestCart_CountIsSumOfAddedQuantities(t *testing.T) {
	ctx := context.Background()
	c := newCart(t)

	want := 0
	for _, q := range []int{1, 4, 2, 7} {
		require.NoError(t, c.Add(ctx, floss, q))
		want += q
	}
	assert.Equal(t, want, c.Count())
}

func TestCart_TotalAndOrder(t *testing.T) {
	ctx := context.Background()
	c := newCart(t)

	require.NoError(t, c.Add(ctx, floss, 2))
	require.NoError(t, c.Add(ctx, toothbrush, 1))
	before := c.Total()
	require.NoError(t, c.Add(ctx, sample, 3))

	assert.InDelta(t, 2*floss.Price+toothbrush.Price, c.Total(), 1e-9)
	assert.Equal(t, before, c.Total())
	assert.Equal(t, 6, c.Count())

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, []int{2, 1, 3}, []int{items[0].Product.ID, items[1].Product.ID, items[2].Product.ID})
}

func TestCart_AddRejectsNonPositive(t *testing.T) {
	c := newCart(t)
	assert.ErrorIs(t, c.Add(context.Background(), floss, 0), ErrValidation)
	assert.ErrorIs(t, c.Add(context.Background(), floss, -2), ErrValidation)
	assert.Empty(t, c.Items())
}

func TestCart_UpdateQuantity(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		productID int
		quantity  int
		wantCount int
		wantLines int
	}{
		{"set higher", floss.ID, 5, 6, 2},
		{"set to one", floss.ID, 1, 2, 2},
		{"zero removes", floss.ID, 0, 1, 1},
		{"negative removes", floss.ID, -3, 1, 1},
		{"unknown product ignored", 42, 9, 3, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCart(t)
			require.NoError(t, c.Add(ctx, floss, 2))
			require.NoError(t, c.Add(ctx, toothbrush, 1))

			require.NoError(t, c.UpdateQuantity(ctx, tt.productID, tt.quantity))
			assert.Equal(t, tt.wantCount, c.Count())
			assert.Len(t, c.Items(), tt.wantLines)
			for _, l := range c.Items() {
				assert.GreaterOrEqual(t, l.Quantity, 1)
			}
		})
	}
}

func TestCart_RemoveAndClear(t *testing.T) {
	ctx := context.Background()
	c := newCart(t)
	require.NoError(t, c.Add(ctx, floss, 2))
	require.NoError(t, c.Add(ctx, toothbrush, 1))

	require.NoError(t, c.Remove(ctx, floss.ID))
	require.NoError(t, c.Remove(ctx, floss.ID))
	assert.Equal(t, 1, c.Count())

	require.NoError(t, c.Clear(ctx))
	assert.Equal(t, 0, c.Count())
	assert.Zero(t, c.Total())
}

func TestCart_Checkout(t *testing.T) {
	ctx := context.Background()
	c := newCart(t)

	_, err := c.Checkout(ctx)
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, c.Add(ctx, floss, 2))
	order, err := c.Checkout(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, order.Count)
	assert.InDelta(t, 2*floss.Price, order.Total, 1e-9)
	assert.Len(t, order.Items, 1)
	assert.Empty(t, c.Items())
}

func TestCart_Persistence(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStorage()

	c := newCart(t, WithCartStorage(st))
	require.NoError(t, c.Add(ctx, floss, 2))
	require.NoError(t, c.Add(ctx, toothbrush, 1))

	reloaded := newCart(t, WithCartStorage(st))
	assert.Equal(t, c.Items(), reloaded.Items())

	require.NoError(t, reloaded.Clear(ctx))
	assert.Empty(t, newCart(t, WithCartStorage(st)).Items())
}

func TestCart_PersistenceFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	st := &failingStorage{MemoryStorage: storage.NewMemoryStorage()}
	c := newCart(t, WithCartStorage(st))
	require.NoError(t, c.Add(ctx, floss, 2))

	st.failSet = map[string]bool{KeyCart: true}
	assert.Error(t, c.Add(ctx, floss, 1))
	assert.Error(t, c.UpdateQuantity(ctx, floss.ID, 0))
	assert.Equal(t, 2, c.Count())
}

func TestCart_LoadDropsInvalidLines(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStorage()
	require.NoError(t, st.Set(ctx, KeyCart, []byte(`[{"product":{"id":1,"price":1},"quantity":0},{"product":{"id":2,"price":2},"quantity":3}]`)))

	c := newCart(t, WithCartStorage(st))
	assert.Equal(t, 3, c.Count())
	assert.Len(t, c.Items(), 1)
}
