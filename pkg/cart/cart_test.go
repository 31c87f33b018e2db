package cart_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmago/clientkit/pkg/api"
	"github.com/pharmago/clientkit/pkg/cart"
	"github.com/pharmago/clientkit/pkg/kv"
)

func med(id int64, price float64) api.Medicine {
	return api.Medicine{ID: id, Name: "Medicine", Price: price}
}

func TestStore_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("same id accumulates into one line", func(t *testing.T) {
		c := cart.New(ctx, kv.NewMemoryStore())

		c.Add(ctx, med(1, 10), 2)
		c.Add(ctx, med(1, 10), 3)

		assert.Equal(t, 5, c.ItemQuantity(1))
		assert.Len(t, c.Items(), 1)
		assert.Equal(t, 50.0, c.TotalAmount())
	})

	t.Run("distinct ids append in insertion order", func(t *testing.T) {
		c := cart.New(ctx, kv.NewMemoryStore())

		c.Add(ctx, med(2, 1), 1)
		c.Add(ctx, med(1, 1), 1)
		c.Add(ctx, med(3, 1), 1)

		items := c.Items()
		require.Len(t, items, 3)
		assert.Equal(t, int64(2), items[0].Medicine.ID)
		assert.Equal(t, int64(1), items[1].Medicine.ID)
		assert.Equal(t, int64(3), items[2].Medicine.ID)
	})

	t.Run("accumulating keeps the original snapshot position", func(t *testing.T) {
		c := cart.New(ctx, kv.NewMemoryStore())

		c.Add(ctx, med(1, 1), 1)
		c.Add(ctx, med(2, 1), 1)
		c.Add(ctx, med(1, 1), 1)

		items := c.Items()
		require.Len(t, items, 2)
		assert.Equal(t, int64(1), items[0].Medicine.ID)
		assert.Equal(t, 2, items[0].Quantity)
	})
}

func TestStore_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("removes matching line", func(t *testing.T) {
		c := cart.New(ctx, kv.NewMemoryStore())
		c.Add(ctx, med(1, 10), 2)
		c.Add(ctx, med(2, 5), 1)

		c.Remove(ctx, 1)

		assert.False(t, c.InCart(1))
		assert.True(t, c.InCart(2))
		assert.Len(t, c.Items(), 1)
	})

	t.Run("absent id is a no-op", func(t *testing.T) {
		c := cart.New(ctx, kv.NewMemoryStore())
		c.Add(ctx, med(1, 10), 2)

		before := c.Items()
		c.Remove(ctx, 99)
		after := c.Items()

		assert.Equal(t, before, after)
	})
}

func TestStore_UpdateQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("absolute set, not additive", func(t *testing.T) {
		c := cart.New(ctx, kv.NewMemoryStore())
		c.Add(ctx, med(1, 10), 5)

		c.UpdateQuantity(ctx, 1, 2)

		assert.Equal(t, 2, c.ItemQuantity(1))
	})

	t.Run("zero removes the line", func(t *testing.T) {
		c := cart.New(ctx, kv.NewMemoryStore())
		c.Add(ctx, med(1, 10), 5)

		c.UpdateQuantity(ctx, 1, 0)

		assert.False(t, c.InCart(1))
	})

	t.Run("negative removes the line", func(t *testing.T) {
		c := cart.New(ctx, kv.NewMemoryStore())
		c.Add(ctx, med(1, 10), 5)

		c.UpdateQuantity(ctx, 1, -3)

		assert.False(t, c.InCart(1))
		assert.Zero(t, c.ItemQuantity(1))
	})

	t.Run("absent id is a no-op", func(t *testing.T) {
		c := cart.New(ctx, kv.NewMemoryStore())

		c.UpdateQuantity(ctx, 42, 3)

		assert.Empty(t, c.Items())
	})
}

func TestStore_Totals(t *testing.T) {
	ctx := context.Background()
	c := cart.New(ctx, kv.NewMemoryStore())

	c.Add(ctx, med(1, 10), 2)
	c.Add(ctx, med(2, 2.5), 4)

	assert.Equal(t, 6, c.TotalItems())
	assert.Equal(t, 30.0, c.TotalAmount())

	c.Clear(ctx)

	assert.Zero(t, c.TotalItems())
	assert.Zero(t, c.TotalAmount())
	assert.Empty(t, c.Items())
}

func TestStore_Persistence(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip preserves ids, quantities and order", func(t *testing.T) {
		storage := kv.NewMemoryStore()

		c := cart.New(ctx, storage)
		c.Add(ctx, med(2, 1), 1)
		c.Add(ctx, med(1, 10), 3)

		reloaded := cart.New(ctx, storage)
		assert.Equal(t, c.Items(), reloaded.Items())
		assert.Equal(t, 4, reloaded.TotalItems())
	})

	t.Run("every mutation is persisted immediately", func(t *testing.T) {
		storage := kv.NewMemoryStore()

		c := cart.New(ctx, storage)
		c.Add(ctx, med(1, 10), 2)
		assert.Equal(t, 2, cart.New(ctx, storage).ItemQuantity(1))

		c.UpdateQuantity(ctx, 1, 7)
		assert.Equal(t, 7, cart.New(ctx, storage).ItemQuantity(1))

		c.Clear(ctx)
		assert.Empty(t, cart.New(ctx, storage).Items())
	})

	t.Run("corrupt persisted cart is discarded", func(t *testing.T) {
		storage := kv.NewMemoryStore()
		require.NoError(t, storage.Set(ctx, "cart", "[{corrupt"))

		c := cart.New(ctx, storage)
		assert.Empty(t, c.Items())
	})

	t.Run("custom storage key", func(t *testing.T) {
		storage := kv.NewMemoryStore()

		c := cart.New(ctx, storage, cart.WithStorageKey("guest_cart"))
		c.Add(ctx, med(1, 1), 1)

		_, err := storage.Get(ctx, "guest_cart")
		assert.NoError(t, err)
		_, err = storage.Get(ctx, "cart")
		assert.ErrorIs(t, err, kv.ErrKeyNotFound)
	})
}
