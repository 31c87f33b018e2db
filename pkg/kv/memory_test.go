package kv_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmago/clientkit/pkg/kv"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("get missing key", func(t *testing.T) {
		store := kv.NewMemoryStore()
		_, err := store.Get(ctx, "token")
		assert.ErrorIs(t, err, kv.ErrKeyNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		store := kv.NewMemoryStore()
		require.NoError(t, store.Set(ctx, "token", "T"))

		value, err := store.Get(ctx, "token")
		require.NoError(t, err)
		assert.Equal(t, "T", value)
	})

	t.Run("set overwrites", func(t *testing.T) {
		store := kv.NewMemoryStore()
		require.NoError(t, store.Set(ctx, "token", "old"))
		require.NoError(t, store.Set(ctx, "token", "new"))

		value, err := store.Get(ctx, "token")
		require.NoError(t, err)
		assert.Equal(t, "new", value)
	})

	t.Run("delete multiple keys", func(t *testing.T) {
		store := kv.NewMemoryStore()
		require.NoError(t, store.Set(ctx, "token", "T"))
		require.NoError(t, store.Set(ctx, "user", "{}"))

		require.NoError(t, store.Delete(ctx, "token", "user"))

		_, err := store.Get(ctx, "token")
		assert.ErrorIs(t, err, kv.ErrKeyNotFound)
		_, err = store.Get(ctx, "user")
		assert.ErrorIs(t, err, kv.ErrKeyNotFound)
	})

	t.Run("delete missing key is not an error", func(t *testing.T) {
		store := kv.NewMemoryStore()
		assert.NoError(t, store.Delete(ctx, "absent"))
	})

	t.Run("empty key rejected", func(t *testing.T) {
		store := kv.NewMemoryStore()
		assert.ErrorIs(t, store.Set(ctx, "", "v"), kv.ErrEmptyKey)
		_, err := store.Get(ctx, "")
		assert.ErrorIs(t, err, kv.ErrEmptyKey)
	})

	t.Run("closed store rejects operations", func(t *testing.T) {
		store := kv.NewMemoryStore()
		require.NoError(t, store.Close())

		assert.ErrorIs(t, store.Set(ctx, "token", "T"), kv.ErrStoreClosed)
		_, err := store.Get(ctx, "token")
		assert.ErrorIs(t, err, kv.ErrStoreClosed)
	})
}
