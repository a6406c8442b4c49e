package kvstore

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetSetRemove(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	t.Run("get missing key returns ErrKeyNotFound", func(t *testing.T) {
		_, err := store.Get(ctx, "user")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "user", `{"id":"u1"}`))

		value, err := store.Get(ctx, "user")
		require.NoError(t, err)
		assert.Equal(t, `{"id":"u1"}`, value)
	})

	t.Run("set overwrites previous value", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "user", `{"id":"u2"}`))

		value, err := store.Get(ctx, "user")
		require.NoError(t, err)
		assert.Equal(t, `{"id":"u2"}`, value)
	})

	t.Run("remove deletes the key", func(t *testing.T) {
		require.NoError(t, store.Remove(ctx, "user"))

		_, err := store.Get(ctx, "user")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("remove of a missing key is not an error", func(t *testing.T) {
		assert.NoError(t, store.Remove(ctx, "no-such-key"))
	})
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Set(ctx, "shared", "value")
			_, _ = store.Get(ctx, "shared")
			_ = store.Remove(ctx, "shared")
		}()
	}
	wg.Wait()
}
