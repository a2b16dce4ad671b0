package cache

import (
	"context"
	"testing"
	"time"

	"github.com/kizora/invoicer/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore_GetSet(t *testing.T) {
	store := NewInMemoryStore()
	defer store.Close()

	ctx := context.Background()

	t.Run("missing key is a cache miss", func(t *testing.T) {
		_, err := store.Get(ctx, "absent")
		assert.ErrorIs(t, err, shared.ErrCacheMiss)
	})

	t.Run("stores and returns value", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "k1", []byte("modern"), time.Hour))

		got, err := store.Get(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, []byte("modern"), got)
	})

	t.Run("returned value is a copy", func(t *testing.T) {
		value := []byte("abc")
		require.NoError(t, store.Set(ctx, "k2", value, 0))
		value[0] = 'x'

		got, err := store.Get(ctx, "k2")
		require.NoError(t, err)
		got[1] = 'y'

		again, err := store.Get(ctx, "k2")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), again)
	})

	t.Run("expired value is a cache miss", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "k3", []byte("v"), 10*time.Millisecond))
		time.Sleep(20 * time.Millisecond)

		_, err := store.Get(ctx, "k3")
		assert.ErrorIs(t, err, shared.ErrCacheMiss)
	})

	t.Run("zero ttl never expires", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "k4", []byte("v"), 0))
		store.cleanup()

		_, err := store.Get(ctx, "k4")
		assert.NoError(t, err)
	})
}

func TestInMemoryStore_Delete(t *testing.T) {
	store := NewInMemoryStore()
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Hour))

	require.NoError(t, store.Delete(ctx, "k"))
	require.NoError(t, store.Delete(ctx, "k"))

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, shared.ErrCacheMiss)
}

func TestInMemoryStore_Cleanup(t *testing.T) {
	store := NewInMemoryStore()
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "short", []byte("v"), 10*time.Millisecond))
	require.NoError(t, store.Set(ctx, "long", []byte("v"), time.Hour))
	assert.Equal(t, 2, store.Size())

	time.Sleep(20 * time.Millisecond)
	store.cleanup()

	assert.Equal(t, 1, store.Size())
}

func TestInMemoryStore_CloseTwice(t *testing.T) {
	store := NewInMemoryStore()
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}
