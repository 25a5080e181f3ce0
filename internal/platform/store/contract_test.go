package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runContract exercises the behavior every backend must share.
func runContract(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("Put Get Delete", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.Put(ctx, "k1", []byte(`{"a":1}`), time.Minute))

		got, err := s.Get(ctx, "k1")
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":1}`, string(got))

		require.NoError(t, s.Delete(ctx, "k1"))
		_, err = s.Get(ctx, "k1")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Get Missing", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Delete Missing", func(t *testing.T) {
		s := newStore(t)
		assert.NoError(t, s.Delete(ctx, "nope"))
	})

	t.Run("Range Missing Is Empty", func(t *testing.T) {
		s := newStore(t)
		items, err := s.Range(ctx, "list")
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("PushCapped Newest First", func(t *testing.T) {
		s := newStore(t)
		for i := 0; i < 15; i++ {
			require.NoError(t, s.PushCapped(ctx, "list", []byte(fmt.Sprintf("%d", i)), 10, time.Minute))
		}

		items, err := s.Range(ctx, "list")
		require.NoError(t, err)
		require.Len(t, items, 10)
		assert.Equal(t, "14", string(items[0]))
		assert.Equal(t, "5", string(items[9]))
	})

	t.Run("Delete List", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.PushCapped(ctx, "list", []byte("x"), 10, time.Minute))
		require.NoError(t, s.Delete(ctx, "list"))

		items, err := s.Range(ctx, "list")
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("Ping", func(t *testing.T) {
		s := newStore(t)
		assert.NoError(t, s.Ping(ctx))
	})
}
