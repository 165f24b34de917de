package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()

	ok, err := store.MarkProcessed(ctx, "payment_completed:inv-1:pi_abc", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok, "first mark must succeed")

	ok, err = store.MarkProcessed(ctx, "payment_completed:inv-1:pi_abc", time.Hour)
	require.NoError(t, err)
	assert.False(t, ok, "duplicate mark must be rejected")

	ok, err = store.MarkProcessed(ctx, "payment_completed:inv-1:pi_other", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok, "different gateway ref is a new key")
}

func TestInMemoryIdempotencyStore_Expiry(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()

	ok, err := store.MarkProcessed(ctx, "short-lived", 10*time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	processed, err := store.IsProcessed(ctx, "short-lived")
	require.NoError(t, err)
	assert.False(t, processed, "expired key is no longer processed")

	ok, err = store.MarkProcessed(ctx, "short-lived", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok, "expired key can be marked again")
}

func TestInMemoryIdempotencyStore_RemoveExpired(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()
	_, err := store.MarkProcessed(ctx, "a", 1*time.Millisecond)
	require.NoError(t, err)
	_, err = store.MarkProcessed(ctx, "b", time.Hour)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	store.removeExpired()

	assert.Equal(t, 1, store.Size())
}
