package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGetClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	_, ok, err := store.GetOperativeClientID(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetOperativeClientID(ctx, "u1", "c1"))
	require.NoError(t, store.SetOperativeClientID(ctx, "u2", "c2"))

	got, ok, err := store.GetOperativeClientID(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "c1", got)

	require.NoError(t, store.ClearOperativeClientID(ctx, "u1"))
	_, ok, _ = store.GetOperativeClientID(ctx, "u1")
	assert.False(t, ok)

	got, ok, _ = store.GetOperativeClientID(ctx, "u2")
	assert.True(t, ok)
	assert.Equal(t, "c2", got)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store := NewMemoryStore(30 * time.Minute)
	store.now = func() time.Time { return now }

	require.NoError(t, store.SetOperativeClientID(ctx, "u1", "c1"))

	now = now.Add(29 * time.Minute)
	_, ok, _ := store.GetOperativeClientID(ctx, "u1")
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok, _ = store.GetOperativeClientID(ctx, "u1")
	assert.False(t, ok)
	assert.Empty(t, store.entries)
}

func TestMemoryStore_SetRestartsExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store := NewMemoryStore(10 * time.Minute)
	store.now = func() time.Time { return now }

	require.NoError(t, store.SetOperativeClientID(ctx, "u1", "c1"))
	now = now.Add(9 * time.Minute)
	require.NoError(t, store.SetOperativeClientID(ctx, "u1", "c2"))
	now = now.Add(9 * time.Minute)

	got, ok, _ := store.GetOperativeClientID(ctx, "u1")
	assert.True(t, ok)
	assert.Equal(t, "c2", got)
}

func TestMemoryStore_ZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store := NewMemoryStore(0)
	store.now = func() time.Time { return now }

	require.NoError(t, store.SetOperativeClientID(ctx, "u1", "c1"))
	now = now.Add(1000 * time.Hour)
	_, ok, _ := store.GetOperativeClientID(ctx, "u1")
	assert.True(t, ok)
}
