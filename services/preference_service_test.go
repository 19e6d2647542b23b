package services

import (
	"context"
	"testing"

	"travelex-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePreferredCurrencyDefault(t *testing.T) {
	store := NewMemoryPreferenceStore()
	code, err := ResolvePreferredCurrency(context.Background(), store, "u1")
	require.NoError(t, err)
	assert.Equal(t, utils.DefaultCurrency, code)
}

func TestResolvePreferredCurrencySaved(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryPreferenceStore()
	require.NoError(t, SetPreferredCurrency(ctx, store, "u1", "EUR"))

	code, err := ResolvePreferredCurrency(ctx, store, "u1")
	require.NoError(t, err)
	assert.Equal(t, "EUR", code)

	// Scopes are independent.
	code, err = ResolvePreferredCurrency(ctx, store, "u2")
	require.NoError(t, err)
	assert.Equal(t, utils.DefaultCurrency, code)
}

func TestResolvePreferredCurrencyMigratesStaleDefaults(t *testing.T) {
	ctx := context.Background()
	for _, stale := range []string{"USD", "GBP"} {
		store := NewMemoryPreferenceStore()
		require.NoError(t, store.Set(ctx, "u1", preferredCurrencyKey, stale))

		code, err := ResolvePreferredCurrency(ctx, store, "u1")
		require.NoError(t, err)
		assert.Equal(t, utils.DefaultCurrency, code, "stale %s", stale)

		// The stale value is gone, not just masked.
		raw, err := store.Get(ctx, "u1", preferredCurrencyKey)
		require.NoError(t, err)
		assert.Empty(t, raw, "stale %s should be removed", stale)
	}
}

func TestResolvePreferredCurrencyUnsupportedFallsBack(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryPreferenceStore()
	require.NoError(t, store.Set(ctx, "u1", preferredCurrencyKey, "DOGE"))

	code, err := ResolvePreferredCurrency(ctx, store, "u1")
	require.NoError(t, err)
	assert.Equal(t, utils.DefaultCurrency, code)

	// Unsupported but non-stale values stay put; only old defaults migrate.
	raw, err := store.Get(ctx, "u1", preferredCurrencyKey)
	require.NoError(t, err)
	assert.Equal(t, "DOGE", raw)
}
