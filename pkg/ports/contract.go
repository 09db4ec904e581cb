package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunResultCacheContract runs a suite of tests to verify that a ResultCache
// implementation adheres to the defined interface contract.
func RunResultCacheContract(t *testing.T, cache ResultCache) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Set and Get", func(t *testing.T) {
		value := map[string]any{"mean": 4.5, "count": float64(2)}

		err := cache.Set(ctx, key, value)
		require.NoError(t, err, "Set should not return error")

		got, ok, err := cache.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		require.True(t, ok, "Get should find the stored value")
		// JSON round-trips may normalize numeric types; compare loosely.
		m, isMap := got.(map[string]any)
		require.True(t, isMap)
		assert.EqualValues(t, 4.5, m["mean"])
		assert.NotNil(t, m["count"])
	})

	t.Run("Get Miss", func(t *testing.T) {
		_, ok, err := cache.Get(ctx, "missing-"+key)
		require.NoError(t, err)
		assert.False(t, ok, "a miss must report ok=false without error")
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, key, "first"))
		require.NoError(t, cache.Set(ctx, key, "second"))

		got, ok, err := cache.Get(ctx, key)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "second", got)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, key, 1.0))
		require.NoError(t, cache.Delete(ctx, key))

		_, ok, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok, "Get after Delete should miss")
	})
}
