package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-backend/internal/infrastructure/cache"
)

func TestInvalidateArticles_DropsOnlyArticleEntries(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemoryCache(time.Minute, time.Minute)
	r := &postgresRepository{cache: mem}

	require.NoError(t, mem.Set(ctx, "article:1", map[string]string{"supplierName": "Old"}, time.Minute))
	require.NoError(t, mem.Set(ctx, "article:2", map[string]string{"supplierName": "Old"}, time.Minute))
	require.NoError(t, mem.Set(ctx, "vat:1", map[string]int{"percent": 19}, time.Minute))

	r.invalidateArticles(ctx)

	var dest map[string]interface{}
	for _, key := range []string{"article:1", "article:2"} {
		found, err := mem.Get(ctx, key, &dest)
		require.NoError(t, err)
		assert.False(t, found, key)
	}
	found, _ := mem.Get(ctx, "vat:1", &dest)
	assert.True(t, found)
}

func TestInvalidateArticles_NilCache(t *testing.T) {
	assert.NotPanics(t, func() { (&postgresRepository{}).invalidateArticles(context.Background()) })
}
