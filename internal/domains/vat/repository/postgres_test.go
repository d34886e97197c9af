package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-backend/internal/domains/vat/model"
	"shop-backend/internal/infrastructure/cache"
)

func TestInvalidateAll_DropsCachedArticles(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemoryCache(time.Minute, time.Minute)
	r := &postgresRepository{cache: mem}

	require.NoError(t, mem.Set(ctx, "vat:1", model.Vat{ID: 1, Percent: 19}, time.Minute))
	require.NoError(t, mem.Set(ctx, "article:4", map[string]int{"vatPercent": 19}, time.Minute))
	require.NoError(t, mem.Set(ctx, "country:1", map[string]string{"name": "Germany"}, time.Minute))

	r.invalidateAll(ctx)

	var dest map[string]interface{}
	found, err := mem.Get(ctx, "article:4", &dest)
	require.NoError(t, err)
	assert.False(t, found)
	found, _ = mem.Get(ctx, "vat:1", &dest)
	assert.False(t, found)
	found, _ = mem.Get(ctx, "country:1", &dest)
	assert.True(t, found)
}
