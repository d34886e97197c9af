package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func TestMemoryCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, time.Minute)

	var miss sample
	found, err := c.Get(ctx, "country:1", &miss)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "country:1", sample{ID: 1, Name: "Germany"}, time.Minute))

	var hit sample
	found, err = c.Get(ctx, "country:1", &hit)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Germany", hit.Name)
}

func TestMemoryCache_DeletePattern(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, time.Minute)

	require.NoError(t, c.Set(ctx, "articles:list:a", 1, 0))
	require.NoError(t, c.Set(ctx, "articles:list:b", 2, 0))
	require.NoError(t, c.Set(ctx, "article:7", 3, 0))

	require.NoError(t, c.DeletePattern(ctx, "articles:list:*"))

	var v int
	found, _ := c.Get(ctx, "articles:list:a", &v)
	assert.False(t, found)
	found, _ = c.Get(ctx, "article:7", &v)
	assert.True(t, found)
	assert.Equal(t, 3, v)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, time.Minute)

	require.NoError(t, c.Set(ctx, "k", "v", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	var v string
	found, err := c.Get(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, found)
}
