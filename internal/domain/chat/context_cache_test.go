package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextCacheGetSet(t *testing.T) {
	cache := NewContextCache(time.Minute)

	_, ok := cache.Get("conv_a")
	assert.False(t, ok)

	messages := []PromptMessage{{Role: RoleUser, Content: "hi"}}
	cache.Set("conv_a", messages)

	got, ok := cache.Get("conv_a")
	require.True(t, ok)
	assert.Equal(t, messages, got)
}

func TestContextCacheExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cache := NewContextCache(time.Minute)
	cache.now = func() time.Time { return now }

	cache.Set("conv_a", []PromptMessage{{Role: RoleUser, Content: "hi"}})

	// Still fresh right at the TTL boundary.
	now = now.Add(time.Minute)
	_, ok := cache.Get("conv_a")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok = cache.Get("conv_a")
	assert.False(t, ok, "entry must expire after the TTL")
}

func TestContextCacheDeleteAndClear(t *testing.T) {
	cache := NewContextCache(time.Minute)
	cache.Set("conv_a", nil)
	cache.Set("conv_b", nil)

	cache.Delete("conv_a")
	_, ok := cache.Get("conv_a")
	assert.False(t, ok)
	_, ok = cache.Get("conv_b")
	assert.True(t, ok)

	cache.Clear()
	assert.Equal(t, 0, cache.Len())
}

func TestContextCachePurgeExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cache := NewContextCache(time.Minute)
	cache.now = func() time.Time { return now }

	cache.Set("conv_old", nil)
	now = now.Add(45 * time.Second)
	cache.Set("conv_fresh", nil)
	now = now.Add(30 * time.Second)

	purged := cache.PurgeExpired()
	assert.Equal(t, 1, purged)
	assert.Equal(t, 1, cache.Len())

	_, ok := cache.Get("conv_fresh")
	assert.True(t, ok)
}
