package adapter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLRUCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRUCache[string](2)

	c.Set("a", "1", time.Minute)
	c.Set("b", "2", time.Minute)
	_, _ = c.Get("a") // "b" passa a ser o menos usado
	c.Set("c", "3", time.Minute)

	_, ok := c.Get("b")
	assert.False(t, ok)

	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	assert.Equal(t, 2, c.Size())
}

func TestLRUCacheExpiration(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewLRUCache[int](10)
	c.now = func() time.Time { return now }

	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Hour)

	now = now.Add(2 * time.Minute)

	assert.Equal(t, 1, c.CleanupExpired())
	assert.Equal(t, 1, c.Size())

	_, ok := c.Get("a")
	assert.False(t, ok)
	v, ok := c.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	c.Delete("b")
	assert.Equal(t, 0, c.Size())
}
