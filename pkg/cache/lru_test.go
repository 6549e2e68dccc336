package cache_test

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/edgeworker/pkg/cache"
)

func TestLRUCache(t *testing.T) {
	t.Parallel()

	t.Run("put get and update", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRUCache[string, int](3)
		c.Put("a", 1)
		c.Put("a", 2)

		val, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 2, val)
		assert.Equal(t, 1, c.Len())

		_, ok = c.Get("missing")
		assert.False(t, ok)
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRUCache[string, int](2)
		c.Put("a", 1)
		c.Put("b", 2)
		c.Get("a")
		c.Put("c", 3)

		_, ok := c.Get("b")
		assert.False(t, ok)
		_, ok = c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("remove", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRUCache[string, int](2)
		c.Put("a", 1)
		assert.True(t, c.Remove("a"))
		assert.False(t, c.Remove("a"))
		assert.Zero(t, c.Len())
	})

	t.Run("remove if", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRUCache[string, int](2)
		c.Put("a", 1)
		assert.False(t, c.RemoveIf("a", func(v int) bool { return v == 2 }))
		assert.Equal(t, 1, c.Len())
		assert.True(t, c.RemoveIf("a", func(v int) bool { return v == 1 }))
		assert.False(t, c.RemoveIf("a", func(int) bool { return true }))
		assert.Zero(t, c.Len())
	})

	t.Run("invalid capacity panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { cache.NewLRUCache[string, int](0) })
	})

	t.Run("concurrent access", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRUCache[string, int](50)
		var wg sync.WaitGroup
		for i := range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := range 100 {
					key := strconv.Itoa(i*100 + j)
					c.Put(key, j)
					c.Get(key)
				}
			}()
		}
		wg.Wait()
		assert.LessOrEqual(t, c.Len(), 50)
	})
}
