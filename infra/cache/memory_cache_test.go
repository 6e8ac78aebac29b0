package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	c := NewMemoryCache()

	c.Set("latest-EUR", "value", time.Minute)

	got, ok := c.Get("latest-EUR")
	require.True(t, ok)
	assert.Equal(t, "value", got)
}

func TestMemoryCache_MissingKey(t *testing.T) {
	c := NewMemoryCache()

	_, ok := c.Get("nope")
	assert.False(t, ok)
}

func TestMemoryCache_ExpiredEntryIsNotFound(t *testing.T) {
	c := NewMemoryCache()

	c.Set("latest-EUR", "value", 10*time.Millisecond)
	time.Sleep(25 * time.Millisecond)

	_, ok := c.Get("latest-EUR")
	assert.False(t, ok)
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	c := NewMemoryCache()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", n%4)
			for j := 0; j < 200; j++ {
				c.Set(key, j, time.Minute)
				if v, ok := c.Get(key); ok {
					if _, isInt := v.(int); !isInt {
						t.Errorf("unexpected value type %T for %s", v, key)
					}
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestMemoryCache_SetOverwrites(t *testing.T) {
	c := NewMemoryCache()

	c.Set("k", "old", time.Minute)
	c.Set("k", "new", time.Minute)

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "new", got)
}
