package catalog

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// countCache holds per-category review sums. Every purge starts a new
// generation; a sum computed under an older generation is never stored.
type countCache struct {
	mu         sync.Mutex
	entries    *lru.Cache[string, int]
	generation uint64
}

func newCountCache(size int) (*countCache, error) {
	entries, err := lru.New[string, int](size)
	if err != nil {
		return nil, err
	}
	return &countCache{entries: entries}, nil
}

// lookup returns the cached sum for key, or the generation to pass to store
// once the sum has been read.
func (c *countCache) lookup(key string) (int, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	total, ok := c.entries.Get(key)
	return total, c.generation, ok
}

// store caches total unless a write purged the cache after generation was
// observed.
func (c *countCache) store(generation uint64, key string, total int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		return false
	}
	c.entries.Add(key, total)
	return true
}

func (c *countCache) purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.entries.Purge()
}
