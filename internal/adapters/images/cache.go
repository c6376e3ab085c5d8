package images

import "sync"

// urlCache is a bounded name -> URL map with FIFO eviction. Scoped to the
// process lifetime only; nothing is persisted.
type urlCache struct {
	mu      sync.RWMutex
	entries map[string]string
	order   []string
	maxSize int
}

// newURLCache creates a cache holding at most maxSize entries.
// A non-positive size disables caching entirely.
func newURLCache(maxSize int) *urlCache {
	return &urlCache{
		entries: make(map[string]string),
		maxSize: maxSize,
	}
}

func (c *urlCache) get(name string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	u, ok := c.entries[name]
	return u, ok
}

func (c *urlCache) put(name, url string) {
	if c.maxSize <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[name]; exists {
		c.entries[name] = url
		return
	}
	// Evict the oldest entry once full.
	if len(c.order) >= c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[name] = url
	c.order = append(c.order, name)
}

func (c *urlCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
