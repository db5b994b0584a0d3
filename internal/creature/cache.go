package creature

import (
	"sync"
	"time"
)

type cacheEntry struct {
	rec     Record
	expires time.Time
}

// Cache maps creature id to a record with an expiry.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[int]cacheEntry
	now     func() time.Time
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl, entries: make(map[int]cacheEntry, 128), now: time.Now}
}

// Get returns a cached record if present and unexpired. Expired entries are
// evicted on read.
func (c *Cache) Get(id int) (Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[id]
	if !ok {
		return Record{}, false
	}
	if !c.now().Before(e.expires) {
		delete(c.entries, id)
		return Record{}, false
	}
	return e.rec, true
}

func (c *Cache) Put(rec Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[rec.ID] = cacheEntry{rec: rec, expires: c.now().Add(c.ttl)}
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
