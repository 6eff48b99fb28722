package common

import (
	"sync"
	"time"
)

// Cache is a single-value TTL cache. It is an explicit object rather than a
// timestamp pair buried in a struct: the holder, the stored value, and the
// expiry rule live in one place.
type Cache[T any] struct {
	mu  sync.Mutex
	val T
	ts  time.Time
	ttl time.Duration
	set bool
}

func NewCache[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{ttl: ttl}
}

// Get returns the cached value and true while it is fresh. After the TTL
// elapses the entry is dropped and the zero value comes back with false.
func (c *Cache[T]) Get() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.set || time.Since(c.ts) > c.ttl {
		var zero T
		c.val = zero
		c.set = false
		return zero, false
	}
	return c.val, true
}

func (c *Cache[T]) Put(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.val = v
	c.ts = time.Now()
	c.set = true
}

// Invalidate drops the entry immediately, e.g. after a write that makes the
// cached aggregate stale.
func (c *Cache[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	c.val = zero
	c.set = false
}
