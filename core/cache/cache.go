package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// TTL holds one lazily loaded value for a fixed time-to-live.
// Concurrent misses are collapsed into a single load. A load that started
// before Invalidate never stores its result.
type TTL[T any] struct {
	ttl time.Duration
	now func() time.Time

	mu    sync.RWMutex
	value T
	built time.Time
	has   bool
	gen   uint64
	sf    singleflight.Group
}

// NewTTL creates a cache. A zero ttl disables caching; every Get loads.
func NewTTL[T any](ttl time.Duration) *TTL[T] {
	return &TTL[T]{ttl: ttl, now: time.Now}
}

// IsExpired reports whether the cached value must be reloaded.
func (c *TTL[T]) IsExpired() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.expiredLocked()
}

func (c *TTL[T]) expiredLocked() bool {
	if c.ttl == 0 || !c.has {
		return true
	}
	return c.now().Sub(c.built) > c.ttl
}

// Get returns the cached value or loads it with load.
func (c *TTL[T]) Get(ctx context.Context, load func(ctx context.Context) (T, error)) (T, error) {
	// Fast path: value exists and is fresh
	c.mu.RLock()
	if !c.expiredLocked() {
		v := c.value
		c.mu.RUnlock()
		return v, nil
	}
	gen := c.gen
	c.mu.RUnlock()

	// Slow path: one load per generation to prevent stampedes
	result, err, _ := c.sf.Do(strconv.FormatUint(gen, 10), func() (interface{}, error) {
		c.mu.RLock()
		if !c.expiredLocked() && c.gen == gen {
			v := c.value
			c.mu.RUnlock()
			return v, nil
		}
		c.mu.RUnlock()

		v, err := load(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.gen == gen {
			c.value = v
			c.built = c.now()
			c.has = true
		}
		c.mu.Unlock()

		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return result.(T), nil
}

// Invalidate drops the cached value and discards loads still in flight.
func (c *TTL[T]) Invalidate() {
	c.mu.Lock()
	var zero T
	c.value = zero
	c.has = false
	c.gen++
	c.mu.Unlock()
}
