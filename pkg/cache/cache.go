package cache

import (
	"sync"
	"time"
)

// Cache is a keyed store whose entries expire after a TTL
type Cache[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V, ttl time.Duration)
	// SetIfAbsent stores value only when key is missing or expired and
	// reports whether it did so
	SetIfAbsent(key string, value V, ttl time.Duration) bool
	GetOrSet(key string, ttl time.Duration, compute func() (V, error)) (V, error)
	Delete(key string)
	Clear()
	Size() int
	Stop()
}

type entry[V any] struct {
	value      V
	expiration time.Time
}

// TTLCache is a mutex guarded map with a background sweeper
type TTLCache[V any] struct {
	items    map[string]entry[V]
	mu       sync.RWMutex
	now      func() time.Time
	interval time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

// NewTTLCache starts a cache that drops expired entries every cleanupInterval
func NewTTLCache[V any](cleanupInterval time.Duration) *TTLCache[V] {
	c := &TTLCache[V]{
		items:    make(map[string]entry[V]),
		now:      time.Now,
		interval: cleanupInterval,
		stop:     make(chan struct{}),
	}
	go c.sweep()
	return c
}

// WithClock replaces the time source, for tests
func (c *TTLCache[V]) WithClock(now func() time.Time) *TTLCache[V] {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
	return c
}

func (c *TTLCache[V]) live(e entry[V], ok bool) bool {
	return ok && c.now().Before(e.expiration)
}

func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.items[key]
	if !c.live(e, ok) {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *TTLCache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = entry[V]{value: value, expiration: c.now().Add(ttl)}
}

func (c *TTLCache[V]) SetIfAbsent(key string, value V, ttl time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if c.live(e, ok) {
		return false
	}
	c.items[key] = entry[V]{value: value, expiration: c.now().Add(ttl)}
	return true
}

// GetOrSet holds the write lock while compute runs so concurrent callers
// for a cold key only compute once
func (c *TTLCache[V]) GetOrSet(key string, ttl time.Duration, compute func() (V, error)) (V, error) {
	c.mu.RLock()
	e, ok := c.items[key]
	if c.live(e, ok) {
		c.mu.RUnlock()
		return e.value, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok = c.items[key]
	if c.live(e, ok) {
		return e.value, nil
	}

	value, err := compute()
	if err != nil {
		var zero V
		return zero, err
	}
	c.items[key] = entry[V]{value: value, expiration: c.now().Add(ttl)}
	return value, nil
}

func (c *TTLCache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

func (c *TTLCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]entry[V])
}

// Size includes expired entries not yet swept
func (c *TTLCache[V]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

// Stop ends the sweeper. Safe to call more than once.
func (c *TTLCache[V]) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *TTLCache[V]) sweep() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stop:
			return
		}
	}
}

func (c *TTLCache[V]) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, e := range c.items {
		if !now.Before(e.expiration) {
			delete(c.items, key)
		}
	}
}
