// Package cache provides an in-process, size-bounded cache whose entries
// expire after a fixed time to live.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

// TTL is a thread-safe cache of values by string key. Entries expire ttl
// after they were set; when full, the least recently used entry is evicted.
type TTL[V any] struct {
	lru *expirable.LRU[string, V]

	// guards check-then-add in SetIfAbsent
	mu    sync.Mutex
	group singleflight.Group
}

// NewTTL creates a cache. capacity <= 0 means unbounded.
func NewTTL[V any](ttl time.Duration, capacity int) *TTL[V] {
	if capacity < 0 {
		capacity = 0
	}
	return &TTL[V]{lru: expirable.NewLRU[string, V](capacity, nil, ttl)}
}

// Get returns the live value for key.
func (c *TTL[V]) Get(key string) (V, bool) {
	return c.lru.Get(key)
}

// Set stores value under key, replacing any previous entry.
func (c *TTL[V]) Set(key string, value V) {
	c.lru.Add(key, value)
}

// SetIfAbsent stores value only when key has no live entry and reports
// whether it did.
func (c *TTL[V]) SetIfAbsent(key string, value V) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.lru.Get(key); ok {
		return false
	}
	c.lru.Add(key, value)
	return true
}

// Delete removes key.
func (c *TTL[V]) Delete(key string) {
	c.lru.Remove(key)
}

// Purge removes every entry.
func (c *TTL[V]) Purge() {
	c.lru.Purge()
}

// Len returns the number of stored entries. Expired entries count until
// the background sweep drops them.
func (c *TTL[V]) Len() int {
	return c.lru.Len()
}

// GetOrLoad returns the cached value for key or calls load once, however
// many callers miss concurrently, and caches its result. Errors are not
// cached. load does not observe ctx cancellation: one caller giving up
// must not fail the others waiting on the same key.
func (c *TTL[V]) GetOrLoad(ctx context.Context, key string, load func(ctx context.Context) (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	res, err, _ := c.group.Do(key, func() (interface{}, error) {
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v, err := load(loadCtx)
		if err != nil {
			return v, err
		}
		c.Set(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(V), nil
}
