// Package contextcache memoizes one expensive value for a fixed duration.
package contextcache

import (
	"context"
	"sync/atomic"
	"time"
)

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// Cache holds a single value until it expires. Concurrent misses may each
// run the refresh; the last one stored wins. refresh must be idempotent.
type Cache[T any] struct {
	ttl     time.Duration
	now     func() time.Time
	current atomic.Pointer[entry[T]]
}

// New creates a cache whose entries live for ttl.
func New[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{ttl: ttl, now: time.Now}
}

// GetOrRefresh returns the cached value, calling refresh when the cache is
// empty or expired. A failed refresh leaves the previous entry in place.
func (c *Cache[T]) GetOrRefresh(ctx context.Context, refresh func(context.Context) (T, error)) (T, error) {
	now := c.now()
	if e := c.current.Load(); e != nil && now.Before(e.expiresAt) {
		return e.value, nil
	}

	v, err := refresh(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	c.current.Store(&entry[T]{value: v, expiresAt: now.Add(c.ttl)})
	return v, nil
}

// Invalidate drops the cached value.
func (c *Cache[T]) Invalidate() {
	c.current.Store(nil)
}
