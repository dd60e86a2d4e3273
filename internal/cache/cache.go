// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache provides the transient query cache shared by every entry
// of one verification run. Entries expire after a TTL, the cache holds at
// most MaxSize keys, and concurrent lookups of the same key share a single
// in-flight fetch.
package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/pdiddy/citecheck/pkg/types"
)

// Key builds the cache key for a normalized query against one source.
func Key(source types.SourceID, query string) string {
	return string(source) + "|" + query
}

type entry[V any] struct {
	value   V
	stored  time.Time
	expires time.Time
}

// Cache is a TTL-bound, size-bound, single-flight cache. The zero value is
// not usable; call New.
type Cache[V any] struct {
	cfg types.CacheConfig

	mu      sync.Mutex
	entries map[string]entry[V]

	group  singleflight.Group
	hits   atomic.Int64
	misses atomic.Int64

	// now is swapped in tests.
	now func() time.Time
}

// New returns an empty cache. A disabled cache stores nothing but still
// collapses concurrent fetches of the same key. A TTL of 0 never expires.
func New[V any](cfg types.CacheConfig) *Cache[V] {
	return &Cache[V]{
		cfg:     cfg,
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

// Get returns the live value stored under key.
func (c *Cache[V]) Get(key string) (V, bool) {
	v, ok := c.lookup(key)
	if ok {
		c.hits.Add(1)
	}
	return v, ok
}

func (c *Cache[V]) lookup(key string) (V, bool) {
	var zero V
	if !c.cfg.Enabled {
		return zero, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if !e.expires.IsZero() && !c.now().Before(e.expires) {
		delete(c.entries, key)
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, evicting expired entries and then the oldest
// entry when the cache is full.
func (c *Cache[V]) Set(key string, value V) {
	if !c.cfg.Enabled {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, exists := c.entries[key]; !exists && c.cfg.MaxSize > 0 && len(c.entries) >= c.cfg.MaxSize {
		c.evictLocked(now)
	}
	e := entry[V]{value: value, stored: now}
	if c.cfg.TTL > 0 {
		e.expires = now.Add(c.cfg.TTL)
	}
	c.entries[key] = e
}

func (c *Cache[V]) evictLocked(now time.Time) {
	for k, e := range c.entries {
		if !e.expires.IsZero() && !now.Before(e.expires) {
			delete(c.entries, k)
		}
	}
	if len(c.entries) < c.cfg.MaxSize {
		return
	}
	var oldestKey string
	var oldest time.Time
	for k, e := range c.entries {
		if oldestKey == "" || e.stored.Before(oldest) || (e.stored.Equal(oldest) && k < oldestKey) {
			oldestKey, oldest = k, e.stored
		}
	}
	delete(c.entries, oldestKey)
}

// Do returns the cached value for key, or runs fetch exactly once across
// all concurrent callers asking for the same key. Every waiter receives the
// same value or the same error. Only successful results are stored.
//
// fetch runs detached from the leader's cancellation so one caller giving
// up does not fail the others; callers stop waiting when their own ctx ends.
func (c *Cache[V]) Do(ctx context.Context, key string, fetch func(context.Context) (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	ch := c.group.DoChan(key, func() (any, error) {
		// A flight that finished between Get and DoChan already stored the value.
		if v, ok := c.lookup(key); ok {
			c.hits.Add(1)
			return v, nil
		}
		c.misses.Add(1)
		v, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return v, err
		}
		c.Set(key, v)
		return v, nil
	})

	var zero V
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return zero, r.Err
		}
		return r.Val.(V), nil
	}
}

// Len returns the number of stored entries, including expired ones not yet evicted.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats reports configuration and usage counters.
func (c *Cache[V]) Stats() types.CacheStats {
	return types.CacheStats{
		Enabled: c.cfg.Enabled,
		Size:    c.Len(),
		MaxSize: c.cfg.MaxSize,
		TTL:     c.cfg.TTL,
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}
}
