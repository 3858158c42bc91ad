package hn

import (
	"sync"
	"time"
)

type cacheEntry struct {
	val []byte
	exp time.Time
}

// memoryCache is a TTL cache for raw API payloads, keyed by URL.
type memoryCache struct {
	mu  sync.RWMutex
	m   map[string]cacheEntry
	ttl time.Duration
}

func newMemoryCache(ttl time.Duration) *memoryCache {
	return &memoryCache{m: make(map[string]cacheEntry), ttl: ttl}
}

func (c *memoryCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.m[key]
	if !ok || time.Now().After(e.exp) {
		return nil, false
	}
	return e.val, true
}

func (c *memoryCache) Set(key string, val []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = cacheEntry{val: val, exp: time.Now().Add(c.ttl)}
}
