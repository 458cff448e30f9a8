// Package memory provides in-memory adapter implementations, used in
// tests and when persistence is not wanted.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/bricsin4u/AIO-research/internal/core/domain"
	"github.com/bricsin4u/AIO-research/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.EnvelopeCache = (*Cache)(nil)

type entry struct {
	env       domain.ContentEnvelope
	expiresAt time.Time
}

// Cache is an in-memory implementation of driven.EnvelopeCache.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
}

// NewCache creates an in-memory envelope cache.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = domain.DefaultCacheTTL
	}
	return &Cache{entries: make(map[string]entry), ttl: ttl}
}

func cacheKey(url, query string) string {
	return url + "\x00" + query
}

// Get returns a cached envelope, or domain.ErrNotFound when absent or
// expired.
func (c *Cache) Get(_ context.Context, url, query string) (*domain.ContentEnvelope, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[cacheKey(url, query)]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, domain.ErrNotFound
	}
	env := e.env
	return &env, nil
}

// Put stores an envelope, replacing any previous entry.
func (c *Cache) Put(_ context.Context, url, query string, env *domain.ContentEnvelope) error {
	if env == nil {
		return domain.ErrInvalidInput
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(url, query)] = entry{env: *env, expiresAt: time.Now().Add(c.ttl)}
	return nil
}

// Close is a no-op for the in-memory cache.
func (c *Cache) Close() error {
	return nil
}
