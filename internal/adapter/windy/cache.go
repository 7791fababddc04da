package windy

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Samulko/SurfForcast/internal/domain"
	"github.com/Samulko/SurfForcast/internal/forecast"
	"github.com/Samulko/SurfForcast/internal/observability"
)

// CachedFetcher wraps a Fetcher with an in-memory TTL'd LRU cache. Model
// runs update a handful of times per day, so identical requests inside the
// TTL window can reuse the previous document instead of hitting the API
// quota again.
type CachedFetcher struct {
	inner   forecast.Fetcher
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedFetcher creates a cache decorator around a fetcher. The clock is
// injectable so tests can step time past the TTL.
func NewCachedFetcher(inner forecast.Fetcher, maxEntries int, ttl time.Duration, clock clockwork.Clock, metrics *observability.Metrics) *CachedFetcher {
	return &CachedFetcher{
		inner:   inner,
		cache:   newLRUCache(maxEntries, ttl, clock),
		metrics: metrics,
	}
}

func (c *CachedFetcher) PointForecast(ctx context.Context, req domain.PointRequest) (*domain.RawModelDocument, error) {
	key := cacheKey(req)
	if doc, ok := c.cache.get(key); ok {
		c.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return doc, nil
	}
	c.metrics.CacheLookups.WithLabelValues("miss").Inc()

	doc, err := c.inner.PointForecast(ctx, req)
	if err != nil {
		return nil, err
	}
	// Only cache valid documents so degraded responses can be retried.
	if doc.Valid() {
		c.cache.put(key, doc)
	}
	return doc, nil
}

// cacheKey identifies one upstream call. Coordinates are rounded to four
// decimal places (~11m), matching the precision the API meaningfully resolves.
func cacheKey(req domain.PointRequest) string {
	return fmt.Sprintf("%s|%s|%.4f,%.4f",
		req.Model, strings.Join(req.Parameters, ","), req.Lat, req.Lon)
}

// lruCache is a thread-safe LRU cache with per-entry expiry.
type lruCache struct {
	maxEntries int
	ttl        time.Duration
	clock      clockwork.Clock

	mu      sync.Mutex
	entries map[string]*entry
	head    *entry // most recently used
	tail    *entry // least recently used
}

type entry struct {
	key       string
	value     *domain.RawModelDocument
	expiresAt time.Time
	prev      *entry
	next      *entry
}

func newLRUCache(maxEntries int, ttl time.Duration, clock clockwork.Clock) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		ttl:        ttl,
		clock:      clock,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (*domain.RawModelDocument, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.clock.Now().Before(e.expiresAt) {
		delete(c.entries, key)
		c.remove(e)
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value *domain.RawModelDocument) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.clock.Now().Add(c.ttl)

	if e, ok := c.entries[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value, expiresAt: expiresAt}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
