package directions

import (
	"context"
	"fmt"
	"sync"

	"sidewalksafe/internal/domain"
)

// CachedProvider wraps a Provider with an in-memory LRU cache over route
// lookups. Suggestions are not cached: partial input rarely repeats.
type CachedProvider struct {
	inner Provider
	cache *lruCache
}

func NewCachedProvider(inner Provider, maxEntries int) *CachedProvider {
	return &CachedProvider{
		inner: inner,
		cache: newLRUCache(maxEntries),
	}
}

func (c *CachedProvider) WalkingRoute(ctx context.Context, start, end string) (domain.Route, error) {
	key := fmt.Sprintf("%s|%s", start, end)
	if route, ok := c.cache.get(key); ok {
		return route, nil
	}
	route, err := c.inner.WalkingRoute(ctx, start, end)
	if err != nil {
		return route, err
	}
	c.cache.put(key, route)
	return route, nil
}

func (c *CachedProvider) Suggest(ctx context.Context, input string) ([]domain.PlaceSuggestion, error) {
	return c.inner.Suggest(ctx, input)
}

// lruCache is a small thread-safe LRU over routes.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value domain.Route
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (domain.Route, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	en, ok := c.entries[key]
	if !ok {
		return domain.Route{}, false
	}
	c.moveToFront(en)
	return en.value, true
}

func (c *lruCache) put(key string, value domain.Route) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if en, ok := c.entries[key]; ok {
		en.value = value
		c.moveToFront(en)
		return
	}

	en := &entry{key: key, value: value}
	c.entries[key] = en
	en.next = c.head
	if c.head != nil {
		c.head.prev = en
	}
	c.head = en
	if c.tail == nil {
		c.tail = en
	}

	if len(c.entries) > c.maxEntries {
		evicted := c.tail
		c.tail = evicted.prev
		if c.tail != nil {
			c.tail.next = nil
		} else {
			c.head = nil
		}
		delete(c.entries, evicted.key)
	}
}

func (c *lruCache) moveToFront(en *entry) {
	if c.head == en {
		return
	}
	if en.prev != nil {
		en.prev.next = en.next
	}
	if en.next != nil {
		en.next.prev = en.prev
	}
	if c.tail == en {
		c.tail = en.prev
	}
	en.prev = nil
	en.next = c.head
	if c.head != nil {
		c.head.prev = en
	}
	c.head = en
	if c.tail == nil {
		c.tail = en
	}
}
