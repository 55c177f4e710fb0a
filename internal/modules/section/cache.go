package section

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// payloadCache is a small TTL cache over section payloads with singleflight
// so a burst of storefront GETs produces one database read per slug.
type payloadCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	group   singleflight.Group
}

type cacheEntry struct {
	payload *Payload
	expires time.Time
}

func newPayloadCache(ttl time.Duration) *payloadCache {
	return &payloadCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

func (c *payloadCache) get(slug string) (*Payload, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[slug]
	if !ok || time.Now().After(e.expires) {
		return nil, false
	}
	return e.payload, true
}

// load returns the cached payload or runs fetch once for concurrent callers.
func (c *payloadCache) load(slug string, fetch func() (*Payload, error)) (*Payload, error) {
	if p, ok := c.get(slug); ok {
		return p, nil
	}
	v, err, _ := c.group.Do(slug, func() (interface{}, error) {
		if p, ok := c.get(slug); ok {
			return p, nil
		}
		p, err := fetch()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[slug] = cacheEntry{payload: p, expires: time.Now().Add(c.ttl)}
		c.mu.Unlock()
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Payload), nil
}

func (c *payloadCache) invalidate(slug string) {
	c.mu.Lock()
	delete(c.entries, slug)
	c.mu.Unlock()
}
