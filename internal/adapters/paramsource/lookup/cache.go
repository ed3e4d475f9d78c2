package lookup

import (
	"context"
	"errors"
	"sync"
	"time"

	"pkpd-profile/internal/domain/drugs"
	"pkpd-profile/internal/ports/paramsource"

	"golang.org/x/sync/singleflight"
)

type cacheEntry struct {
	params  paramsource.Params
	err     error // solo se cachea ErrNotFound
	expires time.Time
}

// Cache memoriza resultados de una fuente lenta (PubChem) por nombre normalizado.
// Lookups concurrentes del mismo nombre comparten una sola llamada upstream.
type Cache struct {
	src        paramsource.Source
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	group      singleflight.Group

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// DefaultMaxEntries acota el mapa; nombres arbitrarios también generan entradas (NotFound).
const DefaultMaxEntries = 1024

func NewCache(src paramsource.Source, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Cache{
		src:        src,
		ttl:        ttl,
		maxEntries: DefaultMaxEntries,
		now:        time.Now,
		entries:    make(map[string]cacheEntry),
	}
}

func (c *Cache) Lookup(ctx context.Context, name string) (paramsource.Params, error) {
	key := drugs.NormalizeName(name)
	if key == "" {
		return paramsource.Params{}, paramsource.ErrNotFound
	}

	if e, ok := c.get(key); ok {
		return e.params, e.err
	}

	// La llamada compartida no depende de la cancelación de quien llegó primero;
	// cada caller deja de esperar con su propio ctx.
	upstreamCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		p, err := c.src.Lookup(upstreamCtx, name)
		if err == nil || errors.Is(err, paramsource.ErrNotFound) {
			c.put(key, cacheEntry{params: p, err: err, expires: c.now().Add(c.ttl)})
		}
		return p, err
	})

	select {
	case <-ctx.Done():
		return paramsource.Params{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return paramsource.Params{}, res.Err
		}
		return res.Val.(paramsource.Params), nil
	}
}

func (c *Cache) get(key string) (cacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expires) {
		return cacheEntry{}, false
	}
	return e, true
}

func (c *Cache) put(key string, e cacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.pruneLocked()
	}
	c.entries[key] = e
}

// pruneLocked borra las entradas vencidas y, si sigue lleno, la que vence primero.
func (c *Cache) pruneLocked() {
	now := c.now()
	for k, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, k)
		}
	}
	if len(c.entries) < c.maxEntries {
		return
	}

	var (
		oldestKey string
		oldest    time.Time
	)
	for k, e := range c.entries {
		if oldestKey == "" || e.expires.Before(oldest) {
			oldestKey, oldest = k, e.expires
		}
	}
	delete(c.entries, oldestKey)
}

var _ paramsource.Source = (*Cache)(nil)
