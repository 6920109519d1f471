package api

import (
	"context"
	"sync"

	"github.com/mesh-intelligence/folio/internal/content"
	"github.com/mesh-intelligence/folio/internal/service"
)

var _ service.Notifier = (*PageCache)(nil)

// PageCache holds the rendered public view until a write invalidates it.
// It is the service's Notifier.
type PageCache struct {
	mu    sync.Mutex
	gen   uint64 // bumped by every Invalidate
	pages map[string]content.Portfolio
}

// NewPageCache returns an empty cache.
func NewPageCache() *PageCache {
	return &PageCache{pages: make(map[string]content.Portfolio)}
}

// Invalidate drops the cached views for paths.
func (c *PageCache) Invalidate(paths ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	for _, p := range paths {
		delete(c.pages, p)
	}
}

// get returns the cached view for path, loading it on a miss. A view that
// load reports as degraded, or one loaded while an invalidation happened,
// is returned but not stored.
func (c *PageCache) get(ctx context.Context, path string, load func(context.Context) (content.Portfolio, bool)) content.Portfolio {
	c.mu.Lock()
	p, ok := c.pages[path]
	gen := c.gen
	c.mu.Unlock()
	if ok {
		return p
	}

	p, fresh := load(ctx)
	if !fresh {
		return p
	}

	c.mu.Lock()
	if c.gen == gen {
		c.pages[path] = p
	}
	c.mu.Unlock()
	return p
}
