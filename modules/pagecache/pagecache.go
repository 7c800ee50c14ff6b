// Package pagecache stores rendered pages keyed by request path, each kind
// of page with its own freshness window.
package pagecache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/example/woo-storefront/modules/cache"
	"github.com/go-monolith/mono/pkg/types"
)

// Prefix scopes page keys in the shared storage.
const Prefix = "page:"

// Kind classifies a page for its freshness window.
type Kind string

const (
	KindHome     Kind = "home"
	KindCategory Kind = "category"
	KindProduct  Kind = "product"
	KindSearch   Kind = "search"
)

// TTLs holds the freshness window of each page kind.
type TTLs struct {
	Home     time.Duration
	Category time.Duration
	Product  time.Duration
	Search   time.Duration
}

// DefaultTTLs returns the standard windows: home 2h, category 1h,
// product 30m, search 1h.
func DefaultTTLs() TTLs {
	return TTLs{
		Home:     2 * time.Hour,
		Category: time.Hour,
		Product:  30 * time.Minute,
		Search:   time.Hour,
	}
}

// For returns the window of kind. Unknown kinds get the shortest window.
func (t TTLs) For(kind Kind) time.Duration {
	switch kind {
	case KindHome:
		return t.Home
	case KindCategory:
		return t.Category
	case KindProduct:
		return t.Product
	case KindSearch:
		return t.Search
	default:
		return min(t.Home, t.Category, t.Product, t.Search)
	}
}

// Page is a rendered response.
type Page struct {
	Kind        Kind      `json:"kind"`
	Status      int       `json:"status"`
	ContentType string    `json:"content_type"`
	Body        string    `json:"body"`
	RenderedAt  time.Time `json:"rendered_at"`
}

// Cache is the page tier. It is independent of the response cache; a page
// may be served stale for up to its own window.
type Cache struct {
	store  cache.CacheService
	ttls   TTLs
	logger types.Logger
}

// New creates a page cache over store.
func New(store cache.CacheService, ttls TTLs, logger types.Logger) *Cache {
	return &Cache{store: store, ttls: ttls, logger: logger}
}

// Key normalizes a request path: trailing slashes are dropped, except for "/".
func Key(path string) string {
	if path == "" {
		return "/"
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			return "/"
		}
	}
	return path
}

// Get returns the cached page for path. Storage failures read as a miss.
func (c *Cache) Get(ctx context.Context, path string) (*Page, bool) {
	var p Page
	found, err := c.store.Get(ctx, Key(path), &p)
	if err != nil {
		c.logger.Warn("Page cache read failed", "path", path, "error", err)
		return nil, false
	}
	if !found {
		return nil, false
	}
	return &p, true
}

// Put stores a page under path with the window of its kind. Storage failures
// are logged, never returned.
func (c *Cache) Put(ctx context.Context, path string, p *Page) {
	if err := c.store.SetWithTTL(ctx, Key(path), p, c.ttls.For(p.Kind)); err != nil {
		c.logger.Warn("Page cache write failed", "path", path, "error", err)
	}
}

// Purge drops the page cached under path. The next request renders fresh.
func (c *Cache) Purge(ctx context.Context, path string) error {
	if err := c.store.Delete(ctx, Key(path)); err != nil {
		return fmt.Errorf("failed to purge %s: %w", path, err)
	}
	c.logger.Info("Page purged", "path", Key(path))
	return nil
}

// TTL returns the window of kind.
func (c *Cache) TTL(kind Kind) time.Duration {
	return c.ttls.For(kind)
}

// Stats returns the page cache counters.
func (c *Cache) Stats() cache.StatsSnapshot {
	return c.store.Stats()
}
