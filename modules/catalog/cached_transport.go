package catalog

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/example/woo-storefront/modules/cache"
	"github.com/go-monolith/mono/pkg/types"
	"golang.org/x/sync/singleflight"
)

// cachedResponse is the stored form of a store response.
type cachedResponse struct {
	Body      json.RawMessage `json:"body"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// CachedTransport serves repeated requests from the response cache until the
// cache entry expires (cache-aside). Failed requests are never cached.
type CachedTransport struct {
	next    Transport
	cache   cache.CacheService
	logger  types.Logger
	sfGroup singleflight.Group // Prevents cache stampede
}

var _ Transport = (*CachedTransport)(nil)

// NewCachedTransport decorates next with the response cache. The entry
// lifetime is the default TTL of c.
func NewCachedTransport(next Transport, c cache.CacheService, logger types.Logger) *CachedTransport {
	return &CachedTransport{
		next:   next,
		cache:  c,
		logger: logger,
	}
}

// CacheKey identifies a request by endpoint and query. url.Values.Encode sorts
// by key, so equal queries built in any order share an entry. Credentials are
// added by HTTPTransport and never appear here.
func CacheKey(endpoint string, query url.Values) string {
	if len(query) == 0 {
		return endpoint
	}
	return endpoint + "?" + query.Encode()
}

func (t *CachedTransport) Fetch(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	key := CacheKey(endpoint, query)

	// Step 1: Check cache first
	var cached cachedResponse
	found, err := t.cache.Get(ctx, key, &cached)
	if err != nil {
		t.logger.Warn("Response cache read failed", "key", key, "error", err)
	}
	if found {
		return cached.Body, nil
	}

	// Step 2: Cache miss, fetch once per key even under concurrent misses
	val, err, shared := t.sfGroup.Do(key, func() (any, error) {
		body, err := t.next.Fetch(ctx, endpoint, query)
		if err != nil {
			return nil, err
		}

		// Step 3: Populate cache
		entry := cachedResponse{Body: body, FetchedAt: time.Now().UTC()}
		if err := t.cache.Set(ctx, key, entry); err != nil {
			t.logger.Warn("Response cache write failed", "key", key, "error", err)
		}
		return body, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		t.logger.Debug("Shared in-flight store request", "key", key)
	}
	return val.([]byte), nil
}

// Stats returns the response cache counters.
func (t *CachedTransport) Stats() cache.StatsSnapshot {
	return t.cache.Stats()
}
