package catalog

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/example/woo-storefront/modules/cache"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
)

// ResponseCachePrefix scopes transport cache keys in the shared storage.
const ResponseCachePrefix = "woo:"

// DefaultResponseTTL is how long a store response is reused.
const DefaultResponseTTL = 15 * time.Minute

// Module provides the catalog client as a mono module.
type Module struct {
	config      Config
	responseTTL time.Duration
	logger      types.Logger

	cachePlugin *cache.PluginModule
	responses   cache.CacheService
	client      *Client
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
	_ mono.UsePluginModule       = (*Module)(nil)
)

// NewModule creates a new catalog module.
func NewModule(cfg Config, responseTTL time.Duration, logger types.Logger) *Module {
	if responseTTL <= 0 {
		responseTTL = DefaultResponseTTL
	}
	return &Module{
		config:      cfg,
		responseTTL: responseTTL,
		logger:      logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "catalog"
}

// SetPlugin receives plugin instances from the mono framework.
func (m *Module) SetPlugin(alias string, plugin mono.PluginModule) {
	if alias != "cache" {
		return
	}
	if cachePlugin, ok := plugin.(*cache.PluginModule); ok {
		m.cachePlugin = cachePlugin
		m.logger.Debug("Cache plugin injected")
	}
}

// Start builds the client. Missing credentials fail here, before any request.
func (m *Module) Start(_ context.Context) error {
	if m.cachePlugin == nil {
		return ErrCachePluginMissing
	}

	responses, err := m.cachePlugin.Service(ResponseCachePrefix, m.responseTTL)
	if err != nil {
		return fmt.Errorf("failed to get response cache: %w", err)
	}

	client, err := NewClient(m.config,
		WithLogger(m.logger),
		WithResponseCache(responses),
	)
	if err != nil {
		return fmt.Errorf("failed to create catalog client: %w", err)
	}

	m.responses = responses
	m.client = client
	m.logger.Info("Catalog module started",
		"store", storeHost(m.config.BaseURL),
		"response_ttl", m.responseTTL.String())
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Catalog module stopped")
	return nil
}

// Client returns the catalog client. Nil before Start.
func (m *Module) Client() *Client {
	return m.client
}

// ResponseCacheStats returns the transport cache counters.
func (m *Module) ResponseCacheStats() cache.StatsSnapshot {
	if m.responses == nil {
		return cache.StatsSnapshot{Prefix: ResponseCachePrefix}
	}
	return m.responses.Stats()
}

// Health returns the current health status. It does not call the store.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.client == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "client not initialized",
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"store":        storeHost(m.config.BaseURL),
			"response_ttl": m.responseTTL.String(),
		},
	}
}

func storeHost(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	return u.Host
}
