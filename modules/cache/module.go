package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	fiberredis "github.com/gofiber/storage/redis/v3"
)

// Backend names accepted by Config.Backend.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds plugin configuration.
type Config struct {
	Backend         string
	RedisURL        string
	PoolSize        int
	MaxEntries      int
	CleanupInterval time.Duration
}

// PluginModule owns the cache storage and hands out prefix-scoped services.
// Plugins start first and stop last.
type PluginModule struct {
	container types.ServiceContainer
	config    Config
	logger    types.Logger

	storage  Storage
	memory   *MemoryStorage
	redis    *fiberredis.Storage
	mu       sync.Mutex
	services map[string]CacheService
}

// Compile-time interface checks.
var (
	_ mono.PluginModule          = (*PluginModule)(nil)
	_ mono.HealthCheckableModule = (*PluginModule)(nil)
)

// NewPluginModule creates a new cache plugin module.
func NewPluginModule(cfg Config, logger types.Logger) *PluginModule {
	if cfg.Backend == "" {
		cfg.Backend = BackendMemory
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = 50
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 10000
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Minute
	}
	return &PluginModule{
		config:   cfg,
		logger:   logger,
		services: make(map[string]CacheService),
	}
}

// NewPluginModuleWithStorage creates a plugin over an existing storage. Start
// does not replace it.
func NewPluginModuleWithStorage(s Storage, logger types.Logger) *PluginModule {
	m := NewPluginModule(Config{}, logger)
	m.storage = s
	return m
}

// Name returns the module name.
func (m *PluginModule) Name() string {
	return "cache"
}

// Start connects the configured backend.
func (m *PluginModule) Start(ctx context.Context) error {
	if m.storage != nil {
		m.logger.Info("Cache plugin started", "backend", "external")
		return nil
	}

	switch m.config.Backend {
	case BackendMemory:
		m.memory = NewMemoryStorage(m.config.CleanupInterval, WithMaxEntries(m.config.MaxEntries))
		m.storage = m.memory
		m.logger.Info("Cache plugin started",
			"backend", BackendMemory,
			"max_entries", m.config.MaxEntries)
	case BackendRedis:
		s, err := NewRedisStorage(ctx, m.config.RedisURL, m.config.PoolSize)
		if err != nil {
			return fmt.Errorf("failed to start redis cache: %w", err)
		}
		m.redis = s
		m.storage = s
		m.logger.Info("Cache plugin started",
			"backend", BackendRedis,
			"redis", redactURL(m.config.RedisURL),
			"pool_size", m.config.PoolSize)
	default:
		return fmt.Errorf("unknown cache backend %q", m.config.Backend)
	}
	return nil
}

// Stop closes the storage connection.
func (m *PluginModule) Stop(_ context.Context) error {
	if m.storage != nil {
		if err := m.storage.Close(); err != nil {
			m.logger.WithError(err).Error("Error closing cache storage")
			return fmt.Errorf("failed to close cache storage: %w", err)
		}
	}
	m.logger.Info("Cache plugin stopped")
	return nil
}

// SetContainer sets the service container for this plugin.
func (m *PluginModule) SetContainer(container types.ServiceContainer) {
	m.container = container
}

// Container returns the service container for this plugin.
func (m *PluginModule) Container() types.ServiceContainer {
	return m.container
}

// Storage returns the raw backend. Nil before Start.
func (m *PluginModule) Storage() Storage {
	return m.storage
}

// Service returns the CacheService for prefix, creating it on first use.
// Consumers call it from their own Start, after the plugin has started.
func (m *PluginModule) Service(prefix string, ttl time.Duration) (CacheService, error) {
	if m.storage == nil {
		return nil, fmt.Errorf("cache plugin not started")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if svc, ok := m.services[prefix]; ok {
		return svc, nil
	}
	svc := NewCacheService(m.storage, prefix, ttl, m.logger.With("prefix", prefix))
	m.services[prefix] = svc
	return svc, nil
}

// Health returns the current health status.
func (m *PluginModule) Health(ctx context.Context) mono.HealthStatus {
	if m.storage == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "storage not initialized",
		}
	}

	details := map[string]any{"backend": m.config.Backend}

	if m.redis != nil {
		if err := pingRedis(ctx, m.redis); err != nil {
			return mono.HealthStatus{
				Healthy: false,
				Message: fmt.Sprintf("redis ping failed: %v", err),
				Details: details,
			}
		}
		details["redis"] = redactURL(m.config.RedisURL)
	} else {
		if _, err := m.storage.GetWithContext(ctx, "__health_check__"); err != nil {
			return mono.HealthStatus{
				Healthy: false,
				Message: fmt.Sprintf("health check failed: %v", err),
				Details: details,
			}
		}
		if m.memory != nil {
			details["entries"] = m.memory.Len()
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: details,
	}
}
