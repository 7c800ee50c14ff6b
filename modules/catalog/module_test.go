package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/woo-storefront/modules/cache"
)

func startedCachePlugin(t *testing.T) *cache.PluginModule {
	t.Helper()
	p := cache.NewPluginModule(cache.Config{Backend: cache.BackendMemory}, &mockLogger{})
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("cache Start() error = %v", err)
	}
	t.Cleanup(func() { p.Stop(context.Background()) })
	return p
}

func TestModule_Name(t *testing.T) {
	m := NewModule(Config{}, 0, &mockLogger{})
	if name := m.Name(); name != "catalog" {
		t.Errorf("Name() = %q, want 'catalog'", name)
	}
	if m.responseTTL != DefaultResponseTTL {
		t.Errorf("responseTTL = %s, want %s", m.responseTTL, DefaultResponseTTL)
	}
}

func TestModule_StartWithoutCachePlugin(t *testing.T) {
	m := NewModule(Config{}, time.Minute, &mockLogger{})
	if err := m.Start(context.Background()); !errors.Is(err, ErrCachePluginMissing) {
		t.Errorf("Start() error = %v, want ErrCachePluginMissing", err)
	}
}

func TestModule_StartWithMissingCredentials(t *testing.T) {
	m := NewModule(Config{BaseURL: "https://shop.example.com"}, time.Minute, &mockLogger{})
	m.SetPlugin("cache", startedCachePlugin(t))

	err := m.Start(context.Background())
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Start() error = %v, want *ConfigurationError", err)
	}
	if len(cfgErr.Missing) != 2 {
		t.Errorf("Missing = %v, want key and secret", cfgErr.Missing)
	}
	if m.Health(context.Background()).Healthy {
		t.Error("Health() should be unhealthy after failed start")
	}
}

func TestModule_StartAndHealth(t *testing.T) {
	fs := newFakeStore(t, map[string]fakeRoute{"products": {200, productsJSON}})
	m := NewModule(fs.config(), time.Minute, &mockLogger{})
	m.SetPlugin("other", startedCachePlugin(t))
	m.SetPlugin("cache", startedCachePlugin(t))
	ctx := context.Background()

	if err := m.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer m.Stop(ctx)

	if m.Client() == nil {
		t.Fatal("Client() is nil after Start")
	}

	health := m.Health(ctx)
	if !health.Healthy {
		t.Errorf("Health() = %+v, want healthy", health)
	}

	m.Client().ListProducts(ctx, ProductQuery{})
	m.Client().ListProducts(ctx, ProductQuery{})

	stats := m.ResponseCacheStats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("stats = %+v, want 1 hit and 1 miss", stats)
	}
	if fs.calls.Load() != 1 {
		t.Errorf("remote calls = %d, want 1", fs.calls.Load())
	}
}
