package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "APP_ENV", "HTTP_PORT", "CACHE_BACKEND", "CACHE_TRANSPORT_TTL",
		"CACHE_HOME_TTL", "CACHE_CATEGORY_TTL", "CACHE_PRODUCT_TTL",
		"WOOCOMMERCE_TIMEOUT", "STORE_NAME")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.HTTP.Port)
	assert.Equal(t, BackendMemory, cfg.Cache.Backend)
	assert.Equal(t, 15*time.Minute, cfg.Cache.TransportTTL)
	assert.Equal(t, 2*time.Hour, cfg.Cache.HomeTTL)
	assert.Equal(t, time.Hour, cfg.Cache.CategoryTTL)
	assert.Equal(t, 30*time.Minute, cfg.Cache.ProductTTL)
	assert.Equal(t, 15*time.Second, cfg.Woo.Timeout)
	assert.Equal(t, "PC Wala Online", cfg.Store.Name)
	assert.Equal(t, Development, cfg.Environment())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("WOOCOMMERCE_BASE_URL", "https://shop.example.com")
	t.Setenv("WOOCOMMERCE_CONSUMER_KEY", "ck_test")
	t.Setenv("WOOCOMMERCE_CONSUMER_SECRET", "cs_test")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("CACHE_TRANSPORT_TTL", "5m")
	t.Setenv("REVALIDATE_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "https://shop.example.com", cfg.Woo.BaseURL)
	assert.Equal(t, "ck_test", cfg.Woo.ConsumerKey)
	assert.Equal(t, "cs_test", cfg.Woo.ConsumerSecret)
	assert.Equal(t, BackendRedis, cfg.Cache.Backend)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TransportTTL)
	assert.Equal(t, "s3cret", cfg.RevalidateSecret)
	assert.True(t, cfg.Environment().IsProduction())
}

func TestLoad_InvalidBackend(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "memcached")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CACHE_BACKEND")
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("CACHE_HOME_TTL", "soon")

	_, err := Load()
	require.Error(t, err)
}

func TestParseEnvironment(t *testing.T) {
	tests := map[string]Environment{
		"production":  Production,
		"staging":     Staging,
		"testing":     Testing,
		"development": Development,
		"":            Development,
		"qa":          Development,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseEnvironment(in), "ParseEnvironment(%q)", in)
	}
}
