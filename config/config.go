// Package config loads the storefront configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Environment represents the deployment environment of the service.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

func (e Environment) String() string {
	return string(e)
}

// IsProduction reports whether the environment corresponds to production.
func (e Environment) IsProduction() bool {
	return e == Production
}

// ParseEnvironment normalises v into one of the known environments.
// Unknown values fall back to Development.
func ParseEnvironment(v string) Environment {
	switch Environment(v) {
	case Production:
		return Production
	case Staging:
		return Staging
	case Testing:
		return Testing
	default:
		return Development
	}
}

// Cache backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// WooConfig holds the remote store credentials. None of the fields are
// required here; the catalog client reports missing values itself.
type WooConfig struct {
	BaseURL        string        `envconfig:"WOOCOMMERCE_BASE_URL"`
	ConsumerKey    string        `envconfig:"WOOCOMMERCE_CONSUMER_KEY"`
	ConsumerSecret string        `envconfig:"WOOCOMMERCE_CONSUMER_SECRET"`
	Timeout        time.Duration `envconfig:"WOOCOMMERCE_TIMEOUT" default:"15s"`
}

type CacheConfig struct {
	Backend      string        `envconfig:"CACHE_BACKEND" default:"memory"`
	RedisURL     string        `envconfig:"CACHE_REDIS_URL" default:"redis://localhost:6379/0"`
	PoolSize     int           `envconfig:"CACHE_REDIS_POOL_SIZE" default:"50"`
	TransportTTL time.Duration `envconfig:"CACHE_TRANSPORT_TTL" default:"15m"`
	HomeTTL      time.Duration `envconfig:"CACHE_HOME_TTL" default:"2h"`
	CategoryTTL  time.Duration `envconfig:"CACHE_CATEGORY_TTL" default:"1h"`
	ProductTTL   time.Duration `envconfig:"CACHE_PRODUCT_TTL" default:"30m"`
	SearchTTL    time.Duration `envconfig:"CACHE_SEARCH_TTL" default:"1h"`
}

type StoreConfig struct {
	Name     string `envconfig:"STORE_NAME" default:"PC Wala Online"`
	WANumber string `envconfig:"WA_NUMBER" default:"+923423355119"`
	SiteURL  string `envconfig:"SITE_URL" default:"https://www.pcwalaonline.com"`
}

type HTTPConfig struct {
	Port               int    `envconfig:"HTTP_PORT" default:"3000"`
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// Config is the full application configuration.
type Config struct {
	Env              string `envconfig:"APP_ENV" default:"development"`
	RevalidateSecret string `envconfig:"REVALIDATE_SECRET"`

	HTTP  HTTPConfig
	Woo   WooConfig
	Cache CacheConfig
	Store StoreConfig
}

// Environment returns the parsed APP_ENV value.
func (c *Config) Environment() Environment {
	return ParseEnvironment(c.Env)
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot express as tags.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("invalid CACHE_BACKEND %q: want %q or %q", c.Cache.Backend, BackendMemory, BackendRedis)
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid HTTP_PORT %d", c.HTTP.Port)
	}
	for name, ttl := range map[string]time.Duration{
		"CACHE_TRANSPORT_TTL": c.Cache.TransportTTL,
		"CACHE_HOME_TTL":      c.Cache.HomeTTL,
		"CACHE_CATEGORY_TTL":  c.Cache.CategoryTTL,
		"CACHE_PRODUCT_TTL":   c.Cache.ProductTTL,
		"CACHE_SEARCH_TTL":    c.Cache.SearchTTL,
	} {
		if ttl <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, ttl)
		}
	}
	return nil
}
