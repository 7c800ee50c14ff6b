// Package catalog is the read-only client for the WooCommerce REST API.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/example/woo-storefront/domain/catalog"
	"github.com/example/woo-storefront/modules/cache"
	logx "github.com/example/woo-storefront/pkg/logger"
	"github.com/go-monolith/mono/pkg/types"
)

// DefaultTimeout bounds every outbound request.
const DefaultTimeout = 15 * time.Second

// Config holds the store connection settings.
type Config struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	Timeout        time.Duration
}

func (c Config) validate() error {
	var missing []string
	if c.BaseURL == "" {
		missing = append(missing, "WOOCOMMERCE_BASE_URL")
	}
	if c.ConsumerKey == "" {
		missing = append(missing, "WOOCOMMERCE_CONSUMER_KEY")
	}
	if c.ConsumerSecret == "" {
		missing = append(missing, "WOOCOMMERCE_CONSUMER_SECRET")
	}
	if len(missing) > 0 {
		return &ConfigurationError{Missing: missing}
	}
	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		return fmt.Errorf("invalid WOOCOMMERCE_BASE_URL: %w", err)
	}
	return nil
}

// Client exposes the catalog queries used by the storefront. It holds no
// state beyond its configuration and transport.
type Client struct {
	transport Transport
	logger    types.Logger
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	transport  Transport
	logger     types.Logger
	cache      cache.CacheService
	httpClient *http.Client
}

// WithTransport replaces the HTTP transport, e.g. with a test double.
func WithTransport(t Transport) Option {
	return func(o *clientOptions) { o.transport = t }
}

// WithLogger sets the client logger.
func WithLogger(l types.Logger) Option {
	return func(o *clientOptions) { o.logger = l }
}

// WithResponseCache wraps the transport in a CachedTransport over svc.
func WithResponseCache(svc cache.CacheService) Option {
	return func(o *clientOptions) { o.cache = svc }
}

// WithHTTPClient sets the http.Client used by the default transport.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = c }
}

// NewClient validates cfg and builds a client. A *ConfigurationError is
// returned when any credential is missing; no request is ever made without them.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	o := clientOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logx.NewModuleLogger("catalog")
	}

	t := o.transport
	if t == nil {
		t = NewHTTPTransport(cfg, o.httpClient, o.logger)
	}
	if o.cache != nil {
		t = NewCachedTransport(t, o.cache, o.logger)
	}

	return &Client{transport: t, logger: o.logger}, nil
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, dest any) error {
	body, err := c.transport.Fetch(ctx, endpoint, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}

// ListProducts returns published products matching q.
func (c *Client) ListProducts(ctx context.Context, q ProductQuery) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := c.get(ctx, "products", q.Values(), &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProductBySlug returns the first published product with slug, or nil.
func (c *Client) GetProductBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	if slug == "" {
		return nil, nil
	}
	q := url.Values{}
	q.Set("slug", slug)
	q.Set("status", "publish")

	var products []catalog.Product
	if err := c.get(ctx, "products", q, &products); err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}
	return &products[0], nil
}

// GetProductByID returns the product with id, or nil when the store answers 404.
func (c *Client) GetProductByID(ctx context.Context, id int) (*catalog.Product, error) {
	var p catalog.Product
	err := c.get(ctx, "products/"+strconv.Itoa(id), url.Values{}, &p)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListCategories returns categories sorted by name.
func (c *Client) ListCategories(ctx context.Context, q CategoryQuery) ([]catalog.Category, error) {
	var categories []catalog.Category
	if err := c.get(ctx, "products/categories", q.Values(), &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategoryBySlug returns the first category with slug, or nil.
// Slugs are not unique across the category tree.
func (c *Client) GetCategoryBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	if slug == "" {
		return nil, nil
	}
	q := url.Values{}
	q.Set("slug", slug)

	var categories []catalog.Category
	if err := c.get(ctx, "products/categories", q, &categories); err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, nil
	}
	return &categories[0], nil
}

// ProductsByCategory lists the products of the category with slug. An unknown
// category yields an empty list; remote failures are returned.
func (c *Client) ProductsByCategory(ctx context.Context, slug string, q ProductQuery) ([]catalog.Product, error) {
	category, err := c.GetCategoryBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return []catalog.Product{}, nil
	}
	q.CategoryID = category.ID
	return c.ListProducts(ctx, q)
}
