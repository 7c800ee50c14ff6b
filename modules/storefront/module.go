// Package storefront serves the server-rendered shop pages over HTTP.
package storefront

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/example/woo-storefront/modules/cache"
	catalogmod "github.com/example/woo-storefront/modules/catalog"
	"github.com/example/woo-storefront/modules/pagecache"
	"github.com/example/woo-storefront/modules/revalidate"
)

// ErrCachePluginMissing is returned by Start when no cache plugin was injected.
var ErrCachePluginMissing = errors.New("storefront: cache plugin not injected")

// Config configures the HTTP server and the pages it serves.
type Config struct {
	Port               int
	StoreName          string
	WANumber           string
	SiteURL            string
	CORSAllowedOrigins string
	RevalidateSecret   string
	PageTTLs           pagecache.TTLs
}

func (c Config) site() Site {
	return Site{Name: c.StoreName, URL: c.SiteURL, WANumber: c.WANumber}
}

// Module implements the storefront HTTP server using Fiber.
type Module struct {
	config        Config
	catalogModule *catalogmod.Module
	cachePlugin   *cache.PluginModule
	logger        types.Logger

	app      *fiber.App
	pages    *pagecache.Cache
	handlers *Handlers
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
	_ mono.UsePluginModule       = (*Module)(nil)
)

// NewModule creates the storefront module. The catalog module must be
// registered, and therefore started, before this one.
func NewModule(cfg Config, catalogModule *catalogmod.Module, moduleLogger types.Logger) *Module {
	if cfg.Port == 0 {
		cfg.Port = 3000
	}
	if cfg.CORSAllowedOrigins == "" {
		cfg.CORSAllowedOrigins = "*"
	}
	if cfg.PageTTLs == (pagecache.TTLs{}) {
		cfg.PageTTLs = pagecache.DefaultTTLs()
	}
	return &Module{
		config:        cfg,
		catalogModule: catalogModule,
		logger:        moduleLogger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "storefront"
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

// Start builds the page cache and starts the HTTP server.
func (m *Module) Start(_ context.Context) error {
	if m.cachePlugin == nil {
		return ErrCachePluginMissing
	}
	client := m.catalogModule.Client()
	if client == nil {
		return catalogmod.ErrClientNotReady
	}

	store, err := m.cachePlugin.Service(pagecache.Prefix, m.config.PageTTLs.Home)
	if err != nil {
		return fmt.Errorf("failed to get page cache: %w", err)
	}
	m.pages = pagecache.New(store, m.config.PageTTLs, m.logger)

	renderer, err := NewRenderer(m.config.site())
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	m.handlers = NewHandlers(
		NewViews(client, m.config.site()),
		renderer,
		m.pages,
		m.catalogModule,
		map[string]HealthChecker{
			"cache":      m.cachePlugin,
			"catalog":    m.catalogModule,
			"storefront": m,
		},
		m.logger,
	)
	m.app = newApp(m.config, m.handlers, revalidate.NewHandler(m.config.RevalidateSecret, m.pages, m.logger))

	if m.config.RevalidateSecret == "" {
		m.logger.Warn("REVALIDATE_SECRET is not set; the revalidate webhook will reject every call")
	}

	addr := fmt.Sprintf(":%d", m.config.Port)

	// Start server in goroutine with startup error detection
	errCh := make(chan error, 1)
	go func() {
		if err := m.app.Listen(addr); err != nil {
			errCh <- err
		}
	}()

	// Wait briefly to catch immediate startup errors (port in use, permission denied)
	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed to start: %w", err)
	case <-time.After(100 * time.Millisecond):
	}

	m.logger.Info("Storefront started", "addr", addr, "store", m.config.StoreName)
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (m *Module) Stop(ctx context.Context) error {
	if m.app != nil {
		if err := m.app.ShutdownWithContext(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}
	m.logger.Info("Storefront stopped")
	return nil
}

// Health returns the current health status.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.app == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "server not started",
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"port":  m.config.Port,
			"store": m.config.StoreName,
		},
	}
}

// newApp wires middleware and routes.
func newApp(cfg Config, h *Handlers, webhook *revalidate.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.StoreName,
		DisableStartupMessage: true,
		ErrorHandler:          h.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} ${method} ${path} ${latency} ${locals:requestid}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
	}))

	webhook.Register(app)
	h.Register(app)
	return app
}
