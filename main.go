package main

import (
	"context"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"

	"github.com/example/woo-storefront/config"
	"github.com/example/woo-storefront/modules/cache"
	"github.com/example/woo-storefront/modules/catalog"
	"github.com/example/woo-storefront/modules/pagecache"
	"github.com/example/woo-storefront/modules/storefront"
	logx "github.com/example/woo-storefront/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logx.Init(logx.LoggerOpts{Environment: cfg.Environment()})

	logx.Info().
		Str("env", cfg.Environment().String()).
		Str("cache_backend", cfg.Cache.Backend).
		Int("port", cfg.HTTP.Port).
		Msg("=== WooCommerce Storefront ===")

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to create application")
	}

	// Register cache plugin with alias "cache".
	// The framework will call SetPlugin("cache", cachePlugin) on modules
	// that implement UsePluginModule interface
	cachePlugin := cache.NewPluginModule(cache.Config{
		Backend:  cfg.Cache.Backend,
		RedisURL: cfg.Cache.RedisURL,
		PoolSize: cfg.Cache.PoolSize,
	}, logx.NewModuleLogger("cache"))
	if err := app.RegisterPlugin(cachePlugin, "cache"); err != nil {
		logx.Fatal().Err(err).Msg("Failed to register cache plugin")
	}

	catalogModule := catalog.NewModule(catalog.Config{
		BaseURL:        cfg.Woo.BaseURL,
		ConsumerKey:    cfg.Woo.ConsumerKey,
		ConsumerSecret: cfg.Woo.ConsumerSecret,
		Timeout:        cfg.Woo.Timeout,
	}, cfg.Cache.TransportTTL, logx.NewModuleLogger("catalog"))

	storefrontModule := storefront.NewModule(storefront.Config{
		Port:               cfg.HTTP.Port,
		StoreName:          cfg.Store.Name,
		WANumber:           cfg.Store.WANumber,
		SiteURL:            cfg.Store.SiteURL,
		CORSAllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
		RevalidateSecret:   cfg.RevalidateSecret,
		PageTTLs: pagecache.TTLs{
			Home:     cfg.Cache.HomeTTL,
			Category: cfg.Cache.CategoryTTL,
			Product:  cfg.Cache.ProductTTL,
			Search:   cfg.Cache.SearchTTL,
		},
	}, catalogModule, logx.NewModuleLogger("storefront"))

	// Register modules with the framework.
	// Order: the storefront reads the catalog client in its Start, so the
	// catalog module goes first.
	app.Register(catalogModule)
	app.Register(storefrontModule)

	// Start application
	if err := app.Start(context.Background()); err != nil {
		logx.Fatal().Err(err).Msg("Failed to start application")
	}

	printStartupInfo(cfg)

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				logx.Info().Msg("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	logx.Info().Int("exit_code", exitCode).Msg("Application exited")
	os.Exit(exitCode)
}

func printStartupInfo(cfg *config.Config) {
	logx.Info().Msgf("Storefront available at http://localhost:%d", cfg.HTTP.Port)
	logx.Info().Msg("Endpoints:")
	logx.Info().Msg("  GET    /                      - Home")
	logx.Info().Msg("  GET    /category/:slug        - Category listing (?page=N)")
	logx.Info().Msg("  GET    /product/:slug         - Product detail")
	logx.Info().Msg("  GET    /search                - Search (?q=&orderby=&order=&page=)")
	logx.Info().Msg("  POST   /api/revalidate        - Cache invalidation webhook")
	logx.Info().Msg("  GET    /api/cache/stats       - Cache statistics")
	logx.Info().Msg("  GET    /health                - Health check")
	logx.Info().Msg("Press Ctrl+C to shutdown gracefully")
}
