package storefront

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"

	"github.com/example/woo-storefront/modules/cache"
	"github.com/example/woo-storefront/modules/pagecache"
)

// Cache status reported in the X-Cache header.
const (
	cacheHit    = "HIT"
	cacheMiss   = "MISS"
	cacheBypass = "BYPASS"
)

const headerXCache = "X-Cache"

// StatsSource exposes the transport cache counters.
type StatsSource interface {
	ResponseCacheStats() cache.StatsSnapshot
}

// StatsResponse is the body of GET /api/cache/stats.
type StatsResponse struct {
	Transport cache.StatsSnapshot `json:"transport"`
	Pages     cache.StatsSnapshot `json:"pages"`
}

// HealthChecker reports the health of one component.
type HealthChecker interface {
	Health(ctx context.Context) mono.HealthStatus
}

// ComponentHealth is one entry of GET /health.
type ComponentHealth struct {
	Healthy bool           `json:"healthy"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentHealth `json:"components"`
}

// renderFunc produces a page for the current request.
type renderFunc func(c *fiber.Ctx) (*pagecache.Page, error)

// Handlers serves the storefront pages and ops endpoints.
type Handlers struct {
	views    *Views
	renderer *Renderer
	pages    *pagecache.Cache
	stats    StatsSource
	checks   map[string]HealthChecker
	logger   types.Logger
}

// NewHandlers creates the page handlers.
func NewHandlers(
	views *Views,
	renderer *Renderer,
	pages *pagecache.Cache,
	stats StatsSource,
	checks map[string]HealthChecker,
	logger types.Logger,
) *Handlers {
	return &Handlers{
		views:    views,
		renderer: renderer,
		pages:    pages,
		stats:    stats,
		checks:   checks,
		logger:   logger,
	}
}

// Register mounts the page and ops routes on router.
func (h *Handlers) Register(router fiber.Router) {
	router.Get("/health", h.Health)
	router.Get("/api/cache/stats", h.CacheStats)

	router.Get("/", h.cached(pagecache.KindHome, h.home))
	router.Get("/category/:slug", h.cached(pagecache.KindCategory, h.category))
	router.Get("/product/:slug", h.cached(pagecache.KindProduct, h.product))
	router.Get("/search", h.cached(pagecache.KindSearch, h.search))
}

// cached serves a page through the page cache. Requests with a query string
// always render and are never stored. Only 200 pages are stored.
func (h *Handlers) cached(kind pagecache.Kind, render renderFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		path := c.Path()
		cacheable := len(c.Request().URI().QueryString()) == 0

		if cacheable {
			if page, ok := h.pages.Get(ctx, path); ok {
				return h.send(c, page, cacheHit)
			}
		}

		page, err := render(c)
		if err != nil {
			return err
		}

		status := cacheBypass
		if cacheable {
			status = cacheMiss
			if page.Status == fiber.StatusOK {
				h.pages.Put(ctx, path, page)
			}
		}
		return h.send(c, page, status)
	}
}

func (h *Handlers) send(c *fiber.Ctx, page *pagecache.Page, cacheStatus string) error {
	c.Set(fiber.HeaderContentType, page.ContentType)
	c.Set(headerXCache, cacheStatus)
	if page.Status == fiber.StatusOK {
		c.Set(fiber.HeaderCacheControl, cacheControl(h.pages.TTL(page.Kind).Seconds()))
	} else {
		c.Set(fiber.HeaderCacheControl, "no-store")
	}
	return c.Status(page.Status).SendString(page.Body)
}

func cacheControl(seconds float64) string {
	return "public, s-maxage=" + strconv.Itoa(int(seconds)) + ", stale-while-revalidate"
}

func (h *Handlers) home(c *fiber.Ctx) (*pagecache.Page, error) {
	view, meta, err := h.views.Home(c.UserContext())
	if err != nil {
		return nil, err
	}
	return h.renderer.Render(tmplHome, pagecache.KindHome, fiber.StatusOK, meta, view)
}

func (h *Handlers) category(c *fiber.Ctx) (*pagecache.Page, error) {
	slug := c.Params("slug")
	view, meta, err := h.views.Category(c.UserContext(), slug, parsePage(c.Query("page")))
	if err != nil {
		return nil, err
	}
	if view == nil {
		return h.notFound("Category not found", "The category you are looking for does not exist.")
	}
	return h.renderer.Render(tmplCategory, pagecache.KindCategory, fiber.StatusOK, meta, view)
}

func (h *Handlers) product(c *fiber.Ctx) (*pagecache.Page, error) {
	slug := c.Params("slug")
	view, meta, err := h.views.Product(c.UserContext(), slug)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return h.notFound("Product not found", "The product you are looking for does not exist.")
	}
	return h.renderer.Render(tmplProduct, pagecache.KindProduct, fiber.StatusOK, meta, view)
}

func (h *Handlers) search(c *fiber.Ctx) (*pagecache.Page, error) {
	params := ParseSearchParams(func(key string) string { return c.Query(key) })
	view, meta, err := h.views.Search(c.UserContext(), params)
	if err != nil {
		return nil, err
	}
	return h.renderer.Render(tmplSearch, pagecache.KindSearch, fiber.StatusOK, meta, view)
}

func (h *Handlers) notFound(heading, message string) (*pagecache.Page, error) {
	return h.renderer.RenderError(fiber.StatusNotFound, heading, message)
}

// Health handles GET /health. It answers 503 when any component is unhealthy.
func (h *Handlers) Health(c *fiber.Ctx) error {
	resp := h.checkHealth(c.UserContext())
	code := fiber.StatusOK
	if resp.Status != "healthy" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(resp)
}

func (h *Handlers) checkHealth(ctx context.Context) HealthResponse {
	resp := HealthResponse{
		Status:     "healthy",
		Components: make(map[string]ComponentHealth, len(h.checks)),
	}
	for name, m := range h.checks {
		s := m.Health(ctx)
		resp.Components[name] = ComponentHealth{
			Healthy: s.Healthy,
			Message: s.Message,
			Details: s.Details,
		}
		if !s.Healthy {
			resp.Status = "unhealthy"
		}
	}
	return resp
}

// CacheStats handles GET /api/cache/stats.
func (h *Handlers) CacheStats(c *fiber.Ctx) error {
	return c.JSON(StatsResponse{
		Transport: h.stats.ResponseCacheStats(),
		Pages:     h.pages.Stats(),
	})
}

// ErrorHandler answers JSON under /api/ and an HTML error page elsewhere.
func (h *Handlers) ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code >= fiber.StatusInternalServerError {
		h.logger.Error("HTTP error", "code", code, "path", c.Path(), "error", err)
	} else {
		h.logger.Debug("HTTP error", "code", code, "path", c.Path(), "message", message)
	}

	if strings.HasPrefix(c.Path(), "/api/") {
		return c.Status(code).JSON(fiber.Map{"error": message})
	}

	heading, text := "Something went wrong", "We could not load this page. Please try again shortly."
	if code == fiber.StatusNotFound {
		heading, text = "Page not found", "The page you are looking for does not exist."
	}
	page, rerr := h.renderer.RenderError(code, heading, text)
	if rerr != nil {
		h.logger.Error("Failed to render error page", "error", rerr)
		return c.Status(code).SendString(message)
	}
	c.Set(fiber.HeaderContentType, page.ContentType)
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Status(code).SendString(page.Body)
}
