// Package revalidate implements the webhook the store calls to drop cached
// pages after a product or category change.
package revalidate

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
)

// Route is the webhook path.
const Route = "/api/revalidate"

// Purger removes a cached page by request path.
type Purger interface {
	Purge(ctx context.Context, path string) error
}

// Handler authenticates webhook calls with a shared Bearer secret and purges
// the pages affected by the change.
type Handler struct {
	secret string
	purger Purger
	logger types.Logger
	now    func() time.Time
}

// NewHandler creates the webhook handler. An empty secret is accepted; every
// call then fails with a configuration error.
func NewHandler(secret string, purger Purger, logger types.Logger) *Handler {
	return &Handler{
		secret: secret,
		purger: purger,
		logger: logger,
		now:    time.Now,
	}
}

// Register mounts the webhook on router. Only POST is served; GET, PUT and
// DELETE answer 405.
func (h *Handler) Register(router fiber.Router) {
	router.Post(Route, h.Revalidate)
	router.Get(Route, methodNotAllowed)
	router.Put(Route, methodNotAllowed)
	router.Delete(Route, methodNotAllowed)
}

// Revalidate handles POST /api/revalidate.
func (h *Handler) Revalidate(c *fiber.Ctx) error {
	if err := h.authorize(c.Get(fiber.HeaderAuthorization)); err != nil {
		if errors.Is(err, ErrSecretNotConfigured) {
			h.logger.Error("Revalidate called but REVALIDATE_SECRET is not set")
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "Configuration error"})
		}
		h.logger.Warn("Rejected revalidate call", "reason", err.Error(), "ip", c.IP())
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: "Unauthorized"})
	}

	var req Request
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		h.logger.Error("Malformed revalidate payload", "error", err)
		return internalError(c)
	}

	paths := PathsFor(req)
	ctx := c.UserContext()
	for _, path := range paths {
		if err := h.purger.Purge(ctx, path); err != nil {
			h.logger.Error("Revalidate purge failed", "path", path, "error", err)
			return internalError(c)
		}
	}

	h.logger.Info("Revalidated",
		"type", req.Type,
		"slug", req.Slug,
		"id", req.ID,
		"paths", paths)

	return c.JSON(SuccessResponse{
		Success:   true,
		Message:   message(req),
		Timestamp: timestamp(h.now()),
	})
}

// authorize checks header against "Bearer <secret>" in constant time.
func (h *Handler) authorize(header string) error {
	if h.secret == "" {
		return ErrSecretNotConfigured
	}
	if header == "" {
		return &AuthorizationError{Reason: "missing authorization header"}
	}
	expected := "Bearer " + h.secret
	if subtle.ConstantTimeCompare([]byte(header), []byte(expected)) != 1 {
		return &AuthorizationError{Reason: "invalid bearer token"}
	}
	return nil
}

// PathsFor lists the page paths to purge for a change notification.
// Unknown types only refresh the home page.
func PathsFor(req Request) []string {
	slug := strings.Trim(strings.TrimSpace(req.Slug), "/")

	switch req.Type {
	case TypeProduct:
		var paths []string
		if slug != "" {
			paths = append(paths, "/product/"+slug)
		}
		return append(paths, "/", "/search")
	case TypeCategory, TypeProductCategory:
		var paths []string
		if slug != "" {
			paths = append(paths, "/category/"+slug)
		}
		return append(paths, "/")
	default:
		return []string{"/"}
	}
}

func message(req Request) string {
	typ := req.Type
	if typ == "" {
		typ = "unknown"
	}
	if req.Slug != "" {
		return "Revalidated " + typ + " (" + req.Slug + ")"
	}
	return "Revalidated " + typ
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "Internal server error"})
}

func methodNotAllowed(c *fiber.Ctx) error {
	return c.Status(fiber.StatusMethodNotAllowed).JSON(ErrorResponse{Error: "Method not allowed"})
}
