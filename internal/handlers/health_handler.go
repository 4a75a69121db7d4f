package handlers

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports whether the service can reach its datastore.
type HealthHandler struct {
	check func(ctx context.Context) error
}

// NewHealthHandler creates a HealthHandler. A nil check always reports healthy.
func NewHealthHandler(check func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{check: check}
}

// RegisterRoutes registers the health route.
func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
}

// HandleHealth answers 200 when the datastore responds and 503 otherwise.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	now := time.Now().Format(time.RFC3339)

	if h.check != nil {
		if err := h.check(c.UserContext()); err != nil {
			log.Printf("Health check failed: %v", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "unhealthy",
				"database": err.Error(),
				"time":     now,
			})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":   "healthy",
		"database": "ok",
		"time":     now,
	})
}
