package http

import (
	"context"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/internal/render"

	"github.com/gofiber/fiber/v2"
)

type Readiness interface {
	Ready(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct{ ready Readiness }

func NewHealthHandler(ready Readiness) *HealthHandler { return &HealthHandler{ready: ready} }

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}

func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()
	if err := h.ready.Ready(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "not_ready",
			"details": err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ready"})
}

// Templates lists the selectable layouts and the default palette.
func Templates(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"templates":           render.Known(),
		"defaultTemplate":     domain.DefaultTemplate,
		"defaultColorPalette": domain.DefaultColorPalette,
	})
}
