package task

import (
	"github.com/gofiber/fiber/v3"
)

// RegisterRoutes registers task dispatch routes on the provided router.
func RegisterRoutes(r fiber.Router, h *Handler) {
	r.Post("/sessions/:id/tasks", h.HandleTask)
}
