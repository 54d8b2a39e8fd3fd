package sessionapi

import (
	"github.com/gofiber/fiber/v3"
)

// RegisterRoutes registers session lifecycle routes on the provided router.
func RegisterRoutes(r fiber.Router, h *Handler) {
	r.Post("/sessions", h.HandleCreate)
	r.Delete("/sessions/:id", h.HandleDelete)
	r.Post("/sessions/:id/history/clear", h.HandleClearHistory)
}
