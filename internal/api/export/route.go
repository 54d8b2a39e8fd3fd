package export

import (
	"github.com/gofiber/fiber/v3"
)

func RegisterRoutes(r fiber.Router) {
	r.Get("/sessions/:id/export/:kind", HandleExport)
}
