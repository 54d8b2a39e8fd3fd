package healthcheck

import (
	"context"
	"time"

	"ai-doc-assistant/config"
	"ai-doc-assistant/internal/database"
	"ai-doc-assistant/pkg/apperror"

	"github.com/gofiber/fiber/v3"
)

func ApiHealthCheck(c fiber.Ctx) error {
	return c.SendString("ok")
}

func DatabaseHealthCheck(c fiber.Ctx) error {
	db, err := database.GetDB()
	if err != nil {
		return apperror.InternalError(config.ModuleDatabase, c, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return apperror.InternalError(config.ModuleDatabase, c, err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return apperror.InternalError(config.ModuleDatabase, c, err)
	}
	return c.SendString("ok")
}
