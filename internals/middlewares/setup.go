package middlewares

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"

	"tutly_backend/internals/configs"
	"tutly_backend/internals/middlewares/logger"
)

// RequestID menyetel X-Request-ID dan batas waktu context 5 detik (selaras statement_timeout DB).
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)

		ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)

		start := time.Now()
		err := c.Next()
		if dur := time.Since(start); dur > time.Second {
			log.Printf("[SLOW REQ] id=%s %s %s dur=%s", id, c.Method(), c.OriginalURL(), dur)
		}
		return err
	}
}

func SetupMiddlewares(app *fiber.App, cfg configs.Config) {
	app.Use(RecoveryMiddleware())
	app.Use(RequestID())
	app.Use(logger.LoggerMiddleware(cfg.AppTimezone))
	app.Use(CorsMiddleware(cfg.CorsAllowOrigins))
	app.Use(GlobalRateLimiter())
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
}
