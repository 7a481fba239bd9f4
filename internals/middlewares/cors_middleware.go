// middlewares/cors.go

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CorsMiddleware: origins dari CORS_ALLOW_ORIGINS (dipisah koma).
func CorsMiddleware(origins string) fiber.Handler {
	parts := strings.Split(origins, ",")
	clean := make([]string, 0, len(parts))
	for _, o := range parts {
		if o = strings.TrimSpace(o); o != "" {
			clean = append(clean, o)
		}
	}
	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(clean, ", "),
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		ExposeHeaders:    "X-Request-ID, Content-Disposition",
		AllowCredentials: true,
	})
}
