// middlewares/cors.go

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CorsMiddleware: origins kosong → semua origin boleh (tanpa credentials, wildcard tidak boleh + credentials).
func CorsMiddleware(origins []string) fiber.Handler {
	if len(origins) == 0 {
		return cors.New(cors.Config{
			AllowOrigins: "*",
			AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		})
	}
	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ", "),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		ExposeHeaders:    "X-Request-ID, X-Total-Count, X-Page, X-Per-Page",
		AllowCredentials: true,
	})
}
