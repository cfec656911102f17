package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"gorm.io/gorm"

	database "anggotaku_backend/internals/databases"
	"anggotaku_backend/internals/metrics"
)

func BaseRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/healthz", fiber.StatusTemporaryRedirect)
	})

	// liveness: selalu ok selama proses hidup
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// readiness: cek DB
	app.Get("/readyz", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := database.Ping(ctx, db); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "DOWN",
				"database": "Database connection error",
			})
		}
		return c.JSON(fiber.Map{
			"status":         "ok",
			"database":       "Connected",
			"uptime_seconds": int(time.Since(startTime).Seconds()),
		})
	})

	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
}
