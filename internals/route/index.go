// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"anggotaku_backend/internals/configs"
	routeDetails "anggotaku_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *configs.Config, log *zap.Logger) {
	startTime = time.Now()
	if log == nil {
		log = zap.NewNop()
	}

	log.Info("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	log.Info("[INFO] Mounting Anggota routes (events, members, attendance)...")
	routeDetails.AnggotaRoutes(app, db)

	log.Info("[INFO] Mounting PIN routes...", zap.Int("verify_limit_per_min", cfg.PinVerifyRateLimit))
	routeDetails.PinRoutes(app, db, cfg.PinVerifyRateLimit)
}
