package routes

import (
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"anggotaku_backend/internals/configs"
	helper "anggotaku_backend/internals/helpers"
	middlewares "anggotaku_backend/internals/middlewares"
	reqLogger "anggotaku_backend/internals/middlewares/logger"
	"anggotaku_backend/internals/observability"
)

// NewApp merakit fiber.App lengkap (dipakai main & test).
func NewApp(cfg *configs.Config, db *gorm.DB, log *zap.Logger) *fiber.App {
	if log == nil {
		log = zap.NewNop()
	}
	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		UnescapePath:          true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		ErrorHandler: helper.ErrorHandler(func(c *fiber.Ctx, err error) {
			reqID := reqLogger.RequestID(c)
			log.Error("❌ internal error",
				zap.String("id", reqID),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
			observability.CaptureRequestErr(err, c.Method(), c.Path(), reqID)
		}),
	})

	middlewares.SetupMiddlewares(app, cfg, log)
	SetupRoutes(app, db, cfg, log)
	return app
}
