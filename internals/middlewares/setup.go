package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"go.uber.org/zap"

	"anggotaku_backend/internals/configs"
	"anggotaku_backend/internals/helpers/dbtime"
	reqLogger "anggotaku_backend/internals/middlewares/logger"
)

// SetupMiddlewares: urutan penting. Logger paling luar supaya status akhir (termasuk panic) tercatat.
func SetupMiddlewares(app *fiber.App, cfg *configs.Config, log *zap.Logger) {
	app.Use(reqLogger.LoggerMiddleware(log))
	app.Use(RecoveryMiddleware(log))
	app.Use(CorsMiddleware(cfg.CORSOrigins))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New()) // GET list/detail → 304 kalau tidak berubah
	app.Use(RequestTimeout(cfg.RequestTimeout))
	app.Use(dbtime.WithLocation(dbtime.LoadLocation(cfg.Timezone)))
}
