package middlewares

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// RecoveryMiddleware menangkap panic → error 500 (dirender ErrorHandler), stack dicatat lewat zap
func RecoveryMiddleware(log *zap.Logger) fiber.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			log.Error("💥 panic",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("panic", fmt.Sprint(e)),
				zap.ByteString("stack", debug.Stack()),
			)
		},
	})
}
