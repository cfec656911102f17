package logger

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"anggotaku_backend/internals/metrics"
)

const LocRequestID = "reqid"

// LoggerMiddleware: request id + log zap + metrik HTTP untuk semua request
func LoggerMiddleware(log *zap.Logger) fiber.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, id)
		c.Locals(LocRequestID, id)

		start := time.Now()
		err := c.Next()
		if err != nil {
			// render dulu supaya status yang dicatat = status akhir
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
			err = nil
		}
		dur := time.Since(start)
		status := c.Response().StatusCode()

		route := c.Route().Path
		if route == "" || route == "/" && c.Path() != "/" {
			route = "unmatched"
		}
		metrics.ObserveRequest(c.Method(), route, strconv.Itoa(status), dur)

		fields := []zap.Field{
			zap.String("id", id),
			zap.String("method", c.Method()),
			zap.String("path", c.OriginalURL()),
			zap.Int("status", status),
			zap.Duration("dur", dur),
			zap.String("ip", c.IP()),
		}
		switch {
		case status >= 500:
			log.Error("[REQ]", fields...)
		case status >= 400:
			log.Warn("[REQ]", fields...)
		default:
			log.Info("[REQ]", fields...)
		}
		return err
	}
}

// RequestID dari locals (kosong kalau middleware tidak dipasang).
func RequestID(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocRequestID).(string); ok {
		return v
	}
	return ""
}
