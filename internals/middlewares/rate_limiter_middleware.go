package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "anggotaku_backend/internals/helpers"
)

// PinVerifyRateLimiter: max request/menit per IP untuk /pin/verify. max <= 0 → nil (tidak dipasang).
func PinVerifyRateLimiter(max int) fiber.Handler {
	if max <= 0 {
		return nil
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, "Terlalu banyak percobaan verifikasi PIN. Coba lagi nanti.")
		},
	})
}
