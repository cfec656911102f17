package middlewares

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RequestTimeout: context request dengan batas waktu; service memakai c.UserContext().
func RequestTimeout(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if d <= 0 {
			return c.Next()
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
