package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	pinCtl "anggotaku_backend/internals/features/pins/pins/controller"
)

// /pin/generate & /pin/verify. verifyMW opsional (rate limit verify).
func PinRoutes(r fiber.Router, db *gorm.DB, verifyMW ...fiber.Handler) {
	ctl := pinCtl.NewPinController(db)

	grp := r.Group("/pin")
	grp.Post("/generate", ctl.Generate)

	handlers := make([]fiber.Handler, 0, len(verifyMW)+1)
	for _, mw := range verifyMW {
		if mw != nil {
			handlers = append(handlers, mw)
		}
	}
	handlers = append(handlers, ctl.Verify)
	grp.Post("/verify", handlers...)
}
