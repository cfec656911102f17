package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	evCtl "anggotaku_backend/internals/features/events/events/controller"
	pinService "anggotaku_backend/internals/features/pins/pins/service"
)

func EventRoutes(r fiber.Router, db *gorm.DB) {
	ctl := evCtl.NewEventController(db, pinService.NewPinService(db))

	grp := r.Group("/events")
	grp.Get("/", ctl.List)
	grp.Post("/", ctl.Create)
	grp.Get("/:id", ctl.Get)
	grp.Post("/:id", ctl.Update)
	grp.Delete("/:id", ctl.Delete)
}
