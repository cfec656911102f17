package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attCtl "anggotaku_backend/internals/features/attendance/links/controller"
)

func AttendanceRoutes(r fiber.Router, db *gorm.DB) {
	ctl := attCtl.NewAttendanceController(db)

	ev := r.Group("/events/:id")
	ev.Post("/tapin", ctl.TapIn)
	ev.Get("/members", ctl.ListMembersOfEvent)
	ev.Post("/grade", ctl.Grade)
	ev.Post("/grade/aspects", ctl.GradeAspects)

	r.Get("/members/:cardId", ctl.GetMemberWithEvents)
}
