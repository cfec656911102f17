package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	memberCtl "anggotaku_backend/internals/features/members/members/controller"
	pinService "anggotaku_backend/internals/features/pins/pins/service"
)

// GET /members/:cardId (detail + events) ada di route attendance.
func MemberRoutes(r fiber.Router, db *gorm.DB) {
	ctl := memberCtl.NewMemberController(db, pinService.NewPinService(db))

	grp := r.Group("/members")
	grp.Get("/", ctl.List)
	grp.Post("/", ctl.Create)
	grp.Post("/:cardId", ctl.Update)
	grp.Delete("/:cardId", ctl.Delete)
	grp.Post("/:cardId/recard", ctl.Recard)
	grp.Post("/:cardId/points/add", ctl.AddPoints)
	grp.Post("/:cardId/points/redeem", ctl.RedeemPoints)
	grp.Get("/:cardId/points/history", ctl.PointHistory)
}
