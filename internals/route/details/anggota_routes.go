package details

import (
	attendanceRoutes "anggotaku_backend/internals/features/attendance/links/route"
	eventRoutes "anggotaku_backend/internals/features/events/events/route"
	memberRoutes "anggotaku_backend/internals/features/members/members/route"
	pinRoutes "anggotaku_backend/internals/features/pins/pins/route"

	rateLimiter "anggotaku_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ✅ Events, members, tap-in & grading
// Contoh akses: /events/1/tapin, /members/A1/points/add
func AnggotaRoutes(api fiber.Router, db *gorm.DB) {
	eventRoutes.EventRoutes(api, db)
	memberRoutes.MemberRoutes(api, db)
	attendanceRoutes.AttendanceRoutes(api, db)
}

// ✅ PIN (generate / verify). pinVerifyLimit <= 0 → tanpa rate limit
// Contoh akses: /pin/generate?name=Budi
func PinRoutes(api fiber.Router, db *gorm.DB, pinVerifyLimit int) {
	pinRoutes.PinRoutes(api, db, rateLimiter.PinVerifyRateLimiter(pinVerifyLimit))
}
