// file: internals/features/attendance/links/controller/attendance_controller.go
package controller

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "anggotaku_backend/internals/features/attendance/links/dto"
	service "anggotaku_backend/internals/features/attendance/links/service"
	helper "anggotaku_backend/internals/helpers"
	"anggotaku_backend/internals/helpers/dbtime"
)

type AttendanceController struct {
	Svc *service.AttendanceService
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{Svc: service.NewAttendanceService(db)}
}

func parseEventID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Params("id")), 10, 64)
	if err != nil || id <= 0 {
		return 0, helper.InvalidArgument("invalid event id")
	}
	return id, nil
}

// POST /events/:id/tapin {"cardId": "A1"}
// 201 untuk tap-in baru maupun ulang; bedanya di message.
func (ctl *AttendanceController) TapIn(c *fiber.Ctx) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.TapInRequest
	if err := helper.BindJSON(c, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	req.Normalize()

	res, err := ctl.Svc.TapIn(c.UserContext(), eventID, req.CardID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	msg := dto.MsgAlreadyJoined
	if res.Created {
		msg = dto.MsgTapInRecorded
	}
	return helper.JsonCreated(c, dto.TapInResponse{
		Message:  msg,
		EventID:  res.EventID,
		CardID:   res.CardID,
		TappedAt: dbtime.FormatWallClock(res.TappedAt, dbtime.GetLocation(c)),
	})
}

// GET /events/:id/members
func (ctl *AttendanceController) ListMembersOfEvent(c *fiber.Ctx) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rows, err := ctl.Svc.ListMembersOfEvent(c.UserContext(), eventID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, dto.FromMemberGradeRows(rows, dbtime.GetLocation(c)))
}

// POST /events/:id/grade {"cardId","score","notes"}
func (ctl *AttendanceController) Grade(c *fiber.Ctx) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.GradeRequest
	if err := helper.BindJSON(c, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	req.Normalize()

	res, err := ctl.Svc.GradeSimple(c.UserContext(), eventID, req.CardID, *req.Score, req.Notes)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, dto.GradeResponse{
		Message: dto.MsgGradeSaved,
		EventID: res.EventID,
		CardID:  res.CardID,
		Score:   res.Score,
		Notes:   res.Notes,
	})
}

// POST /events/:id/grade/aspects
func (ctl *AttendanceController) GradeAspects(c *fiber.Ctx) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.GradeAspectsRequest
	if err := helper.BindJSON(c, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	req.Normalize()

	res, err := ctl.Svc.GradeAspects(c.UserContext(), eventID, req.CardID, req.Aspects(), req.Notes)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, dto.GradeAspectsResponse{
		Message: dto.MsgGradeSaved,
		EventID: res.EventID,
		CardID:  res.CardID,
		Score:   res.Score,
	})
}

// GET /members/:cardId → member + events yang diikuti
func (ctl *AttendanceController) GetMemberWithEvents(c *fiber.Ctx) error {
	m, rows, err := ctl.Svc.GetMemberWithEvents(c.UserContext(), strings.TrimSpace(c.Params("cardId")))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, dto.NewMemberDetailResponse(m, rows, dbtime.GetLocation(c)))
}
