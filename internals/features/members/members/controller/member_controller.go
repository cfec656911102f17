// file: internals/features/members/members/controller/member_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "anggotaku_backend/internals/features/members/members/dto"
	service "anggotaku_backend/internals/features/members/members/service"
	helper "anggotaku_backend/internals/helpers"
	"anggotaku_backend/internals/helpers/dbtime"
)

type MemberController struct {
	Svc *service.MemberService
}

func NewMemberController(db *gorm.DB, pins service.PinResolver) *MemberController {
	return &MemberController{Svc: service.NewMemberService(db, pins)}
}

func cardParam(c *fiber.Ctx, name string) string {
	return strings.TrimSpace(c.Params(name))
}

// GET /members
func (ctl *MemberController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 500)
	rows, total, err := ctl.Svc.List(c.UserContext(), p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, dto.FromModels(rows), total, p)
}

// POST /members
func (ctl *MemberController) Create(c *fiber.Ctx) error {
	var req dto.CreateMemberRequest
	if len(c.Body()) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload kosong")
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid: "+err.Error())
	}
	req.Normalize()
	if err := helper.Validate(&req); err != nil {
		return helper.FromFiberError(c, err)
	}

	m, err := ctl.Svc.Create(c.UserContext(), &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, dto.FromModel(m))
}

// POST /members/:cardId (partial update)
func (ctl *MemberController) Update(c *fiber.Ctx) error {
	var patch dto.PatchMemberRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&patch); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid: "+err.Error())
		}
	}
	m, err := ctl.Svc.Update(c.UserContext(), cardParam(c, "cardId"), &patch)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, dto.FromModel(m))
}

// DELETE /members/:cardId
func (ctl *MemberController) Delete(c *fiber.Ctx) error {
	if err := ctl.Svc.Delete(c.UserContext(), cardParam(c, "cardId")); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c)
}

// POST /members/:oldCardId/recard {"newCardId": "..."}
func (ctl *MemberController) Recard(c *fiber.Ctx) error {
	var req dto.RecardRequest
	if err := helper.BindJSON(c, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	req.Normalize()

	oldCardID := cardParam(c, "cardId")
	m, err := ctl.Svc.Recard(c.UserContext(), oldCardID, req.NewCardID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, dto.RecardResponse{
		Message:   "cardId updated",
		OldCardID: oldCardID,
		NewCardID: m.CardID,
	})
}

// POST /members/:cardId/points/add {"amount": 5, "note": "..."}
func (ctl *MemberController) AddPoints(c *fiber.Ctx) error {
	var req dto.PointsAdjustRequest
	if err := helper.BindJSON(c, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	req.Normalize()

	m, balance, err := ctl.Svc.AddPoints(c.UserContext(), cardParam(c, "cardId"), *req.Amount, req.Note)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, dto.PointsResponse{Message: "Points added", CardID: m.CardID, Balance: balance})
}

// POST /members/:cardId/points/redeem
func (ctl *MemberController) RedeemPoints(c *fiber.Ctx) error {
	var req dto.PointsAdjustRequest
	if err := helper.BindJSON(c, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	req.Normalize()

	m, balance, err := ctl.Svc.RedeemPoints(c.UserContext(), cardParam(c, "cardId"), *req.Amount, req.Note)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, dto.PointsResponse{Message: "Points redeemed", CardID: m.CardID, Balance: balance})
}

// GET /members/:cardId/points/history
func (ctl *MemberController) PointHistory(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 500)
	rows, total, err := ctl.Svc.PointHistory(c.UserContext(), cardParam(c, "cardId"), p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, dto.FromLedgerModels(rows, dbtime.GetLocation(c)), total, p)
}
