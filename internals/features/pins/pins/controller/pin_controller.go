package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "anggotaku_backend/internals/features/pins/pins/dto"
	service "anggotaku_backend/internals/features/pins/pins/service"
	helper "anggotaku_backend/internals/helpers"
)

type PinController struct {
	Svc *service.PinService
}

func NewPinController(db *gorm.DB) *PinController {
	return &PinController{Svc: service.NewPinService(db)}
}

// POST /pin/generate?name=... (atau body {"name": "..."})
func (ctl *PinController) Generate(c *fiber.Ctx) error {
	var req dto.GeneratePinRequest
	if err := c.QueryParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	if req.Name == "" && len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid: "+err.Error())
		}
	}
	req.Normalize()

	res, err := ctl.Svc.Generate(c.UserContext(), req.Name)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	// 200 untuk dua-duanya (kontrak lama)
	return helper.JsonOK(c, dto.NewGeneratePinResponse(&res.Pin, res.Created))
}

// POST /pin/verify {"pin": "0427"}
func (ctl *PinController) Verify(c *fiber.Ctx) error {
	var req dto.VerifyPinRequest
	if err := helper.BindJSON(c, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	row, err := ctl.Svc.Verify(c.UserContext(), req.Pin)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, dto.NewVerifyPinResponse(row))
}
