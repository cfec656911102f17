// file: internals/features/events/events/controller/event_controller.go
package controller

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "anggotaku_backend/internals/features/events/events/dto"
	service "anggotaku_backend/internals/features/events/events/service"
	helper "anggotaku_backend/internals/helpers"
	"anggotaku_backend/internals/helpers/dbtime"
)

type EventController struct {
	Svc *service.EventService
}

func NewEventController(db *gorm.DB, pins service.PinResolver) *EventController {
	return &EventController{Svc: service.NewEventService(db, pins)}
}

// ParseEventID: :id harus integer positif.
func ParseEventID(c *fiber.Ctx) (int64, error) {
	raw := strings.TrimSpace(c.Params("id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, helper.InvalidArgument("invalid event id")
	}
	return id, nil
}

// GET /events
func (ctl *EventController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)
	rows, total, err := ctl.Svc.List(c.UserContext(), p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, dto.FromModels(rows, dbtime.GetLocation(c)), total, p)
}

// POST /events
func (ctl *EventController) Create(c *fiber.Ctx) error {
	var req dto.CreateEventRequest
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

	loc := dbtime.GetLocation(c)
	m, err := ctl.Svc.Create(c.UserContext(), &req, loc)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, dto.FromModel(m, loc))
}

// GET /events/:id
func (ctl *EventController) Get(c *fiber.Ctx) error {
	id, err := ParseEventID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := ctl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, dto.FromModel(m, dbtime.GetLocation(c)))
}

// POST /events/:id (partial update)
func (ctl *EventController) Update(c *fiber.Ctx) error {
	id, err := ParseEventID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var patch dto.PatchEventRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&patch); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid: "+err.Error())
		}
	}

	loc := dbtime.GetLocation(c)
	m, err := ctl.Svc.Update(c.UserContext(), id, &patch, loc)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, dto.FromModel(m, loc))
}

// DELETE /events/:id
func (ctl *EventController) Delete(c *fiber.Ctx) error {
	id, err := ParseEventID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c)
}
