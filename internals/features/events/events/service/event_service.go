// file: internals/features/events/events/service/event_service.go
package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dto "anggotaku_backend/internals/features/events/events/dto"
	model "anggotaku_backend/internals/features/events/events/model"
	pinModel "anggotaku_backend/internals/features/pins/pins/model"
	helper "anggotaku_backend/internals/helpers"
)

const MsgEventNotFound = "Event not found"

// PinResolver: creatorPin → PinRecord (NotFound kalau tidak ada).
type PinResolver interface {
	Resolve(ctx context.Context, pin string) (*pinModel.PinModel, error)
}

type EventService struct {
	DB   *gorm.DB
	Pins PinResolver
}

func NewEventService(db *gorm.DB, pins PinResolver) *EventService {
	return &EventService{DB: db, Pins: pins}
}

func (s *EventService) Create(ctx context.Context, req *dto.CreateEventRequest, loc *time.Location) (*model.EventModel, error) {
	m, err := req.ToModel(loc)
	if err != nil {
		return nil, err
	}
	if req.CreatorPin != nil {
		if s.Pins == nil {
			return nil, errors.New("pin resolver not configured")
		}
		pin, err := s.Pins.Resolve(ctx, *req.CreatorPin)
		if err != nil {
			return nil, err
		}
		m.CreatedByName = &pin.Name
		m.CreatedByPinID = &pin.ID
	}
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		return nil, helper.MapStoreError(err)
	}
	return m, nil
}

// List: jadwal terbaru dulu (starts_at DESC, id DESC). total hanya dihitung kalau paging aktif.
func (s *EventService) List(ctx context.Context, p helper.Paging) ([]model.EventModel, int64, error) {
	base := func() *gorm.DB { return s.DB.WithContext(ctx).Model(&model.EventModel{}) }

	var total int64
	if p.Enabled {
		if err := base().Count(&total).Error; err != nil {
			return nil, 0, err
		}
	}

	var rows []model.EventModel
	if err := p.Apply(base()).
		Order("starts_at DESC").Order("id DESC").
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	if !p.Enabled {
		total = int64(len(rows))
	}
	return rows, total, nil
}

func (s *EventService) Get(ctx context.Context, id int64) (*model.EventModel, error) {
	var m model.EventModel
	if err := s.DB.WithContext(ctx).Take(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NotFound(MsgEventNotFound)
		}
		return nil, err
	}
	return &m, nil
}

// Update: patch parsial. Patch kosong → event dikembalikan apa adanya.
func (s *EventService) Update(ctx context.Context, id int64, patch *dto.PatchEventRequest, loc *time.Location) (*model.EventModel, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	var out model.EventModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(&out, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.NotFound(MsgEventNotFound)
			}
			return err
		}
		if patch.IsEmpty() {
			return nil
		}
		if err := patch.ApplyPatch(&out, loc); err != nil {
			return err
		}
		return tx.Save(&out).Error
	})
	if err != nil {
		return nil, helper.MapStoreError(err)
	}
	return &out, nil
}

// Delete: dilarang kalau masih ada data kehadiran yang merujuk event ini.
func (s *EventService) Delete(ctx context.Context, id int64) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.EventModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(&m, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.NotFound(MsgEventNotFound)
			}
			return err
		}

		var refs int64
		if err := tx.Table("attendance_links").Where("event_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return helper.Conflict("Event has attendance records and cannot be deleted")
		}
		return tx.Delete(&model.EventModel{}, id).Error
	})
	return helper.MapStoreError(err)
}
