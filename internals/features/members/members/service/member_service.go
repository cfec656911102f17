// file: internals/features/members/members/service/member_service.go
package service

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	linkModel "anggotaku_backend/internals/features/attendance/links/model"
	dto "anggotaku_backend/internals/features/members/members/dto"
	model "anggotaku_backend/internals/features/members/members/model"
	pinModel "anggotaku_backend/internals/features/pins/pins/model"
	helper "anggotaku_backend/internals/helpers"
)

const (
	MsgMemberNotFound    = "Member with this cardId not found"
	MsgOldMemberNotFound = "Member with this old cardId not found"
	MsgCardInUse         = "newCardId already in use"
)

type PinResolver interface {
	Resolve(ctx context.Context, pin string) (*pinModel.PinModel, error)
}

type MemberService struct {
	DB   *gorm.DB
	Pins PinResolver
}

func NewMemberService(db *gorm.DB, pins PinResolver) *MemberService {
	return &MemberService{DB: db, Pins: pins}
}

// FindByCard: lookup by card_id; lock=true → SELECT ... FOR UPDATE (diabaikan sqlite).
func FindByCard(tx *gorm.DB, cardID string, lock bool, notFoundMsg string) (*model.MemberModel, error) {
	q := tx
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var m model.MemberModel
	if err := q.Where("card_id = ?", cardID).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NotFound(notFoundMsg)
		}
		return nil, err
	}
	return &m, nil
}

func (s *MemberService) Create(ctx context.Context, req *dto.CreateMemberRequest) (*model.MemberModel, error) {
	m, err := req.ToModel()
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
		if helper.IsUniqueViolation(err) {
			return nil, helper.Conflict("cardId already in use")
		}
		return nil, helper.MapStoreError(err)
	}
	return m, nil
}

// List: urut nama A→Z (id sebagai tie-breaker).
func (s *MemberService) List(ctx context.Context, p helper.Paging) ([]model.MemberModel, int64, error) {
	base := func() *gorm.DB { return s.DB.WithContext(ctx).Model(&model.MemberModel{}) }

	var total int64
	if p.Enabled {
		if err := base().Count(&total).Error; err != nil {
			return nil, 0, err
		}
	}
	var rows []model.MemberModel
	if err := p.Apply(base()).Order("name ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	if !p.Enabled {
		total = int64(len(rows))
	}
	return rows, total, nil
}

func (s *MemberService) GetByCard(ctx context.Context, cardID string) (*model.MemberModel, error) {
	return FindByCard(s.DB.WithContext(ctx), cardID, false, MsgMemberNotFound)
}

// Update: patch parsial; points/totalScore/cardId tidak bisa diubah lewat sini.
func (s *MemberService) Update(ctx context.Context, cardID string, patch *dto.PatchMemberRequest) (*model.MemberModel, error) {
	var out *model.MemberModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := FindByCard(tx, cardID, true, MsgMemberNotFound)
		if err != nil {
			return err
		}
		if patch.IsEmpty() {
			return helper.InvalidArgument("No fields to update")
		}
		if err := patch.Validate(); err != nil {
			return err
		}
		if err := patch.ApplyPatch(m); err != nil {
			return err
		}
		// hanya kolom profil; agregat poin/skor tidak ikut ditulis ulang
		if err := tx.Model(m).Select(
			"name", "wilayah", "lingkungan", "no_handphone", "instagram",
			"birthday", "age", "status", "updated_at",
		).Updates(m).Error; err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, helper.MapStoreError(err)
	}
	return out, nil
}

// Delete: ikut hapus attendance link & ledger milik member (satu transaksi).
func (s *MemberService) Delete(ctx context.Context, cardID string) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := FindByCard(tx, cardID, true, MsgMemberNotFound)
		if err != nil {
			return err
		}
		if err := tx.Where("member_id = ?", m.ID).Delete(&linkModel.AttendanceLinkModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("member_id = ?", m.ID).Delete(&model.PointLedgerModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.MemberModel{}, m.ID).Error
	})
	return helper.MapStoreError(err)
}

// Recard: ganti card_id. Nilai sama → no-op. Dipakai member lain → Conflict.
func (s *MemberService) Recard(ctx context.Context, oldCardID, newCardID string) (*model.MemberModel, error) {
	if newCardID == "" {
		return nil, helper.InvalidArgument("newCardId is required")
	}
	var out *model.MemberModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := FindByCard(tx, oldCardID, true, MsgOldMemberNotFound)
		if err != nil {
			return err
		}
		if newCardID == m.CardID {
			out = m
			return nil
		}

		var taken int64
		if err := tx.Model(&model.MemberModel{}).Where("card_id = ?", newCardID).Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return helper.Conflict(MsgCardInUse)
		}

		if err := tx.Model(m).Update("card_id", newCardID).Error; err != nil {
			return err
		}
		m.CardID = newCardID
		out = m
		return nil
	})
	if err != nil {
		// insert paralel dengan card yang sama → unique violation
		if helper.IsUniqueViolation(err) {
			return nil, helper.Conflict(MsgCardInUse)
		}
		return nil, helper.MapStoreError(err)
	}
	return out, nil
}
