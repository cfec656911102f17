package service

import (
	"context"

	"gorm.io/gorm"

	model "anggotaku_backend/internals/features/members/members/model"
	helper "anggotaku_backend/internals/helpers"
	"anggotaku_backend/internals/helpers/dbtime"
	"anggotaku_backend/internals/metrics"
)

// CurrentPoints: saldo terbaru (dibaca di dalam tx yang sama).
func CurrentPoints(tx *gorm.DB, memberID int64) (int, error) {
	var m model.MemberModel
	if err := tx.Select("points").Where("id = ?", memberID).Take(&m).Error; err != nil {
		return 0, err
	}
	return m.Points, nil
}

// WriteLedger mencatat perubahan saldo; dipakai juga oleh tap-in.
func WriteLedger(tx *gorm.DB, memberID int64, delta, balanceAfter int, kind model.LedgerKind, eventID *int64, note *string) error {
	return tx.Create(&model.PointLedgerModel{
		MemberID:     memberID,
		Delta:        delta,
		BalanceAfter: balanceAfter,
		Kind:         kind,
		EventID:      eventID,
		Note:         note,
		CreatedAt:    dbtime.NowUTC(),
	}).Error
}

// AddPoints: points = points + amount (atomik di DB, bukan read-modify-write).
func (s *MemberService) AddPoints(ctx context.Context, cardID string, amount int, note *string) (*model.MemberModel, int, error) {
	var (
		member  *model.MemberModel
		balance int
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := FindByCard(tx, cardID, true, MsgMemberNotFound)
		if err != nil {
			return err
		}
		if amount <= 0 {
			return helper.InvalidArgument("amount must be > 0")
		}
		if err := tx.Model(&model.MemberModel{}).
			Where("id = ?", m.ID).
			Update("points", gorm.Expr("points + ?", amount)).Error; err != nil {
			return err
		}
		if balance, err = CurrentPoints(tx, m.ID); err != nil {
			return err
		}
		if err := WriteLedger(tx, m.ID, amount, balance, model.LedgerAdd, nil, note); err != nil {
			return err
		}
		m.Points = balance
		member = m
		return nil
	})
	if err != nil {
		return nil, 0, helper.MapStoreError(err)
	}
	metrics.PointsCredited.WithLabelValues("add").Add(float64(amount))
	return member, balance, nil
}

// RedeemPoints: update bersyarat (points >= amount) → saldo tidak pernah negatif.
func (s *MemberService) RedeemPoints(ctx context.Context, cardID string, amount int, note *string) (*model.MemberModel, int, error) {
	var (
		member  *model.MemberModel
		balance int
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := FindByCard(tx, cardID, true, MsgMemberNotFound)
		if err != nil {
			return err
		}
		if amount <= 0 {
			return helper.InvalidArgument("amount must be > 0")
		}
		res := tx.Model(&model.MemberModel{}).
			Where("id = ? AND points >= ?", m.ID, amount).
			Update("points", gorm.Expr("points - ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return helper.InvalidArgument("insufficient points")
		}
		if balance, err = CurrentPoints(tx, m.ID); err != nil {
			return err
		}
		if err := WriteLedger(tx, m.ID, -amount, balance, model.LedgerRedeem, nil, note); err != nil {
			return err
		}
		m.Points = balance
		member = m
		return nil
	})
	if err != nil {
		return nil, 0, helper.MapStoreError(err)
	}
	metrics.PointsRedeemed.Add(float64(amount))
	return member, balance, nil
}

// PointHistory: ledger terbaru dulu.
func (s *MemberService) PointHistory(ctx context.Context, cardID string, p helper.Paging) ([]model.PointLedgerModel, int64, error) {
	db := s.DB.WithContext(ctx)
	m, err := FindByCard(db, cardID, false, MsgMemberNotFound)
	if err != nil {
		return nil, 0, err
	}

	base := func() *gorm.DB { return s.DB.WithContext(ctx).Model(&model.PointLedgerModel{}).Where("member_id = ?", m.ID) }

	var total int64
	if p.Enabled {
		if err := base().Count(&total).Error; err != nil {
			return nil, 0, err
		}
	}
	var rows []model.PointLedgerModel
	if err := p.Apply(base()).Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	if !p.Enabled {
		total = int64(len(rows))
	}
	return rows, total, nil
}
