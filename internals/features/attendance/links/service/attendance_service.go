// file: internals/features/attendance/links/service/attendance_service.go
package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dto "anggotaku_backend/internals/features/attendance/links/dto"
	model "anggotaku_backend/internals/features/attendance/links/model"
	evModel "anggotaku_backend/internals/features/events/events/model"
	evService "anggotaku_backend/internals/features/events/events/service"
	memberModel "anggotaku_backend/internals/features/members/members/model"
	memberService "anggotaku_backend/internals/features/members/members/service"
	helper "anggotaku_backend/internals/helpers"
	"anggotaku_backend/internals/helpers/dbtime"
	"anggotaku_backend/internals/metrics"
)

var linkKey = []clause.Column{{Name: "event_id"}, {Name: "member_id"}}

type AttendanceService struct {
	DB *gorm.DB
}

func NewAttendanceService(db *gorm.DB) *AttendanceService {
	return &AttendanceService{DB: db}
}

func loadEvent(tx *gorm.DB, id int64) (*evModel.EventModel, error) {
	var ev evModel.EventModel
	if err := tx.Take(&ev, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NotFound(evService.MsgEventNotFound)
		}
		return nil, err
	}
	return &ev, nil
}

// resolve: event dulu, lalu member (urutan NotFound sama dengan API lama).
func resolve(tx *gorm.DB, eventID int64, cardID string) (*evModel.EventModel, *memberModel.MemberModel, error) {
	ev, err := loadEvent(tx, eventID)
	if err != nil {
		return nil, nil, err
	}
	m, err := memberService.FindByCard(tx, cardID, false, memberService.MsgMemberNotFound)
	if err != nil {
		return nil, nil, err
	}
	return ev, m, nil
}

// ensureLink: buat link kalau belum ada (tanpa poin). true kalau baris baru.
func ensureLink(tx *gorm.DB, eventID, memberID int64) (bool, error) {
	link := model.AttendanceLinkModel{EventID: eventID, MemberID: memberID, TappedAt: dbtime.NowUTC()}
	res := tx.Clauses(clause.OnConflict{Columns: linkKey, DoNothing: true}).Create(&link)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func findLink(tx *gorm.DB, eventID, memberID int64, lock bool) (*model.AttendanceLinkModel, error) {
	q := tx
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var link model.AttendanceLinkModel
	if err := q.Where("event_id = ? AND member_id = ?", eventID, memberID).Take(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

/* =========================================================
   TAP-IN
   ========================================================= */

type TapInResult struct {
	Created  bool
	EventID  int64
	CardID   string
	TappedAt time.Time
}

// TapIn: idempoten. Hanya insert pertama (event, member) yang memberi basic_point.
// Insert kedua (termasuk yang paralel) kena ON CONFLICT DO NOTHING → tidak ada kredit.
func (s *AttendanceService) TapIn(ctx context.Context, eventID int64, cardID string) (*TapInResult, error) {
	var out TapInResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ev, m, err := resolve(tx, eventID, cardID)
		if err != nil {
			return err
		}
		out.EventID, out.CardID = ev.ID, m.CardID

		created, err := ensureLink(tx, ev.ID, m.ID)
		if err != nil {
			return err
		}
		link, err := findLink(tx, ev.ID, m.ID, false)
		if err != nil {
			return err
		}
		out.Created, out.TappedAt = created, link.TappedAt
		if !created || ev.BasicPoint <= 0 {
			return nil
		}

		if err := tx.Model(&memberModel.MemberModel{}).
			Where("id = ?", m.ID).
			Update("points", gorm.Expr("points + ?", ev.BasicPoint)).Error; err != nil {
			return err
		}
		balance, err := memberService.CurrentPoints(tx, m.ID)
		if err != nil {
			return err
		}
		return memberService.WriteLedger(tx, m.ID, ev.BasicPoint, balance, memberModel.LedgerTapIn, &ev.ID, nil)
	})
	if err != nil {
		return nil, helper.MapStoreError(err)
	}

	if out.Created {
		metrics.TapIns.WithLabelValues("new").Inc()
	} else {
		metrics.TapIns.WithLabelValues("repeat").Inc()
	}
	return &out, nil
}

/* =========================================================
   GRADING
   ========================================================= */

type GradeResult struct {
	EventID int64
	CardID  string
	Score   int
	Notes   *string
}

// GradeSimple: timpa score/notes langsung. total_score member TIDAK disentuh.
func (s *AttendanceService) GradeSimple(ctx context.Context, eventID int64, cardID string, score int, notes *string) (*GradeResult, error) {
	var out GradeResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ev, m, err := resolve(tx, eventID, cardID)
		if err != nil {
			return err
		}
		link := model.AttendanceLinkModel{
			EventID:  ev.ID,
			MemberID: m.ID,
			TappedAt: dbtime.NowUTC(),
			Score:    &score,
			Notes:    notes,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   linkKey,
			DoUpdates: clause.AssignmentColumns([]string{"score", "notes"}),
		}).Create(&link).Error; err != nil {
			return err
		}
		out = GradeResult{EventID: ev.ID, CardID: m.CardID, Score: score, Notes: notes}
		return nil
	})
	if err != nil {
		return nil, helper.MapStoreError(err)
	}
	metrics.Grades.WithLabelValues("simple").Inc()
	return &out, nil
}

// GradeAspects: score = jumlah 4 aspek; total_score member disesuaikan dengan delta (baru - lama).
func (s *AttendanceService) GradeAspects(ctx context.Context, eventID int64, cardID string, a dto.Aspects, notes *string) (*GradeResult, error) {
	if a.Disiplin < 0 || a.TanggungJawab < 0 || a.PercayaDiri < 0 || a.Keaktifan < 0 {
		return nil, helper.InvalidArgument("aspect values must be >= 0")
	}

	var out GradeResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ev, m, err := resolve(tx, eventID, cardID)
		if err != nil {
			return err
		}
		if _, err := ensureLink(tx, ev.ID, m.ID); err != nil {
			return err
		}
		// kunci baris link supaya grading paralel tidak membaca prev yang sama
		link, err := findLink(tx, ev.ID, m.ID, true)
		if err != nil {
			return err
		}

		prev := 0
		if link.Score != nil {
			prev = *link.Score
		}
		total := a.Total()

		if err := tx.Model(&model.AttendanceLinkModel{}).
			Where("event_id = ? AND member_id = ?", ev.ID, m.ID).
			Updates(map[string]any{
				"disiplin":       a.Disiplin,
				"tanggung_jawab": a.TanggungJawab,
				"percaya_diri":   a.PercayaDiri,
				"keaktifan":      a.Keaktifan,
				"score":          total,
				"notes":          notes,
			}).Error; err != nil {
			return err
		}

		if delta := total - prev; delta != 0 {
			if err := tx.Model(&memberModel.MemberModel{}).
				Where("id = ?", m.ID).
				Update("total_score", gorm.Expr("total_score + ?", delta)).Error; err != nil {
				return err
			}
		}
		out = GradeResult{EventID: ev.ID, CardID: m.CardID, Score: total, Notes: notes}
		return nil
	})
	if err != nil {
		return nil, helper.MapStoreError(err)
	}
	metrics.Grades.WithLabelValues("aspects").Inc()
	return &out, nil
}

/* =========================================================
   PROJECTIONS
   ========================================================= */

const gradeColumns = "al.score, al.notes, al.disiplin, al.tanggung_jawab, al.percaya_diri, al.keaktifan, al.tapped_at"

// ListMembersOfEvent: member yang hadir di event + nilai, urut nama A→Z.
func (s *AttendanceService) ListMembersOfEvent(ctx context.Context, eventID int64) ([]dto.MemberGradeRow, error) {
	db := s.DB.WithContext(ctx)
	if _, err := loadEvent(db, eventID); err != nil {
		return nil, err
	}
	var rows []dto.MemberGradeRow
	if err := s.DB.WithContext(ctx).
		Table("members AS m").
		Select("m.*, "+gradeColumns).
		Joins("JOIN attendance_links al ON al.member_id = m.id").
		Where("al.event_id = ?", eventID).
		Order("m.name ASC").Order("m.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetMemberWithEvents: member + semua event yang diikuti, jadwal terbaru dulu.
func (s *AttendanceService) GetMemberWithEvents(ctx context.Context, cardID string) (*memberModel.MemberModel, []dto.EventGradeRow, error) {
	m, err := memberService.FindByCard(s.DB.WithContext(ctx), cardID, false, memberService.MsgMemberNotFound)
	if err != nil {
		return nil, nil, err
	}
	var rows []dto.EventGradeRow
	if err := s.DB.WithContext(ctx).
		Table("events AS e").
		Select("e.*, "+gradeColumns).
		Joins("JOIN attendance_links al ON al.event_id = e.id").
		Where("al.member_id = ?", m.ID).
		Order("e.starts_at DESC").Order("e.id DESC").
		Scan(&rows).Error; err != nil {
		return nil, nil, err
	}
	return m, rows, nil
}
