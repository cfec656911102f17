// file: internals/features/attendance/links/dto/attendance_dto.go
package dto

import (
	"strings"
	"time"

	evDto "anggotaku_backend/internals/features/events/events/dto"
	evModel "anggotaku_backend/internals/features/events/events/model"
	memberDto "anggotaku_backend/internals/features/members/members/dto"
	memberModel "anggotaku_backend/internals/features/members/members/model"
	"anggotaku_backend/internals/helpers/dbtime"
)

const (
	MsgTapInRecorded = "Tap-in recorded"
	MsgAlreadyJoined = "Already joined"
	MsgGradeSaved    = "Grade saved"
)

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

/* =========================================================
   Requests
   ========================================================= */

type TapInRequest struct {
	CardID string `json:"cardId" validate:"required,max=100"`
}

func (r *TapInRequest) Normalize() { r.CardID = strings.TrimSpace(r.CardID) }

type GradeRequest struct {
	CardID string  `json:"cardId" validate:"required,max=100"`
	Score  *int    `json:"score" validate:"required"`
	Notes  *string `json:"notes"`
}

func (r *GradeRequest) Normalize() {
	r.CardID = strings.TrimSpace(r.CardID)
	r.Notes = trimPtr(r.Notes)
}

type GradeAspectsRequest struct {
	CardID        string  `json:"cardId" validate:"required,max=100"`
	Disiplin      *int    `json:"disiplin" validate:"required,gte=0"`
	TanggungJawab *int    `json:"tanggungJawab" validate:"required,gte=0"`
	PercayaDiri   *int    `json:"percayaDiri" validate:"required,gte=0"`
	Keaktifan     *int    `json:"keaktifan" validate:"required,gte=0"`
	Notes         *string `json:"notes"`
}

func (r *GradeAspectsRequest) Normalize() {
	r.CardID = strings.TrimSpace(r.CardID)
	r.Notes = trimPtr(r.Notes)
}

// Aspects: dipanggil setelah validasi (semua field wajib ada).
func (r *GradeAspectsRequest) Aspects() Aspects {
	return Aspects{
		Disiplin:      *r.Disiplin,
		TanggungJawab: *r.TanggungJawab,
		PercayaDiri:   *r.PercayaDiri,
		Keaktifan:     *r.Keaktifan,
	}
}

type Aspects struct {
	Disiplin      int
	TanggungJawab int
	PercayaDiri   int
	Keaktifan     int
}

func (a Aspects) Total() int { return a.Disiplin + a.TanggungJawab + a.PercayaDiri + a.Keaktifan }

/* =========================================================
   Action responses (key lama dipertahankan: event_id, tapped_at)
   ========================================================= */

type TapInResponse struct {
	Message  string `json:"message"`
	EventID  int64  `json:"event_id"`
	CardID   string `json:"cardId"`
	TappedAt string `json:"tapped_at"`
}

type GradeResponse struct {
	Message string  `json:"message"`
	EventID int64   `json:"event_id"`
	CardID  string  `json:"cardId"`
	Score   int     `json:"score"`
	Notes   *string `json:"notes"`
}

type GradeAspectsResponse struct {
	Message string `json:"message"`
	EventID int64  `json:"event_id"`
	CardID  string `json:"cardId"`
	Score   int    `json:"score"`
}

/* =========================================================
   Projections
   ========================================================= */

// GradeColumns: kolom link yang ikut di-select bareng member/event.
type GradeColumns struct {
	Score         *int       `gorm:"column:score"`
	Notes         *string    `gorm:"column:notes"`
	Disiplin      *int       `gorm:"column:disiplin"`
	TanggungJawab *int       `gorm:"column:tanggung_jawab"`
	PercayaDiri   *int       `gorm:"column:percaya_diri"`
	Keaktifan     *int       `gorm:"column:keaktifan"`
	TappedAt      *time.Time `gorm:"column:tapped_at"`
}

// MemberGradeRow: hasil scan members JOIN attendance_links.
type MemberGradeRow struct {
	memberModel.MemberModel `gorm:"embedded"`
	GradeColumns            `gorm:"embedded"`
}

// EventGradeRow: hasil scan events JOIN attendance_links.
type EventGradeRow struct {
	evModel.EventModel `gorm:"embedded"`
	GradeColumns       `gorm:"embedded"`
}

type GradeFields struct {
	Score         *int    `json:"score"`
	Notes         *string `json:"notes"`
	Disiplin      *int    `json:"disiplin"`
	TanggungJawab *int    `json:"tanggungJawab"`
	PercayaDiri   *int    `json:"percayaDiri"`
	Keaktifan     *int    `json:"keaktifan"`
	TappedAt      *string `json:"tappedAt"`
}

func fromGradeColumns(g GradeColumns, loc *time.Location) GradeFields {
	return GradeFields{
		Score:         g.Score,
		Notes:         g.Notes,
		Disiplin:      g.Disiplin,
		TanggungJawab: g.TanggungJawab,
		PercayaDiri:   g.PercayaDiri,
		Keaktifan:     g.Keaktifan,
		TappedAt:      dbtime.FormatWallClockPtr(g.TappedAt, loc),
	}
}

type MemberInEventResponse struct {
	memberDto.MemberResponse
	GradeFields
}

func FromMemberGradeRows(rows []MemberGradeRow, loc *time.Location) []MemberInEventResponse {
	out := make([]MemberInEventResponse, 0, len(rows))
	for i := range rows {
		out = append(out, MemberInEventResponse{
			MemberResponse: memberDto.FromModel(&rows[i].MemberModel),
			GradeFields:    fromGradeColumns(rows[i].GradeColumns, loc),
		})
	}
	return out
}

type EventWithGradeResponse struct {
	evDto.EventResponse
	GradeFields
}

type MemberDetailResponse struct {
	memberDto.MemberResponse
	Events []EventWithGradeResponse `json:"events"`
}

func NewMemberDetailResponse(m *memberModel.MemberModel, rows []EventGradeRow, loc *time.Location) MemberDetailResponse {
	events := make([]EventWithGradeResponse, 0, len(rows))
	for i := range rows {
		events = append(events, EventWithGradeResponse{
			EventResponse: evDto.FromModel(&rows[i].EventModel, loc),
			GradeFields:   fromGradeColumns(rows[i].GradeColumns, loc),
		})
	}
	return MemberDetailResponse{MemberResponse: memberDto.FromModel(m), Events: events}
}
