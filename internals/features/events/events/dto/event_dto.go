// file: internals/features/events/events/dto/event_dto.go
package dto

import (
	"strings"
	"time"

	helper "anggotaku_backend/internals/helpers"
	"anggotaku_backend/internals/helpers/dbtime"

	model "anggotaku_backend/internals/features/events/events/model"
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
   CREATE
   ========================================================= */

type CreateEventRequest struct {
	Title      string  `json:"title" validate:"required,max=255"`
	Subtitle   *string `json:"subtitle"`
	Datetime   string  `json:"datetime" validate:"required"`
	Status     *string `json:"status" validate:"omitempty,max=50"`
	BasicPoint *int    `json:"basicPoint" validate:"omitempty,gte=0"`
	CreatorPin *string `json:"creatorPin"`
}

func (r *CreateEventRequest) Normalize() {
	r.Title = helper.CleanText(r.Title)
	r.Datetime = strings.TrimSpace(r.Datetime)
	r.Subtitle = trimPtr(r.Subtitle)
	r.Status = trimPtr(r.Status)
	r.CreatorPin = trimPtr(r.CreatorPin)
}

// ToModel: datetime naive dibaca di zona loc, disimpan UTC.
func (r *CreateEventRequest) ToModel(loc *time.Location) (*model.EventModel, error) {
	startsAt, err := dbtime.ParseWallClock(r.Datetime, loc)
	if err != nil {
		return nil, &helper.ValidationErrors{Fields: map[string]string{"datetime": err.Error()}}
	}
	status := model.StatusPlanned
	if r.Status != nil {
		status = *r.Status
	}
	bp := 0
	if r.BasicPoint != nil {
		bp = *r.BasicPoint
	}
	return &model.EventModel{
		Title:      r.Title,
		Subtitle:   r.Subtitle,
		StartsAt:   startsAt,
		Status:     status,
		BasicPoint: bp,
	}, nil
}

/* =========================================================
   PATCH (tri-state). id di body diabaikan.
   ========================================================= */

type PatchEventRequest struct {
	Title      helper.PatchField[string] `json:"title"`
	Subtitle   helper.PatchField[string] `json:"subtitle"`
	Datetime   helper.PatchField[string] `json:"datetime"`
	Status     helper.PatchField[string] `json:"status"`
	BasicPoint helper.PatchField[int]    `json:"basicPoint"`
}

func (p *PatchEventRequest) IsEmpty() bool {
	return !p.Title.Present && !p.Subtitle.Present && !p.Datetime.Present &&
		!p.Status.Present && !p.BasicPoint.Present
}

// Validate: kolom NOT NULL tidak boleh dikirim null.
func (p *PatchEventRequest) Validate() error {
	fields := map[string]string{}
	if p.Title.IsNull() {
		fields["title"] = "tidak boleh null"
	} else if v, ok := p.Title.Get(); ok {
		if t := strings.TrimSpace(*v); t == "" {
			fields["title"] = "wajib diisi"
		} else if len(t) > 255 {
			fields["title"] = "maksimal 255"
		}
	}
	if p.Datetime.IsNull() {
		fields["datetime"] = "tidak boleh null"
	}
	if p.Status.IsNull() {
		fields["status"] = "tidak boleh null"
	} else if v, ok := p.Status.Get(); ok && len(strings.TrimSpace(*v)) > 50 {
		fields["status"] = "maksimal 50"
	}
	if p.BasicPoint.IsNull() {
		fields["basicPoint"] = "tidak boleh null"
	} else if v, ok := p.BasicPoint.Get(); ok && *v < 0 {
		fields["basicPoint"] = "minimal 0"
	}
	if len(fields) > 0 {
		return &helper.ValidationErrors{Fields: fields}
	}
	return nil
}

// ApplyPatch: ubah model in-place untuk field yang Present. Panggil Validate dulu.
func (p *PatchEventRequest) ApplyPatch(m *model.EventModel, loc *time.Location) error {
	if v, ok := p.Title.Get(); ok && v != nil {
		m.Title = helper.CleanText(*v)
	}
	if v, ok := p.Subtitle.Get(); ok {
		m.Subtitle = trimPtr(v)
	}
	if v, ok := p.Datetime.Get(); ok && v != nil {
		t, err := dbtime.ParseWallClock(*v, loc)
		if err != nil {
			return &helper.ValidationErrors{Fields: map[string]string{"datetime": err.Error()}}
		}
		m.StartsAt = t
	}
	if v, ok := p.Status.Get(); ok && v != nil {
		m.Status = strings.TrimSpace(*v)
	}
	if v, ok := p.BasicPoint.Get(); ok && v != nil {
		m.BasicPoint = *v
	}
	return nil
}

/* =========================================================
   RESPONSE
   ========================================================= */

type EventResponse struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Subtitle       *string `json:"subtitle"`
	Datetime       string  `json:"datetime"`
	Status         string  `json:"status"`
	BasicPoint     int     `json:"basicPoint"`
	CreatedByName  *string `json:"createdByName"`
	CreatedByPinID *int64  `json:"createdByPinId"`
}

func FromModel(m *model.EventModel, loc *time.Location) EventResponse {
	return EventResponse{
		ID:             m.ID,
		Title:          m.Title,
		Subtitle:       m.Subtitle,
		Datetime:       dbtime.FormatWallClock(m.StartsAt, loc),
		Status:         m.Status,
		BasicPoint:     m.BasicPoint,
		CreatedByName:  m.CreatedByName,
		CreatedByPinID: m.CreatedByPinID,
	}
}

func FromModels(rows []model.EventModel, loc *time.Location) []EventResponse {
	out := make([]EventResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i], loc))
	}
	return out
}
