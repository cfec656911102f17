// file: internals/features/members/members/dto/member_dto.go
package dto

import (
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"

	model "anggotaku_backend/internals/features/members/members/model"
	helper "anggotaku_backend/internals/helpers"
	"anggotaku_backend/internals/helpers/dbtime"
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

func parseBirthday(s *string) (*datatypes.Date, error) {
	s = trimPtr(s)
	if s == nil {
		return nil, nil
	}
	t, err := dbtime.ParseDate(*s)
	if err != nil {
		return nil, &helper.ValidationErrors{Fields: map[string]string{"birthday": "format harus YYYY-MM-DD"}}
	}
	d := datatypes.Date(t)
	return &d, nil
}

/* =========================================================
   CREATE
   ========================================================= */

type CreateMemberRequest struct {
	CardID      string  `json:"cardId" validate:"required,max=100"`
	Name        string  `json:"name" validate:"required,max=255"`
	Wilayah     *string `json:"wilayah" validate:"omitempty,max=120"`
	Lingkungan  *string `json:"lingkungan" validate:"omitempty,max=120"`
	NoHandphone *string `json:"noHandphone" validate:"omitempty,max=40"`
	Instagram   *string `json:"instagram" validate:"omitempty,max=120"`
	Birthday    *string `json:"birthday"`
	Age         *string `json:"age" validate:"omitempty,max=20"`
	Status      *string `json:"status" validate:"omitempty,max=50"`
	CreatorPin  *string `json:"creatorPin"`
}

func (r *CreateMemberRequest) Normalize() {
	r.CardID = strings.TrimSpace(r.CardID)
	r.Name = helper.CleanText(r.Name)
	r.Wilayah = trimPtr(r.Wilayah)
	r.Lingkungan = trimPtr(r.Lingkungan)
	r.NoHandphone = trimPtr(r.NoHandphone)
	r.Instagram = trimPtr(r.Instagram)
	r.Birthday = trimPtr(r.Birthday)
	r.Age = trimPtr(r.Age)
	r.Status = trimPtr(r.Status)
	r.CreatorPin = trimPtr(r.CreatorPin)
}

// ToModel: points & totalScore selalu mulai dari 0.
func (r *CreateMemberRequest) ToModel() (*model.MemberModel, error) {
	bday, err := parseBirthday(r.Birthday)
	if err != nil {
		return nil, err
	}
	return &model.MemberModel{
		CardID:      r.CardID,
		Name:        r.Name,
		Wilayah:     r.Wilayah,
		Lingkungan:  r.Lingkungan,
		NoHandphone: r.NoHandphone,
		Instagram:   r.Instagram,
		Birthday:    bday,
		Age:         r.Age,
		Status:      r.Status,
	}, nil
}

/* =========================================================
   PATCH (tri-state). id & cardId di body diabaikan (pakai /recard).
   ========================================================= */

type PatchMemberRequest struct {
	Name        helper.PatchField[string] `json:"name"`
	Wilayah     helper.PatchField[string] `json:"wilayah"`
	Lingkungan  helper.PatchField[string] `json:"lingkungan"`
	NoHandphone helper.PatchField[string] `json:"noHandphone"`
	Instagram   helper.PatchField[string] `json:"instagram"`
	Birthday    helper.PatchField[string] `json:"birthday"`
	Age         helper.PatchField[string] `json:"age"`
	Status      helper.PatchField[string] `json:"status"`
}

func (p *PatchMemberRequest) IsEmpty() bool {
	return !p.Name.Present && !p.Wilayah.Present && !p.Lingkungan.Present &&
		!p.NoHandphone.Present && !p.Instagram.Present && !p.Birthday.Present &&
		!p.Age.Present && !p.Status.Present
}

func maxLen(fields map[string]string, key string, f helper.PatchField[string], n int) {
	if v, ok := f.Get(); ok && v != nil && len(strings.TrimSpace(*v)) > n {
		fields[key] = "maksimal " + strconv.Itoa(n)
	}
}

func (p *PatchMemberRequest) Validate() error {
	fields := map[string]string{}
	if p.Name.IsNull() {
		fields["name"] = "tidak boleh null"
	} else if v, ok := p.Name.Get(); ok && strings.TrimSpace(*v) == "" {
		fields["name"] = "wajib diisi"
	}
	maxLen(fields, "name", p.Name, 255)
	maxLen(fields, "wilayah", p.Wilayah, 120)
	maxLen(fields, "lingkungan", p.Lingkungan, 120)
	maxLen(fields, "noHandphone", p.NoHandphone, 40)
	maxLen(fields, "instagram", p.Instagram, 120)
	maxLen(fields, "age", p.Age, 20)
	maxLen(fields, "status", p.Status, 50)
	if len(fields) > 0 {
		return &helper.ValidationErrors{Fields: fields}
	}
	return nil
}

// ApplyPatch: kolom nullable boleh di-clear dengan null.
func (p *PatchMemberRequest) ApplyPatch(m *model.MemberModel) error {
	if v, ok := p.Name.Get(); ok && v != nil {
		m.Name = helper.CleanText(*v)
	}
	if v, ok := p.Wilayah.Get(); ok {
		m.Wilayah = trimPtr(v)
	}
	if v, ok := p.Lingkungan.Get(); ok {
		m.Lingkungan = trimPtr(v)
	}
	if v, ok := p.NoHandphone.Get(); ok {
		m.NoHandphone = trimPtr(v)
	}
	if v, ok := p.Instagram.Get(); ok {
		m.Instagram = trimPtr(v)
	}
	if v, ok := p.Birthday.Get(); ok {
		bday, err := parseBirthday(v)
		if err != nil {
			return err
		}
		m.Birthday = bday
	}
	if v, ok := p.Age.Get(); ok {
		m.Age = trimPtr(v)
	}
	if v, ok := p.Status.Get(); ok {
		m.Status = trimPtr(v)
	}
	return nil
}

/* =========================================================
   RESPONSE
   ========================================================= */

type MemberResponse struct {
	ID             int64   `json:"id"`
	CardID         string  `json:"cardId"`
	Name           string  `json:"name"`
	Wilayah        *string `json:"wilayah"`
	Lingkungan     *string `json:"lingkungan"`
	NoHandphone    *string `json:"noHandphone"`
	Instagram      *string `json:"instagram"`
	Birthday       *string `json:"birthday"`
	Age            *string `json:"age"`
	Status         *string `json:"status"`
	Points         int     `json:"points"`
	TotalScore     int     `json:"totalScore"`
	CreatedByName  *string `json:"createdByName"`
	CreatedByPinID *int64  `json:"createdByPinId"`
}

func FormatBirthday(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := time.Time(*d).Format(dbtime.DateLayout)
	return &s
}

func FromModel(m *model.MemberModel) MemberResponse {
	return MemberResponse{
		ID:             m.ID,
		CardID:         m.CardID,
		Name:           m.Name,
		Wilayah:        m.Wilayah,
		Lingkungan:     m.Lingkungan,
		NoHandphone:    m.NoHandphone,
		Instagram:      m.Instagram,
		Birthday:       FormatBirthday(m.Birthday),
		Age:            m.Age,
		Status:         m.Status,
		Points:         m.Points,
		TotalScore:     m.TotalScore,
		CreatedByName:  m.CreatedByName,
		CreatedByPinID: m.CreatedByPinID,
	}
}

func FromModels(rows []model.MemberModel) []MemberResponse {
	out := make([]MemberResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}
