// file: internals/features/attendance/links/model/attendance_link_model.go
package model

import "time"

// AttendanceLinkModel: satu baris per (event, member). PK komposit → tap-in paralel tidak bisa dobel.
type AttendanceLinkModel struct {
	EventID  int64     `gorm:"column:event_id;primaryKey;autoIncrement:false" json:"event_id"`
	MemberID int64     `gorm:"column:member_id;primaryKey;autoIncrement:false;index:idx_attendance_links_member" json:"member_id"`
	TappedAt time.Time `gorm:"column:tapped_at;not null" json:"tapped_at"`

	// Aspek penilaian (null sampai dinilai)
	Disiplin      *int `gorm:"column:disiplin" json:"disiplin,omitempty"`
	TanggungJawab *int `gorm:"column:tanggung_jawab" json:"tanggung_jawab,omitempty"`
	PercayaDiri   *int `gorm:"column:percaya_diri" json:"percaya_diri,omitempty"`
	Keaktifan     *int `gorm:"column:keaktifan" json:"keaktifan,omitempty"`

	// score = jumlah 4 aspek (grade aspects) atau nilai langsung (grade simple)
	Score *int    `gorm:"column:score" json:"score,omitempty"`
	Notes *string `gorm:"column:notes;type:text" json:"notes,omitempty"`
}

func (AttendanceLinkModel) TableName() string { return "attendance_links" }
