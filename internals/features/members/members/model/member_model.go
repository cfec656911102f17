// file: internals/features/members/members/model/member_model.go
package model

import (
	"time"

	"gorm.io/datatypes"
)

type MemberModel struct {
	ID     int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CardID string `gorm:"column:card_id;type:varchar(100);not null;uniqueIndex:uq_members_card_id" json:"card_id"`
	Name   string `gorm:"column:name;type:varchar(255);not null;index:idx_members_name" json:"name"`

	// Wilayah → lingkungan (sub-wilayah)
	Wilayah    *string `gorm:"column:wilayah;type:varchar(120)" json:"wilayah,omitempty"`
	Lingkungan *string `gorm:"column:lingkungan;type:varchar(120)" json:"lingkungan,omitempty"`

	NoHandphone *string         `gorm:"column:no_handphone;type:varchar(40)" json:"no_handphone,omitempty"`
	Instagram   *string         `gorm:"column:instagram;type:varchar(120)" json:"instagram,omitempty"`
	Birthday    *datatypes.Date `gorm:"column:birthday;type:date" json:"birthday,omitempty"`
	Age         *string         `gorm:"column:age;type:varchar(20)" json:"age,omitempty"` // teks bebas
	Status      *string         `gorm:"column:status;type:varchar(50)" json:"status,omitempty"`

	// Agregat: hanya diubah lewat tap-in / grading / ledger poin
	Points     int `gorm:"column:points;not null" json:"points"`
	TotalScore int `gorm:"column:total_score;not null" json:"total_score"`

	CreatedByName  *string `gorm:"column:created_by_name;type:varchar(120)" json:"created_by_name,omitempty"`
	CreatedByPinID *int64  `gorm:"column:created_by_pin_id" json:"created_by_pin_id,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (MemberModel) TableName() string { return "members" }
