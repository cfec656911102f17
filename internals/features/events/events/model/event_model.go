// file: internals/features/events/events/model/event_model.go
package model

import "time"

const StatusPlanned = "planned"

type EventModel struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title      string    `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Subtitle   *string   `gorm:"column:subtitle;type:text" json:"subtitle,omitempty"`
	StartsAt   time.Time `gorm:"column:starts_at;not null;index:idx_events_starts_at" json:"starts_at"`
	Status     string    `gorm:"column:status;type:varchar(50);not null" json:"status"`
	BasicPoint int       `gorm:"column:basic_point;not null" json:"basic_point"`

	// Pembuat (opsional, dari creatorPin saat create)
	CreatedByName  *string `gorm:"column:created_by_name;type:varchar(120)" json:"created_by_name,omitempty"`
	CreatedByPinID *int64  `gorm:"column:created_by_pin_id" json:"created_by_pin_id,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (EventModel) TableName() string { return "events" }
