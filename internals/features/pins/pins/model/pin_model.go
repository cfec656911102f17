package model

import "time"

// PinModel: satu nama ↔ satu PIN 4 digit (permanen, tanpa kedaluwarsa).
type PinModel struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(120);not null;uniqueIndex:uq_pins_name" json:"name"`
	Pin       string    `gorm:"column:pin;type:varchar(4);not null;uniqueIndex:uq_pins_pin" json:"pin"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (PinModel) TableName() string { return "pins" }
