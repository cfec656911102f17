package model

import "time"

type LedgerKind string

const (
	LedgerTapIn  LedgerKind = "tap_in"
	LedgerAdd    LedgerKind = "add"
	LedgerRedeem LedgerKind = "redeem"
)

// PointLedgerModel: jejak setiap perubahan saldo poin member.
type PointLedgerModel struct {
	ID           int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	MemberID     int64      `gorm:"column:member_id;not null;index:idx_point_ledgers_member_created,priority:1" json:"member_id"`
	Delta        int        `gorm:"column:delta;not null" json:"delta"`
	BalanceAfter int        `gorm:"column:balance_after;not null" json:"balance_after"`
	Kind         LedgerKind `gorm:"column:kind;type:varchar(20);not null" json:"kind"`
	EventID      *int64     `gorm:"column:event_id" json:"event_id,omitempty"`
	Note         *string    `gorm:"column:note;type:text" json:"note,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime;index:idx_point_ledgers_member_created,priority:2" json:"created_at"`
}

func (PointLedgerModel) TableName() string { return "point_ledgers" }
