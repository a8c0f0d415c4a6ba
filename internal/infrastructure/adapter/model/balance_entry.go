package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceEntry is the append-only journal row written alongside every
// balance adjustment. BalanceAfter is the post-adjustment balance read under
// the same row lock as the update itself.
type BalanceEntry struct {
	ID           uint64          `gorm:"primaryKey;autoIncrement"`
	UserID       string          `gorm:"type:uuid;not null;index"`
	Delta        decimal.Decimal `gorm:"type:numeric(30,10);not null"`
	BalanceAfter decimal.Decimal `gorm:"type:numeric(30,10);not null"`
	Reason       string          `gorm:"not null;size:255;index"`
	CreatedAt    time.Time       `gorm:"not null"`
}

// TableName specifies the table name for BalanceEntry
func (BalanceEntry) TableName() string {
	return "balance_entries"
}
