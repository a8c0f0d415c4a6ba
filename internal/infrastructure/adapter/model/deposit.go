package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Deposit represents the database model for verified deposits. The unique
// index on ExternalTxID is the durable dedup guarantee: a second insert for
// the same external transaction fails at the database level no matter how
// many processes race.
type Deposit struct {
	ID            string          `gorm:"primaryKey;type:uuid"`
	UserID        *string         `gorm:"type:uuid;index"`
	ExternalTxID  string          `gorm:"uniqueIndex;not null;size:255"`
	Amount        decimal.Decimal `gorm:"type:numeric(30,10);not null"`
	TokenID       string          `gorm:"size:64"`
	SenderAddress string          `gorm:"size:255"`
	ConsensusAt   *time.Time
	ConfirmedAt   *time.Time
	Status        string    `gorm:"not null;size:20;index"`
	CreatedAt     time.Time `gorm:"not null"`
}

// TableName specifies the table name for Deposit
func (Deposit) TableName() string {
	return "deposits"
}
