package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents the database model for custodial users
type User struct {
	ID            string          `gorm:"primaryKey;type:uuid"`
	WalletAddress *string         `gorm:"uniqueIndex;size:255"`
	ChatID        *string         `gorm:"uniqueIndex;size:255"`
	Email         *string         `gorm:"uniqueIndex;size:255"`
	DisplayName   string          `gorm:"not null;size:255"`
	Balance       decimal.Decimal `gorm:"type:numeric(30,10);not null"`
	Verified      bool            `gorm:"not null;default:false"`
	Channel       string          `gorm:"not null;size:20"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
