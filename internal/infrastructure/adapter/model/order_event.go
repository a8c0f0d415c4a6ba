package model

import (
	"time"
)

// OrderEvent records one status transition of an order
type OrderEvent struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	OrderID    string    `gorm:"type:uuid;not null;index"`
	FromStatus string    `gorm:"not null;size:20"`
	ToStatus   string    `gorm:"not null;size:20"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName specifies the table name for OrderEvent
func (OrderEvent) TableName() string {
	return "order_events"
}
