package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order represents the database model for purchase orders
type Order struct {
	ID     string `gorm:"primaryKey;type:uuid"`
	Code   string `gorm:"uniqueIndex;not null;size:32"`
	UserID string `gorm:"type:uuid;not null;index"`

	// Shipping address, flattened
	AddressLine1  string `gorm:"not null;size:255"`
	AddressLine2  string `gorm:"size:255"`
	City          string `gorm:"not null;size:128"`
	State         string `gorm:"size:128"`
	PostalCode    string `gorm:"size:32"`
	Country       string `gorm:"size:64"`

	// Payment descriptor
	PaymentMethod   string          `gorm:"not null;size:20"`
	PaymentTxID     string          `gorm:"size:255"`
	PaymentAmount   decimal.Decimal `gorm:"type:numeric(30,10)"`
	PaymentCurrency string          `gorm:"size:16"`
	PaymentVerified bool            `gorm:"not null;default:false"`

	Subtotal  decimal.Decimal `gorm:"type:numeric(30,10);not null"`
	Shipping  decimal.Decimal `gorm:"type:numeric(30,10);not null"`
	Tax       decimal.Decimal `gorm:"type:numeric(30,10);not null"`
	Discount  decimal.Decimal `gorm:"type:numeric(30,10);not null"`
	Total     decimal.Decimal `gorm:"type:numeric(30,10);not null"`
	Status    string          `gorm:"not null;size:20;index"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`

	Items  []OrderItem  `gorm:"foreignKey:OrderID;references:ID"`
	Events []OrderEvent `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the table name for Order
func (Order) TableName() string {
	return "orders"
}

// OrderItem represents one product line of an order
type OrderItem struct {
	ID         uint64          `gorm:"primaryKey;autoIncrement"`
	OrderID    string          `gorm:"type:uuid;not null;index"`
	ProductRef string          `gorm:"not null;size:255"`
	Name       string          `gorm:"size:255"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(30,10);not null"`
}

// TableName specifies the table name for OrderItem
func (OrderItem) TableName() string {
	return "order_items"
}
