package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	AccountID     *uint           `gorm:"index" json:"user_id"` // nil for guest checkout
	CustomerName  string          `gorm:"size:120;not null" json:"customer_name"`
	CustomerEmail string          `gorm:"size:191;not null" json:"customer_email"`
	CustomerPhone string          `gorm:"size:40" json:"customer_phone"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Status        OrderStatus     `gorm:"size:16;index;not null;default:pending" json:"status"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
}

type OrderItem struct {
	ID      uint `gorm:"primaryKey"`
	OrderID uint `gorm:"index;not null"`
	// product rows may be deleted later, so no FK here
	ProductID   uint            `gorm:"index;not null"`
	ProductName string          `gorm:"size:120;not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// AllModels lists every table owned by the storefront, in migration order.
func AllModels() []any {
	return []any{
		&Account{},
		&Product{},
		&Favorite{},
		&Order{},
		&OrderItem{},
	}
}
