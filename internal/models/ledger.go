package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TxnPayment = "payment"
	TxnRefund  = "refund"
)

const (
	TxnPending   = "pending"
	TxnCompleted = "completed"
	TxnFailed    = "failed"
	TxnCancelled = "cancelled"
)

type Transaction struct {
	Base
	UserID        uuid.UUID       `gorm:"type:uuid;index;not null" json:"userId"`
	OrderID       uuid.UUID       `gorm:"type:uuid;index;not null" json:"orderId"`
	Reference     string          `gorm:"size:40;uniqueIndex;not null" json:"reference"`
	Type          string          `gorm:"size:20;not null" json:"type"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	PaymentMethod string          `gorm:"size:20;not null" json:"paymentMethod"`
	Status        string          `gorm:"size:20;not null;index" json:"status"`
	Description   string          `gorm:"size:255" json:"description"`
	CreatedAt     time.Time       `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

const (
	NotifyOrder  = "order"
	NotifyPromo  = "promo"
	NotifySystem = "system"
)

type Notification struct {
	Base
	UserID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"userId"`
	Title     string     `gorm:"size:150;not null" json:"title"`
	Message   string     `gorm:"size:500;not null" json:"message"`
	Type      string     `gorm:"size:20;not null" json:"type"`
	OrderID   *uuid.UUID `gorm:"type:uuid" json:"orderId,omitempty"`
	IsRead    bool       `gorm:"not null;default:false" json:"isRead"`
	CreatedAt time.Time  `gorm:"index" json:"createdAt"`
}
