package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	OrderPending        = "pending"
	OrderConfirmed      = "confirmed"
	OrderPreparing      = "preparing"
	OrderOutForDelivery = "out_for_delivery"
	OrderDelivered      = "delivered"
	OrderCancelled      = "cancelled"
)

// OrderFlow is the forward progression an order moves through.
var OrderFlow = []string{OrderPending, OrderConfirmed, OrderPreparing, OrderOutForDelivery, OrderDelivered}

const (
	PaymentCOD    = "cod"
	PaymentCard   = "card"
	PaymentUPI    = "upi"
	PaymentWallet = "wallet"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusRefunded  = "refunded"
	PaymentStatusCancelled = "cancelled"
)

type AddressSnapshot struct {
	Label    string `gorm:"size:20" json:"label"`
	Name     string `gorm:"size:100" json:"name"`
	Phone    string `gorm:"size:20" json:"phone"`
	Street   string `gorm:"size:255" json:"street"`
	Landmark string `gorm:"size:255" json:"landmark"`
	City     string `gorm:"size:100" json:"city"`
	State    string `gorm:"size:100" json:"state"`
	Pincode  string `gorm:"size:10" json:"pincode"`
}

type Order struct {
	Base
	OrderNumber       string          `gorm:"size:32;uniqueIndex;not null" json:"orderNumber"`
	UserID            uuid.UUID       `gorm:"type:uuid;index;not null" json:"userId"`
	Items             []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	DeliveryAddress   AddressSnapshot `gorm:"embedded;embeddedPrefix:delivery_" json:"deliveryAddress"`
	PaymentMethod     string          `gorm:"size:20;not null" json:"paymentMethod"`
	PaymentStatus     string          `gorm:"size:20;not null" json:"paymentStatus"`
	Status            string          `gorm:"size:20;not null;index" json:"status"`
	TotalAmount       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"totalAmount"`
	DeliveryFee       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"deliveryFee"`
	Discount          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"discount"`
	FinalAmount       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"finalAmount"`
	PromoCode         string          `gorm:"size:50" json:"promoCode,omitempty"`
	Instructions      string          `gorm:"size:500" json:"instructions,omitempty"`
	CanCancel         bool            `gorm:"not null" json:"canCancel"`
	CanReorder        bool            `gorm:"not null" json:"canReorder"`
	CanRate           bool            `gorm:"not null" json:"canRate"`
	Rating            *int            `json:"rating,omitempty"`
	Review            string          `gorm:"size:1000" json:"review,omitempty"`
	RatedAt           *time.Time      `json:"ratedAt,omitempty"`
	CancelReason      string          `gorm:"size:500" json:"cancelReason,omitempty"`
	CancelledAt       *time.Time      `json:"cancelledAt,omitempty"`
	DeliveredAt       *time.Time      `json:"deliveredAt,omitempty"`
	EstimatedDelivery time.Time       `json:"estimatedDelivery"`
	ReorderedFrom     *uuid.UUID      `gorm:"type:uuid" json:"reorderedFrom,omitempty"`
	TrackingSteps     []TrackingStep  `gorm:"foreignKey:OrderID" json:"trackingSteps"`
	CreatedAt         time.Time       `gorm:"index" json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

type OrderItem struct {
	Base
	OrderID   uuid.UUID       `gorm:"type:uuid;index;not null" json:"orderId"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null" json:"productId"`
	Name      string          `gorm:"size:200;not null" json:"name"`
	Image     string          `gorm:"size:255" json:"image"`
	Unit      string          `gorm:"size:30" json:"unit"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Subtotal  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
}

type TrackingStep struct {
	Base
	OrderID   uuid.UUID `gorm:"type:uuid;index;not null" json:"orderId"`
	Status    string    `gorm:"size:20;not null" json:"status"`
	Message   string    `gorm:"size:255" json:"message"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
}
