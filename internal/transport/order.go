package transport

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItemRequest may carry the price the client saw; the catalog price
// is what gets charged.
type OrderItemRequest struct {
	ProductID uuid.UUID        `json:"productId" validate:"required"`
	Quantity  int              `json:"quantity" validate:"required,min=1,max=100"`
	Price     *decimal.Decimal `json:"price,omitempty"`
}

type CreateOrderRequest struct {
	Items         []OrderItemRequest `json:"items" validate:"required,min=1,max=50,dive"`
	AddressID     uuid.UUID          `json:"addressId" validate:"required"`
	PaymentMethod string             `json:"paymentMethod" validate:"required,oneof=cod card upi wallet"`
	PromoCode     string             `json:"promoCode" validate:"omitempty,max=50"`
	Instructions  string             `json:"instructions" validate:"omitempty,max=500"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type RateOrderRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Review string `json:"review" validate:"omitempty,max=1000"`
}

type UpdateOrderStatusRequest struct {
	Status  string `json:"status" validate:"required,oneof=confirmed preparing out_for_delivery delivered"`
	Message string `json:"message" validate:"omitempty,max=255"`
}

type DeleteNotificationsRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"omitempty,max=100"`
}
